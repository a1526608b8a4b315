package docs

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/andyhawks/dkan2/openapi"
)

const (
	identifierPlaceholder = "{identifier}"
	identifierParamName   = "identifier"
)

// rewriteDatasetPaths substitutes the {identifier} placeholder in templated
// paths with the concrete dataset identifier, and sets the example of every
// parameter named "identifier" to it. A templated path whose operations
// carry no identifier parameter is left untouched, so paths are never
// renamed without a matching parameter rewrite.
func rewriteDatasetPaths(paths *openapi3.Paths, identifier string) (*openapi3.Paths, error) {
	out := openapi3.NewPaths()

	for path, item := range paths.Map() {
		if !strings.Contains(path, identifierPlaceholder) {
			out.Set(path, item)
			continue
		}

		changed, err := rewriteIdentifierParams(item, identifier)
		if err != nil {
			return nil, err
		}
		if !changed {
			out.Set(path, item)
			continue
		}

		out.Set(strings.ReplaceAll(path, identifierPlaceholder, identifier), item)
	}

	return out, nil
}

// rewriteIdentifierParams sets the identifier example on path-level and
// operation-level parameters, reporting whether anything was rewritten.
// Ref'd parameters are replaced with inline clones so the shared component
// stays untouched.
func rewriteIdentifierParams(item *openapi3.PathItem, identifier string) (bool, error) {
	changed, err := setIdentifierExample(item.Parameters, identifier)
	if err != nil {
		return false, err
	}

	for _, op := range item.Operations() {
		opChanged, err := setIdentifierExample(op.Parameters, identifier)
		if err != nil {
			return false, err
		}
		changed = changed || opChanged
	}

	return changed, nil
}

func setIdentifierExample(params openapi3.Parameters, identifier string) (bool, error) {
	changed := false
	for i, pRef := range params {
		if pRef == nil || pRef.Value == nil || pRef.Value.Name != identifierParamName {
			continue
		}
		clone, err := openapi.CloneParameter(pRef.Value)
		if err != nil {
			return false, err
		}
		clone.Example = identifier
		params[i] = &openapi3.ParameterRef{Value: clone}
		changed = true
	}
	return changed, nil
}
