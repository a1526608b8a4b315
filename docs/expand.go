package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/andyhawks/dkan2/openapi"
)

const (
	sqlPathToken   = "sql"
	queryParamName = "query"
)

// sqlExampleQuery is the literal documentation-only example for one
// distribution. The identifier is interpolated as-is; this is not a query
// builder.
func sqlExampleQuery(distributionID string) string {
	return fmt.Sprintf("[SELECT * FROM %s];", distributionID)
}

// expandSQLPaths replaces each generic SQL endpoint with one documented
// path per distribution of the dataset. When the modification policy says
// the dataset's distributions must be hidden, SQL paths are removed
// outright.
func (s *Service) expandSQLPaths(ctx context.Context, doc *openapi3.T, paths *openapi3.Paths, identifier string) (*openapi3.Paths, error) {
	if !hasSQLPath(paths) {
		return paths, nil
	}

	modify, err := s.modifiers.RequiresModification(ctx, EntityDistribution, identifier)
	if err != nil {
		return nil, fmt.Errorf("querying modification policy for %s: %w", identifier, err)
	}
	if modify {
		return removeSQLPaths(paths), nil
	}

	dists, err := s.distributions.Distributions(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("looking up distributions for %s: %w", identifier, err)
	}

	out := openapi3.NewPaths()
	for path, item := range paths.Map() {
		if !strings.Contains(path, sqlPathToken) {
			out.Set(path, item)
			continue
		}

		// The generic templated path is dropped; only the
		// distribution-specific variants survive.
		inlineParameterRefs(item)
		for _, dist := range dists {
			example := sqlExampleQuery(dist.Identifier)
			variant, err := distributionPathItem(doc, item, example)
			if err != nil {
				return nil, fmt.Errorf("building SQL docs for distribution %s: %w", dist.Identifier, err)
			}
			out.Set(path+"?query="+example, variant)
		}
	}
	return out, nil
}

func hasSQLPath(paths *openapi3.Paths) bool {
	for path := range paths.Map() {
		if strings.Contains(path, sqlPathToken) {
			return true
		}
	}
	return false
}

func removeSQLPaths(paths *openapi3.Paths) *openapi3.Paths {
	out := openapi3.NewPaths()
	for path, item := range paths.Map() {
		if strings.Contains(path, sqlPathToken) {
			continue
		}
		out.Set(path, item)
	}
	return out
}

// distributionPathItem clones the SQL path item and points its query
// parameter example at the distribution's example query, falling back to
// the spec's shared query parameter template when the operation carries no
// query parameter of its own.
func distributionPathItem(doc *openapi3.T, item *openapi3.PathItem, example string) (*openapi3.PathItem, error) {
	clone, err := openapi.ClonePathItem(item)
	if err != nil {
		return nil, err
	}

	for _, op := range clone.Operations() {
		set := false
		for _, pRef := range op.Parameters {
			if pRef == nil || pRef.Value == nil || pRef.Value.Name != queryParamName {
				continue
			}
			pRef.Value.Example = example
			set = true
		}
		if set {
			continue
		}

		tmpl := sharedQueryParam(doc)
		if tmpl == nil {
			continue
		}
		p, err := openapi.CloneParameter(tmpl)
		if err != nil {
			return nil, err
		}
		p.Example = example
		op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: p})
	}

	return clone, nil
}

// inlineParameterRefs replaces resolved $ref parameters with inline values
// so a JSON round-trip clone keeps the full parameter objects.
func inlineParameterRefs(item *openapi3.PathItem) {
	inline := func(params openapi3.Parameters) {
		for i, pRef := range params {
			if pRef != nil && pRef.Ref != "" && pRef.Value != nil {
				params[i] = &openapi3.ParameterRef{Value: pRef.Value}
			}
		}
	}

	inline(item.Parameters)
	for _, op := range item.Operations() {
		inline(op.Parameters)
	}
}

// sharedQueryParam returns the spec's shared "query" parameter template.
func sharedQueryParam(doc *openapi3.T) *openapi3.Parameter {
	if doc == nil || doc.Components == nil {
		return nil
	}
	pRef, ok := doc.Components.Parameters[queryParamName]
	if !ok || pRef == nil {
		return nil
	}
	return pRef.Value
}
