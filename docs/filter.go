package docs

import (
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// endpointRule is one allow-list entry: a path pattern and the methods
// that survive on it.
type endpointRule struct {
	pattern string
	methods []string
}

// endpointsToKeep is the fixed allow-list of documented endpoints. First
// matching entry wins.
var endpointsToKeep = []endpointRule{
	{"metastore/schemas/dataset/items/{identifier}", []string{http.MethodGet}},
	{"datastore/sql", []string{http.MethodGet}},
}

// filterPaths keeps only allow-listed (path, method) pairs. Paths matching
// no rule are silently dropped.
func filterPaths(paths *openapi3.Paths) *openapi3.Paths {
	out := openapi3.NewPaths()
	if paths == nil {
		return out
	}

	for path, item := range paths.Map() {
		rule, ok := matchRule(path)
		if !ok {
			continue
		}
		if kept := keepMethods(item, rule.methods); kept != nil {
			out.Set(path, kept)
		}
	}
	return out
}

// matchRule matches a rule pattern at a path-segment boundary: the path is
// the pattern itself or ends with "/"+pattern. Sub-paths of a pattern (the
// pattern followed by "/") never match.
func matchRule(path string) (endpointRule, bool) {
	for _, r := range endpointsToKeep {
		if path == r.pattern || strings.HasSuffix(path, "/"+r.pattern) {
			return r, true
		}
	}
	return endpointRule{}, false
}

// keepMethods copies a path item retaining only the given methods, or nil
// when none of them is present.
func keepMethods(item *openapi3.PathItem, methods []string) *openapi3.PathItem {
	kept := &openapi3.PathItem{
		Summary:     item.Summary,
		Description: item.Description,
		Parameters:  item.Parameters,
	}

	found := false
	for _, method := range methods {
		if op := item.GetOperation(method); op != nil {
			kept.SetOperation(method, op)
			found = true
		}
	}
	if !found {
		return nil
	}
	return kept
}
