package openapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Index holds compact endpoint listings for a parsed spec, backing the
// catalog browsing tools.
type Index struct {
	Title     string
	Endpoints map[string]map[string]*EndpointDetail // path -> method -> detail
}

// BuildIndex walks a parsed document into an Index.
func BuildIndex(doc *openapi3.T) *Index {
	idx := &Index{
		Endpoints: make(map[string]map[string]*EndpointDetail),
	}
	if doc.Info != nil {
		idx.Title = doc.Info.Title
	}

	for path, pathItem := range doc.Paths.Map() {
		for method, op := range pathItem.Operations() {
			if op == nil {
				continue
			}

			method = strings.ToUpper(method)

			detail := &EndpointDetail{
				Method:      method,
				Path:        path,
				Summary:     op.Summary,
				Description: op.Description,
				Tags:        op.Tags,
				Responses:   make(map[string]string),
			}

			// Parameters
			for _, pRef := range op.Parameters {
				if pRef.Value == nil {
					continue
				}
				p := pRef.Value
				pi := ParameterInfo{
					Name:        p.Name,
					In:          p.In,
					Required:    p.Required,
					Example:     p.Example,
					Description: p.Description,
				}
				if p.Schema != nil && p.Schema.Value != nil {
					types := p.Schema.Value.Type.Slice()
					if len(types) > 0 {
						pi.Type = types[0]
					}
				}
				detail.Parameters = append(detail.Parameters, pi)
			}

			// Request body
			if op.RequestBody != nil && op.RequestBody.Value != nil {
				for ct, mediaType := range op.RequestBody.Value.Content {
					si := &SchemaInfo{ContentType: ct}
					if mediaType.Schema != nil && mediaType.Schema.Value != nil {
						si.Properties = flattenSchema(mediaType.Schema.Value)
						si.Required = mediaType.Schema.Value.Required
					}
					detail.RequestBody = si
					break // Take first content type
				}
			}

			// Responses
			if op.Responses != nil {
				for code, respRef := range op.Responses.Map() {
					if respRef.Value != nil && respRef.Value.Description != nil {
						detail.Responses[code] = *respRef.Value.Description
					}
				}
			}

			if idx.Endpoints[path] == nil {
				idx.Endpoints[path] = make(map[string]*EndpointDetail)
			}
			idx.Endpoints[path][method] = detail
		}
	}

	return idx
}

// Count returns the total number of endpoints.
func (idx *Index) Count() int {
	n := 0
	for _, methods := range idx.Endpoints {
		n += len(methods)
	}
	return n
}

// Filter returns endpoint summaries matching optional tag and method filters.
func (idx *Index) Filter(tag, method string) []EndpointSummary {
	var results []EndpointSummary
	tag = strings.ToLower(tag)
	method = strings.ToUpper(method)

	for path, methods := range idx.Endpoints {
		for m, detail := range methods {
			if method != "" && m != method {
				continue
			}
			if tag != "" {
				matched := false
				for _, t := range detail.Tags {
					if strings.EqualFold(t, tag) {
						matched = true
						break
					}
				}
				if !matched {
					continue
				}
			}
			results = append(results, summarize(m, path, detail))
		}
	}
	return results
}

// GetDetail returns full details for a specific endpoint.
func (idx *Index) GetDetail(path, method string) (*EndpointDetail, error) {
	methods, ok := idx.Endpoints[path]
	if !ok {
		// Try prefix match
		for p, m := range idx.Endpoints {
			if strings.HasSuffix(p, path) || strings.HasPrefix(p, path) {
				methods = m
				path = p
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf("endpoint %s not found", path)
		}
	}

	detail, ok := methods[method]
	if !ok {
		// Return first available method
		for _, d := range methods {
			return d, nil
		}
		return nil, fmt.Errorf("method %s not found for %s", method, path)
	}

	return detail, nil
}

// Search searches paths, summaries, descriptions and tags.
func (idx *Index) Search(query string) []EndpointSummary {
	query = strings.ToLower(query)
	var results []EndpointSummary

	for path, methods := range idx.Endpoints {
		for m, detail := range methods {
			if matches(query, path, detail) {
				results = append(results, summarize(m, path, detail))
			}
		}
	}
	return results
}

func summarize(method, path string, detail *EndpointDetail) EndpointSummary {
	t := ""
	if len(detail.Tags) > 0 {
		t = detail.Tags[0]
	}
	return EndpointSummary{
		Method:  method,
		Path:    path,
		Summary: detail.Summary,
		Tag:     t,
	}
}

// flattenSchema extracts property names and types from a schema.
func flattenSchema(schema *openapi3.Schema) map[string]any {
	if schema == nil || len(schema.Properties) == 0 {
		return nil
	}

	props := make(map[string]any)
	for name, propRef := range schema.Properties {
		if propRef.Value == nil {
			props[name] = "unknown"
			continue
		}
		p := propRef.Value
		types := p.Type.Slice()
		t := "unknown"
		if len(types) > 0 {
			t = types[0]
		}
		if p.Description != "" {
			props[name] = map[string]string{"type": t, "description": p.Description}
		} else {
			props[name] = t
		}
	}
	return props
}

func matches(query, path string, detail *EndpointDetail) bool {
	if strings.Contains(strings.ToLower(path), query) {
		return true
	}
	if strings.Contains(strings.ToLower(detail.Summary), query) {
		return true
	}
	if strings.Contains(strings.ToLower(detail.Description), query) {
		return true
	}
	for _, tag := range detail.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}
