package openapi

import (
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ClonePathItem deep-copies a path item via a JSON round trip.
// Parameter entries that are bare $refs stay refs; callers that need to
// edit a ref'd parameter should clone its resolved value instead.
func ClonePathItem(item *openapi3.PathItem) (*openapi3.PathItem, error) {
	data, err := item.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshaling path item: %w", err)
	}
	out := &openapi3.PathItem{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("unmarshaling path item: %w", err)
	}
	return out, nil
}

// CloneParameter deep-copies a resolved parameter object.
func CloneParameter(p *openapi3.Parameter) (*openapi3.Parameter, error) {
	data, err := p.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshaling parameter: %w", err)
	}
	out := &openapi3.Parameter{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("unmarshaling parameter: %w", err)
	}
	return out, nil
}
