package openapi

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/andyhawks/dkan2/internal"
)

// Parse loads an OpenAPI document from raw bytes with internal refs resolved.
func Parse(ctx context.Context, name string, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI spec %s: %w", name, err)
	}

	// Validate (non-fatal — hand-maintained specs often have minor issues)
	if err := doc.Validate(ctx); err != nil {
		internal.Errorf("spec validation for %s: %v", name, err)
	}

	return doc, nil
}
