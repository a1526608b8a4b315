package docs

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/andyhawks/dkan2/metastore"
	"github.com/andyhawks/dkan2/openapi"
)

// DistributionSource supplies a dataset's distributions with references
// dereferenced. An unknown dataset identifier must surface as an error,
// never as an empty list.
type DistributionSource interface {
	Distributions(ctx context.Context, datasetID string) ([]metastore.Distribution, error)
}

// Service customizes the catalog's shared OpenAPI document so it describes
// the endpoints of one specific dataset.
type Service struct {
	source        openapi.Source
	distributions DistributionSource
	modifiers     Modifiers
}

// NewService wires a docs service. Modifiers are consulted in the given
// order.
func NewService(source openapi.Source, distributions DistributionSource, modifiers ...Modifier) *Service {
	return &Service{
		source:        source,
		distributions: distributions,
		modifiers:     modifiers,
	}
}

// DatasetSpecific produces the dataset-tailored documentation: the shared
// document is re-loaded, trimmed to the allow-listed endpoints, rewritten
// with the dataset identifier, and its SQL endpoint expanded per
// distribution. Any collaborator failure fails the whole operation; there
// is no partial output.
func (s *Service) DatasetSpecific(ctx context.Context, identifier string) (*openapi3.T, error) {
	doc, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}

	paths := filterPaths(doc.Paths)

	paths, err = rewriteDatasetPaths(paths, identifier)
	if err != nil {
		return nil, err
	}

	paths, err = s.expandSQLPaths(ctx, doc, paths, identifier)
	if err != nil {
		return nil, err
	}

	doc.Paths = paths
	stripDatasetDocMetadata(doc)
	return doc, nil
}

// Full returns the whole catalog document with authentication metadata
// stripped, for the catalog-wide docs endpoint.
func (s *Service) Full(ctx context.Context) (*openapi3.T, error) {
	doc, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading spec: %w", err)
	}
	stripSecurity(doc)
	return doc, nil
}

// stripDatasetDocMetadata removes tag and security-scheme metadata, which
// do not apply to the narrowed per-dataset document.
func stripDatasetDocMetadata(doc *openapi3.T) {
	doc.Tags = nil
	stripSecurity(doc)
}

func stripSecurity(doc *openapi3.T) {
	doc.Security = nil
	if doc.Components != nil {
		doc.Components.SecuritySchemes = nil
	}
	if doc.Paths == nil {
		return
	}
	for _, item := range doc.Paths.Map() {
		for _, op := range item.Operations() {
			op.Security = nil
		}
	}
}
