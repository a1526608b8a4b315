package docs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andyhawks/dkan2/metastore"
	"github.com/andyhawks/dkan2/openapi"
)

const catalogSpec = `{
  "openapi": "3.0.3",
  "info": {"title": "Catalog API", "version": "1.0.0"},
  "tags": [{"name": "Metastore"}, {"name": "Datastore"}],
  "security": [{"basic_auth": []}],
  "components": {
    "securitySchemes": {"basic_auth": {"type": "http", "scheme": "basic"}},
    "parameters": {
      "datasetIdentifier": {
        "name": "identifier",
        "in": "path",
        "required": true,
        "description": "Dataset identifier",
        "example": "11111111-1111-1111-1111-111111111111",
        "schema": {"type": "string"}
      },
      "query": {
        "name": "query",
        "in": "query",
        "required": true,
        "description": "SQL query against a datastore resource",
        "schema": {"type": "string"}
      }
    }
  },
  "paths": {
    "/api/1/metastore/schemas/dataset/items/{identifier}": {
      "get": {
        "summary": "Get a dataset",
        "tags": ["Metastore"],
        "parameters": [{"$ref": "#/components/parameters/datasetIdentifier"}],
        "responses": {"200": {"description": "Ok"}}
      },
      "post": {
        "summary": "Replace a dataset",
        "responses": {"200": {"description": "Ok"}}
      }
    },
    "/api/1/datastore/sql": {
      "get": {
        "summary": "Query resources with SQL",
        "tags": ["Datastore"],
        "parameters": [{"$ref": "#/components/parameters/query"}],
        "responses": {"200": {"description": "Ok"}}
      }
    },
    "/api/1/search": {
      "get": {"summary": "Search the catalog", "responses": {"200": {"description": "Ok"}}}
    }
  }
}`

// memorySource parses a fixed document fresh on every Load, like the real
// sources do.
type memorySource struct {
	data []byte
}

func (s *memorySource) Load(ctx context.Context) (*openapi3.T, error) {
	return openapi.Parse(ctx, "memory", s.data)
}

type fakeDistributions struct {
	dists []metastore.Distribution
	err   error
	calls int
}

func (f *fakeDistributions) Distributions(_ context.Context, _ string) ([]metastore.Distribution, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.dists, nil
}

func newTestService(dists *fakeDistributions, modifiers ...Modifier) *Service {
	return NewService(&memorySource{data: []byte(catalogSpec)}, dists, modifiers...)
}

func pathKeys(doc *openapi3.T) []string {
	var keys []string
	for path := range doc.Paths.Map() {
		keys = append(keys, path)
	}
	return keys
}

func TestDatasetSpecificExpandsSQLPerDistribution(t *testing.T) {
	dists := &fakeDistributions{dists: []metastore.Distribution{
		{Identifier: "d1"},
		{Identifier: "d2"},
	}}
	svc := newTestService(dists)

	doc, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.NoError(t, err)

	require.Equal(t, 3, doc.Paths.Len(), "dataset path plus one SQL path per distribution: %v", pathKeys(doc))
	assert.NotNil(t, doc.Paths.Value("/api/1/metastore/schemas/dataset/items/abc-123"))
	assert.Nil(t, doc.Paths.Value("/api/1/datastore/sql"), "templated SQL path must be removed")
	assert.Nil(t, doc.Paths.Value("/api/1/search"))

	for _, id := range []string{"d1", "d2"} {
		path := fmt.Sprintf("/api/1/datastore/sql?query=[SELECT * FROM %s];", id)
		item := doc.Paths.Value(path)
		require.NotNil(t, item, "missing %s in %v", path, pathKeys(doc))

		var queryParam *openapi3.Parameter
		for _, pRef := range item.Get.Parameters {
			if pRef.Value != nil && pRef.Value.Name == "query" {
				queryParam = pRef.Value
			}
		}
		require.NotNil(t, queryParam)
		assert.Equal(t, fmt.Sprintf("[SELECT * FROM %s];", id), queryParam.Example)
	}
}

func TestDatasetSpecificZeroDistributions(t *testing.T) {
	svc := newTestService(&fakeDistributions{dists: []metastore.Distribution{}})

	doc, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.NoError(t, err)

	for _, path := range pathKeys(doc) {
		assert.NotContains(t, path, "sql")
	}
	assert.NotNil(t, doc.Paths.Value("/api/1/metastore/schemas/dataset/items/abc-123"))
}

func TestDatasetSpecificPolicySuppressesSQL(t *testing.T) {
	dists := &fakeDistributions{dists: []metastore.Distribution{{Identifier: "d1"}}}
	deny := ModifierFunc(func(_ context.Context, entityType, identifier string) (bool, error) {
		assert.Equal(t, EntityDistribution, entityType)
		assert.Equal(t, "abc-123", identifier)
		return true, nil
	})
	svc := newTestService(dists, deny)

	doc, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.NoError(t, err)

	for _, path := range pathKeys(doc) {
		assert.NotContains(t, path, "sql")
	}
	assert.Equal(t, 0, dists.calls, "distributions must not be fetched when the policy suppresses SQL docs")
}

func TestDatasetSpecificModifierOrderShortCircuits(t *testing.T) {
	var order []string
	first := ModifierFunc(func(context.Context, string, string) (bool, error) {
		order = append(order, "first")
		return true, nil
	})
	second := ModifierFunc(func(context.Context, string, string) (bool, error) {
		order = append(order, "second")
		return false, nil
	})
	svc := newTestService(&fakeDistributions{}, first, second)

	_, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, order)
}

func TestDatasetSpecificModifierErrorPropagates(t *testing.T) {
	boom := errors.New("acl lookup failed")
	failing := ModifierFunc(func(context.Context, string, string) (bool, error) {
		return false, boom
	})
	svc := newTestService(&fakeDistributions{}, failing)

	_, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestDatasetSpecificUnknownDatasetPropagates(t *testing.T) {
	dists := &fakeDistributions{err: fmt.Errorf("GET item: %w", metastore.ErrNotFound)}
	svc := newTestService(dists)

	_, err := svc.DatasetSpecific(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, metastore.ErrNotFound)
}

func TestDatasetSpecificStripsSecurityAndTags(t *testing.T) {
	svc := newTestService(&fakeDistributions{})

	doc, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.NoError(t, err)

	assert.Nil(t, doc.Tags)
	assert.Nil(t, doc.Security)
	require.NotNil(t, doc.Components)
	assert.Nil(t, doc.Components.SecuritySchemes)
}

func TestDatasetSpecificOutputPathsDeriveFromInput(t *testing.T) {
	dists := &fakeDistributions{dists: []metastore.Distribution{{Identifier: "d1"}}}
	svc := newTestService(dists)

	doc, err := svc.DatasetSpecific(context.Background(), "abc-123")
	require.NoError(t, err)

	for _, path := range pathKeys(doc) {
		derived := path == "/api/1/metastore/schemas/dataset/items/abc-123" ||
			strings.HasPrefix(path, "/api/1/datastore/sql?query=")
		assert.True(t, derived, "unexpected path %s", path)
	}
}

func TestFullStripsSecurityKeepsAllPaths(t *testing.T) {
	svc := newTestService(&fakeDistributions{})

	doc, err := svc.Full(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, doc.Paths.Len())
	assert.Nil(t, doc.Security)
	assert.Nil(t, doc.Components.SecuritySchemes)
	assert.NotNil(t, doc.Tags, "the catalog-wide document keeps its tags")
}
