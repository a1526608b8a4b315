package docs

import (
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pathItemWithMethods(methods ...string) *openapi3.PathItem {
	item := &openapi3.PathItem{}
	for _, m := range methods {
		item.SetOperation(m, openapi3.NewOperation())
	}
	return item
}

func TestFilterPathsKeepsOnlyAllowListed(t *testing.T) {
	paths := openapi3.NewPaths()
	paths.Set("/api/1/metastore/schemas/dataset/items/{identifier}", pathItemWithMethods(http.MethodGet, http.MethodPost))
	paths.Set("/api/1/datastore/sql", pathItemWithMethods(http.MethodGet))
	paths.Set("/api/1/search", pathItemWithMethods(http.MethodGet))
	paths.Set("/api/1/metastore/schemas/dataset/items/{identifier}/docs", pathItemWithMethods(http.MethodGet))

	out := filterPaths(paths)

	require.Equal(t, 2, out.Len())

	dataset := out.Value("/api/1/metastore/schemas/dataset/items/{identifier}")
	require.NotNil(t, dataset)
	assert.NotNil(t, dataset.Get)
	assert.Nil(t, dataset.Post, "non-allow-listed method must be dropped")

	assert.NotNil(t, out.Value("/api/1/datastore/sql"))
	assert.Nil(t, out.Value("/api/1/search"))
	assert.Nil(t, out.Value("/api/1/metastore/schemas/dataset/items/{identifier}/docs"),
		"sub-paths of an allowed pattern must not match")
}

func TestFilterPathsExactPatternMatch(t *testing.T) {
	paths := openapi3.NewPaths()
	paths.Set("metastore/schemas/dataset/items/{identifier}", pathItemWithMethods(http.MethodGet, http.MethodPost))

	out := filterPaths(paths)

	require.Equal(t, 1, out.Len())
	item := out.Value("metastore/schemas/dataset/items/{identifier}")
	require.NotNil(t, item)
	assert.NotNil(t, item.Get)
	assert.Nil(t, item.Post)
}

func TestFilterPathsDropsMatchWithoutAllowedMethods(t *testing.T) {
	paths := openapi3.NewPaths()
	paths.Set("/api/1/datastore/sql", pathItemWithMethods(http.MethodPost))

	out := filterPaths(paths)
	assert.Equal(t, 0, out.Len())
}

func TestFilterPathsNilInput(t *testing.T) {
	out := filterPaths(nil)
	require.NotNil(t, out)
	assert.Equal(t, 0, out.Len())
}
