package metastore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andyhawks/dkan2/config"
)

// ErrNotFound reports that the metastore has no item with the requested
// identifier. Callers must not treat it as "item with no content".
var ErrNotFound = errors.New("metastore: item not found")

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Client talks to a metastore API (e.g. /api/1/metastore/schemas/...).
type Client struct {
	BaseURL string
	Auth    AuthStrategy
}

// NewClient creates a Client from config.
func NewClient(cfg config.MetastoreConfig) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(cfg.URL, "/"),
	}

	switch {
	case cfg.APIKey == "":
		c.Auth = NoAuth{}
	case cfg.AuthMethod == "query":
		c.Auth = &QueryAuth{Param: "apikey", Key: cfg.APIKey}
	case cfg.AuthMethod == "basic":
		c.Auth = &BasicAuth{Username: cfg.APIKey, Password: ""}
	default: // "header"
		header := cfg.AuthHeader
		if header == "" {
			header = config.DefaultAuthHeader
		}
		c.Auth = &HeaderAuth{Header: header, Key: cfg.APIKey}
	}

	return c
}

func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.Auth.Apply(req)

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("GET %s: %w", path, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("GET %s: HTTP %d", path, resp.StatusCode)
	}

	return body, nil
}

// GetRecord fetches one item of the given schema with resource references
// dereferenced into full objects.
func (c *Client) GetRecord(ctx context.Context, schema, identifier string) (json.RawMessage, error) {
	path := fmt.Sprintf("/metastore/schemas/%s/items/%s", schema, identifier)
	return c.get(ctx, path, map[string]string{"show-reference-ids": "true"})
}

// GetDataset fetches a dataset record in typed form.
func (c *Client) GetDataset(ctx context.Context, identifier string) (*Dataset, error) {
	raw, err := c.GetRecord(ctx, "dataset", identifier)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	if err := json.Unmarshal(raw, ds); err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %w", identifier, err)
	}
	return ds, nil
}

// Distributions returns a dataset's distribution list, or an empty slice
// when the dataset has none. An unknown identifier is an error, never an
// empty slice.
func (c *Client) Distributions(ctx context.Context, identifier string) ([]Distribution, error) {
	ds, err := c.GetDataset(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if ds.Distribution == nil {
		return []Distribution{}, nil
	}
	return ds.Distribution, nil
}

// ListDatasets fetches all dataset records of the catalog.
func (c *Client) ListDatasets(ctx context.Context) ([]Dataset, error) {
	raw, err := c.get(ctx, "/metastore/schemas/dataset/items", nil)
	if err != nil {
		return nil, err
	}

	var items []Dataset
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding dataset listing: %w", err)
	}
	return items, nil
}
