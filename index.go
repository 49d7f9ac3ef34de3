package searchclient

import (
	"context"

	"github.com/surfedu/searchclient/internal/domain"
)

// Schema returns the settings and mappings of the index name. docType picks
// the product schema, empty for the platform default.
func (c *Client) Schema(name, docType string) (Schema, error) {
	dt, err := parseDocumentType(docType)
	if err != nil {
		return Schema{}, err
	}
	return c.indexSvc.Schema(name, dt)
}

// CreateIndex creates the index name with the schema its name implies.
func (c *Client) CreateIndex(ctx context.Context, name, docType string) (Schema, error) {
	dt, err := parseDocumentType(docType)
	if err != nil {
		return Schema{}, err
	}
	return c.indexSvc.Create(ctx, name, dt)
}

// DeleteIndex removes an index.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	return c.indexSvc.Delete(ctx, name)
}

// IndexExists reports whether an index or alias exists.
func (c *Client) IndexExists(ctx context.Context, name string) (bool, error) {
	return c.indexSvc.Exists(ctx, name)
}

func parseDocumentType(s string) (domain.DocumentType, error) {
	if s == "" {
		return "", nil
	}
	return domain.ParseDocumentType(s)
}
