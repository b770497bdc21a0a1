package estateapi

import (
	"context"
	"fmt"
	"net/http"

	"listing_editor/internal/domain/models"
)

func (c *Client) PropertyTypes(ctx context.Context) ([]models.CatalogItem, error) {
	return c.catalog(ctx, "estateapi.PropertyTypes", "/propertytype", "Failed to fetch property types")
}

func (c *Client) SaleTypes(ctx context.Context) ([]models.CatalogItem, error) {
	return c.catalog(ctx, "estateapi.SaleTypes", "/saletype", "Failed to fetch sale types")
}

func (c *Client) Improvements(ctx context.Context) ([]models.CatalogItem, error) {
	return c.catalog(ctx, "estateapi.Improvements", "/improvement", "Failed to fetch improvements")
}

func (c *Client) catalog(ctx context.Context, op, path, fallback string) ([]models.CatalogItem, error) {
	body, err := c.call(ctx, op, http.MethodGet, path, nil, "", fallback)
	if err != nil {
		return nil, err
	}

	var items []catalogItemResponse
	if err := decodeValidated(schemaCatalog, body, &items); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result := make([]models.CatalogItem, len(items))
	for i, item := range items {
		result[i] = item.toDomain()
	}
	return result, nil
}
