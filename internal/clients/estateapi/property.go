package estateapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"listing_editor/internal/domain/models"
)

// GetProperty loads a listing for edit mode.
func (c *Client) GetProperty(ctx context.Context, id int) (*models.Property, error) {
	const op = "estateapi.GetProperty"

	body, err := c.call(ctx, op, http.MethodGet, "/property/"+strconv.Itoa(id), nil, "", "Failed to fetch property.")
	if err != nil {
		return nil, err
	}

	return decodeProperty(op, body)
}

func (c *Client) CreateProperty(ctx context.Context, sub models.Submission) (*models.Property, error) {
	const op = "estateapi.CreateProperty"

	if sub.Mode != models.ModeCreate {
		return nil, fmt.Errorf("%s: unexpected mode %q", op, sub.Mode)
	}

	body, contentType := streamSubmission(sub)
	defer body.Close()

	data, err := c.call(ctx, op, http.MethodPost, "/property", body, contentType, "Failed to create property.")
	if err != nil {
		return nil, err
	}

	return decodeProperty(op, data)
}

func (c *Client) UpdateProperty(ctx context.Context, sub models.Submission) (*models.Property, error) {
	const op = "estateapi.UpdateProperty"

	if sub.Mode != models.ModeEdit || sub.ID <= 0 {
		return nil, fmt.Errorf("%s: update needs an edit submission with id", op)
	}

	body, contentType := streamSubmission(sub)
	defer body.Close()

	data, err := c.call(ctx, op, http.MethodPut, "/property/"+strconv.Itoa(sub.ID), body, contentType, "Failed to update property.")
	if err != nil {
		return nil, err
	}

	return decodeProperty(op, data)
}

func decodeProperty(op string, body []byte) (*models.Property, error) {
	var resp propertyResponse
	if err := decodeValidated(schemaProperty, body, &resp); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return resp.toDomain(), nil
}
