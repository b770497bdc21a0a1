package estateapi

import (
	"context"
	"fmt"
	"net/http"

	"listing_editor/internal/domain/models"
)

// CurrentUser resolves the owner of token through the identity endpoint.
func (c *Client) CurrentUser(ctx context.Context, token string) (models.Agent, error) {
	const op = "estateapi.CurrentUser"

	body, err := c.call(WithToken(ctx, token), op, http.MethodGet, "/account/current-user", nil, "", "Failed to fetch current user")
	if err != nil {
		return models.Agent{}, err
	}

	var resp currentUserResponse
	if err := decodeValidated(schemaCurrentUser, body, &resp); err != nil {
		return models.Agent{}, fmt.Errorf("%s: %w", op, err)
	}

	return resp.toDomain(), nil
}
