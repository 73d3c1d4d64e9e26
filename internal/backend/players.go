package backend

import (
	"context"
	"net/http"

	"github.com/codr1/Rosterboard/internal/models"
)

const (
	playersPath = "/players/"
	playerRoute = "/players/{id}"
)

// ListPlayers returns every player known to the backend.
func (c *Client) ListPlayers(ctx context.Context) ([]models.Player, error) {
	return call[[]models.Player](ctx, c, http.MethodGet, playersPath, playersPath, nil)
}

// GetPlayer fetches a single player by id.
func (c *Client) GetPlayer(ctx context.Context, id string) (models.Player, error) {
	return call[models.Player](ctx, c, http.MethodGet, playerRoute, resourcePath(playersPath, id), nil)
}

// CreatePlayer registers a new player.
func (c *Client) CreatePlayer(ctx context.Context, req models.CreatePlayerRequest) (models.Player, error) {
	return call[models.Player](ctx, c, http.MethodPost, playersPath, playersPath, req)
}

// UpdatePlayer applies a partial update to the player.
func (c *Client) UpdatePlayer(ctx context.Context, id string, req models.UpdatePlayerRequest) (models.Player, error) {
	return call[models.Player](ctx, c, http.MethodPut, playerRoute, resourcePath(playersPath, id), req)
}

// DeletePlayer removes the player.
func (c *Client) DeletePlayer(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, playerRoute, resourcePath(playersPath, id), nil, nil)
}
