package backend

import (
	"context"
	"net/http"

	"github.com/codr1/Rosterboard/internal/models"
)

const (
	teamsPath = "/teams/"
	teamRoute = "/teams/{id}"
)

// ListTeams returns every team known to the backend.
func (c *Client) ListTeams(ctx context.Context) ([]models.Team, error) {
	return call[[]models.Team](ctx, c, http.MethodGet, teamsPath, teamsPath, nil)
}

// GetTeam fetches a single team by id.
func (c *Client) GetTeam(ctx context.Context, id string) (models.Team, error) {
	return call[models.Team](ctx, c, http.MethodGet, teamRoute, resourcePath(teamsPath, id), nil)
}

// CreateTeam registers a new team.
func (c *Client) CreateTeam(ctx context.Context, req models.CreateTeamRequest) (models.Team, error) {
	return call[models.Team](ctx, c, http.MethodPost, teamsPath, teamsPath, req)
}

// UpdateTeam applies a partial update to the team.
func (c *Client) UpdateTeam(ctx context.Context, id string, req models.UpdateTeamRequest) (models.Team, error) {
	return call[models.Team](ctx, c, http.MethodPut, teamRoute, resourcePath(teamsPath, id), req)
}

// DeleteTeam removes the team.
func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, teamRoute, resourcePath(teamsPath, id), nil, nil)
}
