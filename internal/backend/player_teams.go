package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/codr1/Rosterboard/internal/models"
)

const (
	playerTeamsPath    = "/players_team/"
	playerTeamRoute    = "/players_team/{id}"
	playersByTeamRoute = "/players_team/team/{id}/players"
	teamsByPlayerRoute = "/players_team/player/{id}/teams"
)

// ListPlayerTeams returns the denormalized, team-grouped link listing.
func (c *Client) ListPlayerTeams(ctx context.Context) ([]models.TeamRoster, error) {
	return call[[]models.TeamRoster](ctx, c, http.MethodGet, playerTeamsPath, playerTeamsPath, nil)
}

// GetPlayerTeam fetches a single link record.
func (c *Client) GetPlayerTeam(ctx context.Context, id string) (models.PlayerTeam, error) {
	return call[models.PlayerTeam](ctx, c, http.MethodGet, playerTeamRoute, resourcePath(playerTeamsPath, id), nil)
}

// CreatePlayerTeam links a player to a team.
func (c *Client) CreatePlayerTeam(ctx context.Context, req models.CreatePlayerTeamRequest) (models.PlayerTeam, error) {
	return call[models.PlayerTeam](ctx, c, http.MethodPost, playerTeamsPath, playerTeamsPath, req)
}

// UpdatePlayerTeam applies a partial update to a link record.
func (c *Client) UpdatePlayerTeam(ctx context.Context, id string, req models.UpdatePlayerTeamRequest) (models.PlayerTeam, error) {
	return call[models.PlayerTeam](ctx, c, http.MethodPut, playerTeamRoute, resourcePath(playerTeamsPath, id), req)
}

// DeletePlayerTeam removes a link record.
func (c *Client) DeletePlayerTeam(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, playerTeamRoute, resourcePath(playerTeamsPath, id), nil, nil)
}

// ListPlayersByTeam returns the link records of one team.
func (c *Client) ListPlayersByTeam(ctx context.Context, teamID string) ([]models.PlayerTeam, error) {
	path := fmt.Sprintf("/players_team/team/%s/players", url.PathEscape(teamID))
	return call[[]models.PlayerTeam](ctx, c, http.MethodGet, playersByTeamRoute, path, nil)
}

// ListTeamsByPlayer returns the link records of one player.
func (c *Client) ListTeamsByPlayer(ctx context.Context, playerID string) ([]models.PlayerTeam, error) {
	path := fmt.Sprintf("/players_team/player/%s/teams", url.PathEscape(playerID))
	return call[[]models.PlayerTeam](ctx, c, http.MethodGet, teamsByPlayerRoute, path, nil)
}
