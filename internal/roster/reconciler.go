package roster

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/backend"
	"github.com/codr1/Rosterboard/internal/models"
)

// PlaceholderPosition is stored on links created from the roster editor until
// the position is edited.
const PlaceholderPosition = "TBD"

var ErrTeamNotSelected = errors.New("team not selected")

// LinkClient is the subset of the backend client the reconciler drives.
type LinkClient interface {
	CreatePlayerTeam(ctx context.Context, req models.CreatePlayerTeamRequest) (models.PlayerTeam, error)
	DeletePlayerTeam(ctx context.Context, id string) error
}

// NewLinkRequest is the payload used for every player added through the editor.
func NewLinkRequest(playerID, teamID string, now time.Time) models.CreatePlayerTeamRequest {
	return models.CreatePlayerTeamRequest{
		PlayerID:     playerID,
		TeamID:       teamID,
		Position:     PlaceholderPosition,
		JerseyNumber: 0,
		StartDate:    models.FormatStartDate(now),
		IsActive:     true,
	}
}

// MatchingLinks returns the rows under team's name that embed a player named
// like player. Matching is by name because the listing exposes no per-player
// link ids; two players sharing a name are indistinguishable here.
func MatchingLinks(team models.Team, player models.Player, rows []models.TeamRoster) []models.TeamRoster {
	var matches []models.TeamRoster
	for _, row := range rows {
		if row.Team == nil || row.Team.Name != team.Name {
			continue
		}
		if row.HasPlayerNamed(player.Name) {
			matches = append(matches, row)
		}
	}
	return matches
}

// Result counts the calls that completed before Apply returned.
type Result struct {
	Created int
	Deleted int
}

// Reconciler applies a Diff by issuing link calls one at a time.
type Reconciler struct {
	client LinkClient
	clock  clockwork.Clock
}

func NewReconciler(client LinkClient, clock clockwork.Clock) *Reconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reconciler{client: client, clock: clock}
}

// Apply creates a link for every id in diff.ToAdd, then deletes every
// matching link row for each id in diff.ToRemove. A row shared by several
// removed players is deleted once, and a row the backend no longer has counts
// as removed. It stops at the first other failure; calls already made are not
// undone.
func (rc *Reconciler) Apply(ctx context.Context, team *models.Team, diff Diff, rows []models.TeamRoster, players []models.Player) (Result, error) {
	var result Result
	if team == nil || team.ID == "" {
		return result, ErrTeamNotSelected
	}
	logger := log.Ctx(ctx).With().Str("team_id", team.ID).Logger()

	today := rc.clock.Now().UTC()
	for _, playerID := range diff.ToAdd {
		if _, err := rc.client.CreatePlayerTeam(ctx, NewLinkRequest(playerID, team.ID, today)); err != nil {
			logger.Error().Err(err).Str("player_id", playerID).Msg("Failed to add player to team")
			return result, fmt.Errorf("add player %s: %w", playerID, err)
		}
		result.Created++
	}

	byID := make(map[string]models.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	deleted := make(map[string]bool)
	for _, playerID := range diff.ToRemove {
		player, ok := byID[playerID]
		if !ok {
			logger.Warn().Str("player_id", playerID).Msg("Skipping removal of unknown player")
			continue
		}
		for _, row := range MatchingLinks(*team, player, rows) {
			if row.ID == "" || deleted[row.ID] {
				continue
			}
			err := rc.client.DeletePlayerTeam(ctx, row.ID)
			if backend.StatusCode(err) == http.StatusNotFound {
				logger.Warn().Str("player_id", playerID).Str("link_id", row.ID).Msg("Link already removed")
				deleted[row.ID] = true
				continue
			}
			if err != nil {
				logger.Error().Err(err).Str("player_id", playerID).Str("link_id", row.ID).Msg("Failed to remove player from team")
				return result, fmt.Errorf("remove player %s: %w", playerID, err)
			}
			deleted[row.ID] = true
			result.Deleted++
		}
	}

	logger.Info().Int("created", result.Created).Int("deleted", result.Deleted).Msg("Roster reconciled")
	return result, nil
}

// DeleteAll removes every link row listed under team's name.
func (rc *Reconciler) DeleteAll(ctx context.Context, team *models.Team, rows []models.TeamRoster) (Result, error) {
	var result Result
	if team == nil {
		return result, ErrTeamNotSelected
	}
	for _, row := range rows {
		if row.Team == nil || row.Team.Name != team.Name || row.ID == "" {
			continue
		}
		if err := rc.client.DeletePlayerTeam(ctx, row.ID); err != nil {
			return result, fmt.Errorf("delete link %s: %w", row.ID, err)
		}
		result.Deleted++
	}
	log.Ctx(ctx).Info().Str("team", team.Name).Int("deleted", result.Deleted).Msg("Team roster cleared")
	return result, nil
}
