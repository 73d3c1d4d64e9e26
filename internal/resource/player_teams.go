package resource

import (
	"context"

	"github.com/codr1/Rosterboard/internal/models"
)

type PlayerTeamClient interface {
	ListPlayerTeams(ctx context.Context) ([]models.TeamRoster, error)
	CreatePlayerTeam(ctx context.Context, req models.CreatePlayerTeamRequest) (models.PlayerTeam, error)
	UpdatePlayerTeam(ctx context.Context, id string, req models.UpdatePlayerTeamRequest) (models.PlayerTeam, error)
	DeletePlayerTeam(ctx context.Context, id string) error
}

// PlayerTeams caches the denormalized roster listing. Creates and updates
// return the flat link to the caller and invalidate the listing, since a flat
// link cannot be folded into the team-grouped rows.
type PlayerTeams struct {
	*Store[models.TeamRoster]
	client PlayerTeamClient
}

func NewPlayerTeams(client PlayerTeamClient) *PlayerTeams {
	return &PlayerTeams{
		Store:  newStore[models.TeamRoster]("player_teams", "Failed to load player teams"),
		client: client,
	}
}

func (pt *PlayerTeams) Refetch(ctx context.Context, cb Callbacks[[]models.TeamRoster]) ([]models.TeamRoster, bool) {
	return pt.refetch(ctx, pt.client.ListPlayerTeams, cb)
}

func (pt *PlayerTeams) EnsureLoaded(ctx context.Context) bool {
	return pt.ensureLoaded(ctx, pt.client.ListPlayerTeams)
}

func (pt *PlayerTeams) Create(ctx context.Context, req models.CreatePlayerTeamRequest, cb Callbacks[models.PlayerTeam]) (models.PlayerTeam, bool) {
	pt.begin()
	link, err := pt.client.CreatePlayerTeam(ctx, req)
	if err != nil {
		cb.failure(pt.fail(ctx, "create", err))
		return models.PlayerTeam{}, false
	}
	pt.settle()
	cb.success(link)
	return link, true
}

func (pt *PlayerTeams) Update(ctx context.Context, id string, req models.UpdatePlayerTeamRequest, cb Callbacks[models.PlayerTeam]) (models.PlayerTeam, bool) {
	pt.begin()
	link, err := pt.client.UpdatePlayerTeam(ctx, id, req)
	if err != nil {
		cb.failure(pt.fail(ctx, "update", err))
		return models.PlayerTeam{}, false
	}
	pt.settle()
	cb.success(link)
	return link, true
}

// Delete removes the link and drops the listing row with the same id.
func (pt *PlayerTeams) Delete(ctx context.Context, id string, cb Callbacks[string]) bool {
	return pt.remove(ctx, id, func(ctx context.Context) error {
		return pt.client.DeletePlayerTeam(ctx, id)
	}, cb)
}

func (pt *PlayerTeams) settle() {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	pt.state.Loading = false
	pt.state.Loaded = false
}
