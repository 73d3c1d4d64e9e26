package resource

import (
	"context"

	"github.com/codr1/Rosterboard/internal/models"
)

type TeamClient interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	CreateTeam(ctx context.Context, req models.CreateTeamRequest) (models.Team, error)
	UpdateTeam(ctx context.Context, id string, req models.UpdateTeamRequest) (models.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

// Teams is the shared team cache.
type Teams struct {
	*Store[models.Team]
	client TeamClient
}

func NewTeams(client TeamClient) *Teams {
	return &Teams{
		Store:  newStore[models.Team]("teams", "Failed to load teams"),
		client: client,
	}
}

func (t *Teams) Refetch(ctx context.Context, cb Callbacks[[]models.Team]) ([]models.Team, bool) {
	return t.refetch(ctx, t.client.ListTeams, cb)
}

func (t *Teams) EnsureLoaded(ctx context.Context) bool {
	return t.ensureLoaded(ctx, t.client.ListTeams)
}

func (t *Teams) Create(ctx context.Context, req models.CreateTeamRequest, cb Callbacks[models.Team]) (models.Team, bool) {
	return t.create(ctx, func(ctx context.Context) (models.Team, error) {
		return t.client.CreateTeam(ctx, req)
	}, cb)
}

func (t *Teams) Update(ctx context.Context, id string, req models.UpdateTeamRequest, cb Callbacks[models.Team]) (models.Team, bool) {
	return t.update(ctx, func(ctx context.Context) (models.Team, error) {
		team, err := t.client.UpdateTeam(ctx, id, req)
		if err == nil && team.ID == "" {
			team = req.Apply(models.Team{ID: id})
			if cached, ok := t.Find(id); ok {
				team = req.Apply(cached)
			}
		}
		return team, err
	}, cb)
}

// Delete reports whether the backend accepted the deletion.
func (t *Teams) Delete(ctx context.Context, id string, cb Callbacks[string]) bool {
	return t.remove(ctx, id, func(ctx context.Context) error {
		return t.client.DeleteTeam(ctx, id)
	}, cb)
}
