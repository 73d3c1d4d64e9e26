package resource

import (
	"context"

	"github.com/codr1/Rosterboard/internal/models"
)

type PlayerClient interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	CreatePlayer(ctx context.Context, req models.CreatePlayerRequest) (models.Player, error)
	UpdatePlayer(ctx context.Context, id string, req models.UpdatePlayerRequest) (models.Player, error)
	DeletePlayer(ctx context.Context, id string) error
}

// Players is the shared player cache.
type Players struct {
	*Store[models.Player]
	client PlayerClient
}

func NewPlayers(client PlayerClient) *Players {
	return &Players{
		Store:  newStore[models.Player]("players", "Unknown error occurred"),
		client: client,
	}
}

func (p *Players) Refetch(ctx context.Context, cb Callbacks[[]models.Player]) ([]models.Player, bool) {
	return p.refetch(ctx, p.client.ListPlayers, cb)
}

func (p *Players) EnsureLoaded(ctx context.Context) bool {
	return p.ensureLoaded(ctx, p.client.ListPlayers)
}

func (p *Players) Create(ctx context.Context, req models.CreatePlayerRequest, cb Callbacks[models.Player]) (models.Player, bool) {
	return p.create(ctx, func(ctx context.Context) (models.Player, error) {
		return p.client.CreatePlayer(ctx, req)
	}, cb)
}

func (p *Players) Update(ctx context.Context, id string, req models.UpdatePlayerRequest, cb Callbacks[models.Player]) (models.Player, bool) {
	return p.update(ctx, func(ctx context.Context) (models.Player, error) {
		player, err := p.client.UpdatePlayer(ctx, id, req)
		if err == nil && player.ID == "" {
			// Some backends answer updates with the patch only.
			player = req.Apply(models.Player{ID: id})
			if cached, ok := p.Find(id); ok {
				player = req.Apply(cached)
			}
		}
		return player, err
	}, cb)
}

func (p *Players) Delete(ctx context.Context, id string, cb Callbacks[string]) bool {
	return p.remove(ctx, id, func(ctx context.Context) error {
		return p.client.DeletePlayer(ctx, id)
	}, cb)
}
