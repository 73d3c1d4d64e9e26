package players

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/templates/components/shared"
)

const (
	ListID   = "players-list"
	basePath = "/api/v1/players"
)

// PlayerList is the players card: a grid of player cards with a pager. It
// reloads itself on the players-changed event.
func PlayerList(data ListData) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<section id="%s" hx-get="%s?page=%d" hx-trigger="players-changed from:body" hx-swap="outerHTML">`,
			ListID, basePath, data.Page.CurrentPage)
		hw.Raw(`<div class="flex items-center justify-between mb-4"><h2 class="text-xl font-semibold">Players</h2><div class="flex gap-2">`)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded border" hx-get="%s?page=%d&refresh=1" hx-target="#%s" hx-swap="outerHTML">Refresh</button>`,
			basePath, data.Page.CurrentPage, ListID)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded bg-blue-600 text-white" hx-get="%s/new" hx-target="%s">Add Player</button>`,
			basePath, shared.ModalTarget)
		hw.Raw(`</div></div>`)
		hw.Component(ctx, shared.ErrorBanner(data.Err))

		if data.Page.TotalItems == 0 && data.Err == "" {
			hw.Raw(`<p class="text-gray-500">No players yet.</p>`)
		}
		hw.Raw(`<div class="grid gap-4 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, p := range data.Page.Items {
			hw.Component(ctx, PlayerCard(p))
		}
		hw.Raw(`</div>`)
		hw.Component(ctx, shared.Pagination(shared.PaginationData{
			CurrentPage: data.Page.CurrentPage,
			TotalPages:  data.Page.TotalPages,
			Attrs:       shared.GetPageAttrs(basePath, "#"+ListID),
		}))
		hw.Raw(`</section>`)
	})
}

func PlayerCard(p models.Player) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<article class="rounded-lg border p-4 shadow-sm" id="player-%s">`, p.ID)
		hw.Printf(`<div class="flex items-center justify-between"><h3 class="font-semibold">%s</h3><span class="text-sm text-gray-500">%s</span></div>`,
			p.Name, p.NumberLabel())
		hw.Printf(`<dl class="mt-2 text-sm"><dt class="inline text-gray-500">Age</dt> <dd class="inline">%d</dd>`, p.Age)
		if p.Position != "" {
			hw.Printf(`<br><dt class="inline text-gray-500">Position</dt> <dd class="inline">%s</dd>`, p.Position)
		}
		if p.Nationality != "" {
			hw.Printf(`<br><dt class="inline text-gray-500">Nationality</dt> <dd class="inline">%s</dd>`, p.Nationality)
		}
		hw.Raw(`</dl><div class="mt-3 flex gap-2">`)
		path := shared.ResourcePath(basePath, p.ID)
		hw.Printf(`<button type="button" class="text-blue-600" hx-get="%s/edit" hx-target="%s">Edit</button>`, path, shared.ModalTarget)
		hw.Printf(`<button type="button" class="text-red-600" hx-get="%s/delete" hx-target="%s">Delete</button>`, path, shared.ModalTarget)
		hw.Raw(`</div></article>`)
	})
}

// PlayerFormModal is the create modal when data has no id and the update
// modal otherwise.
func PlayerFormModal(data FormData) templ.Component {
	title := "Create Player"
	if data.IsEdit() {
		title = "Update Player"
	}
	return shared.Modal(title, shared.Component(func(ctx context.Context, hw *shared.Writer) {
		if data.IsEdit() {
			hw.Printf(`<form hx-put="%s" hx-target="%s" class="space-y-3">`, shared.ResourcePath(basePath, data.ID), shared.ModalTarget)
		} else {
			hw.Printf(`<form hx-post="%s" hx-target="%s" class="space-y-3">`, basePath, shared.ModalTarget)
		}
		hw.Component(ctx, shared.ErrorBanner(data.FormError))
		shared.Field(ctx, hw, shared.FieldData{Name: "name", Label: "Name", Value: data.Name, Error: data.Error("name"), Attrs: "required"})
		shared.Field(ctx, hw, shared.FieldData{Name: "age", Label: "Age", Type: "number", Value: data.Age, Error: data.Error("age"),
			Attrs: fmt.Sprintf(`required min="%d" max="%d"`, models.MinPlayerAge, models.MaxPlayerAge)})
		shared.Field(ctx, hw, shared.FieldData{Name: "number", Label: "Number", Type: "number", Value: data.Number, Error: data.Error("number")})
		shared.Field(ctx, hw, shared.FieldData{Name: "nationality", Label: "Nationality", Value: data.Nationality})
		shared.Field(ctx, hw, shared.FieldData{Name: "position", Label: "Position", Value: data.Position})
		submit := "Create"
		if data.IsEdit() {
			submit = "Save"
		}
		hw.Raw(`<div class="flex justify-end gap-2">` + shared.CancelButton)
		hw.Printf(`<button type="submit" class="px-3 py-2 rounded bg-blue-600 text-white">%s</button></div>`, submit)
		hw.Raw(`</form>`)
	}))
}

func PlayerDeleteModal(p models.Player) templ.Component {
	return shared.Modal("Delete Player", shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<p>Are you sure you want to delete <strong>%s</strong>? This cannot be undone.</p>`, p.Name)
		hw.Raw(`<div class="mt-4 flex justify-end gap-2">` + shared.CancelButton)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded bg-red-600 text-white" hx-delete="%s" hx-target="%s">Delete</button></div>`,
			shared.ResourcePath(basePath, p.ID), shared.ModalTarget)
	}))
}
