package teams

import (
	"context"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/templates/components/shared"
)

const (
	ListID   = "teams-list"
	basePath = "/api/v1/teams"
)

func TeamList(data ListData) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<section id="%s" hx-get="%s?page=%d" hx-trigger="teams-changed from:body" hx-swap="outerHTML">`,
			ListID, basePath, data.Page.CurrentPage)
		hw.Raw(`<div class="flex items-center justify-between mb-4"><h2 class="text-xl font-semibold">Teams</h2><div class="flex gap-2">`)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded border" hx-get="%s?page=%d&refresh=1" hx-target="#%s" hx-swap="outerHTML">Refresh</button>`,
			basePath, data.Page.CurrentPage, ListID)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded bg-blue-600 text-white" hx-get="%s/new" hx-target="%s">Add Team</button>`,
			basePath, shared.ModalTarget)
		hw.Raw(`</div></div>`)
		hw.Component(ctx, shared.ErrorBanner(data.Err))

		if data.Page.TotalItems == 0 && data.Err == "" {
			hw.Raw(`<p class="text-gray-500">No teams yet.</p>`)
		}
		hw.Raw(`<div class="grid gap-4 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, t := range data.Page.Items {
			hw.Component(ctx, TeamCard(t))
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

// TeamCard shows the team badge (first letter of the name) with sport and city.
func TeamCard(t models.Team) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<article class="rounded-lg border p-4 shadow-sm" id="team-%s">`, t.ID)
		hw.Printf(`<div class="flex items-center gap-3"><span class="flex h-10 w-10 items-center justify-center rounded-full bg-blue-100 font-bold text-blue-700" aria-hidden="true">%s</span>`, t.Initial())
		hw.Printf(`<div><h3 class="font-semibold">%s</h3><p class="text-sm text-gray-500">%s &middot; %s</p></div></div>`, t.Name, t.Sport, t.City)
		path := shared.ResourcePath(basePath, t.ID)
		hw.Raw(`<div class="mt-3 flex gap-2">`)
		hw.Printf(`<button type="button" class="text-blue-600" hx-get="%s/edit" hx-target="%s">Edit</button>`, path, shared.ModalTarget)
		hw.Printf(`<button type="button" class="text-red-600" hx-get="%s/delete" hx-target="%s">Delete</button>`, path, shared.ModalTarget)
		hw.Printf(`<button type="button" class="text-gray-700" hx-get="%s/edit" hx-target="%s">Manage Roster</button>`,
			shared.ResourcePath("/api/v1/rosters", t.ID), shared.ModalTarget)
		hw.Raw(`</div></article>`)
	})
}

func TeamFormModal(data FormData) templ.Component {
	title := "Create Team"
	if data.IsEdit() {
		title = "Update Team"
	}
	return shared.Modal(title, shared.Component(func(ctx context.Context, hw *shared.Writer) {
		if data.IsEdit() {
			hw.Printf(`<form hx-put="%s" hx-target="%s" class="space-y-3">`, shared.ResourcePath(basePath, data.ID), shared.ModalTarget)
		} else {
			hw.Printf(`<form hx-post="%s" hx-target="%s" class="space-y-3">`, basePath, shared.ModalTarget)
		}
		hw.Component(ctx, shared.ErrorBanner(data.FormError))
		shared.Field(ctx, hw, shared.FieldData{Name: "name", Label: "Name", Value: data.Name, Error: data.Error("name"), Attrs: "required"})
		shared.Field(ctx, hw, shared.FieldData{Name: "sport", Label: "Sport", Value: data.Sport, Error: data.Error("sport"), Attrs: "required"})
		shared.Field(ctx, hw, shared.FieldData{Name: "city", Label: "City", Value: data.City, Error: data.Error("city"), Attrs: "required"})
		submit := "Create"
		if data.IsEdit() {
			submit = "Save"
		}
		hw.Raw(`<div class="flex justify-end gap-2">` + shared.CancelButton)
		hw.Printf(`<button type="submit" class="px-3 py-2 rounded bg-blue-600 text-white">%s</button></div>`, submit)
		hw.Raw(`</form>`)
	}))
}

func TeamDeleteModal(t models.Team) templ.Component {
	return shared.Modal("Delete Team", shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<p>Are you sure you want to delete <strong>%s</strong>? This cannot be undone.</p>`, t.Name)
		hw.Raw(`<div class="mt-4 flex justify-end gap-2">` + shared.CancelButton)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded bg-red-600 text-white" hx-delete="%s" hx-target="%s">Delete</button></div>`,
			shared.ResourcePath(basePath, t.ID), shared.ModalTarget)
	}))
}
