package rosters

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/templates/components/shared"
)

const (
	ListID   = "rosters-list"
	basePath = "/api/v1/rosters"
)

// RosterList renders the player-team listing as cards.
func RosterList(data ListData) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<section id="%s" hx-get="%s?page=%d" hx-trigger="rosters-changed from:body, teams-changed from:body, players-changed from:body" hx-swap="outerHTML">`,
			ListID, basePath, data.Page.CurrentPage)
		hw.Raw(`<div class="flex items-center justify-between mb-4"><h2 class="text-xl font-semibold">Rosters</h2>`)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded border" hx-get="%s?page=%d&refresh=1" hx-target="#%s" hx-swap="outerHTML">Refresh</button></div>`,
			basePath, data.Page.CurrentPage, ListID)
		hw.Component(ctx, shared.ErrorBanner(data.Err))

		if data.Page.TotalItems == 0 && data.Err == "" {
			hw.Raw(`<p class="text-gray-500">No players are assigned to teams yet. Use "Manage Roster" on a team.</p>`)
		}
		hw.Raw(`<div class="grid gap-4 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, card := range data.Page.Items {
			hw.Component(ctx, RosterCard(card))
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

func RosterCard(card Card) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		row := card.Row
		hw.Printf(`<article class="rounded-lg border p-4 shadow-sm" id="roster-%s">`, row.ID)
		hw.Printf(`<h3 class="font-semibold">%s</h3>`, row.TeamName())
		if row.Team != nil {
			hw.Printf(`<p class="text-sm text-gray-500">%s &middot; %s</p>`, row.Team.Sport, row.Team.City)
		}

		names := row.PlayerNames()
		if len(names) == 0 {
			hw.Raw(`<p class="mt-2 text-sm text-gray-500">No players</p>`)
		} else {
			hw.Printf(`<p class="mt-2 text-sm">%s</p>`, strings.Join(names, ", "))
		}

		status := "Inactive"
		if row.IsActive {
			status = "Active"
		}
		details := []string{status}
		if row.Position != "" {
			details = append(details, row.Position)
		}
		if row.JerseyNumber != 0 {
			details = append(details, fmt.Sprintf("#%d", row.JerseyNumber))
		}
		if row.StartDate != "" {
			details = append(details, "since "+row.StartDate)
		}
		hw.Printf(`<p class="mt-1 text-xs text-gray-500">%s</p>`, strings.Join(details, " · "))

		if card.TeamID != "" {
			path := shared.ResourcePath(basePath, card.TeamID)
			hw.Raw(`<div class="mt-3 flex gap-2">`)
			hw.Printf(`<button type="button" class="text-blue-600" hx-get="%s/edit" hx-target="%s">Edit</button>`, path, shared.ModalTarget)
			hw.Printf(`<button type="button" class="text-red-600" hx-get="%s/delete" hx-target="%s">Delete</button>`, path, shared.ModalTarget)
			hw.Raw(`</div>`)
		}
		hw.Raw(`</article>`)
	})
}

// RosterDeleteModal confirms removing every link of a team.
func RosterDeleteModal(data DeleteData) templ.Component {
	return shared.Modal("Delete Roster", shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<p>Remove all %d player assignments from <strong>%s</strong>? The players and the team are kept.</p>`,
			data.LinkCount, data.Team.Name)
		hw.Raw(`<div class="mt-4 flex justify-end gap-2">` + shared.CancelButton)
		hw.Printf(`<button type="button" class="px-3 py-2 rounded bg-red-600 text-white" hx-delete="%s" hx-target="%s">Delete</button></div>`,
			shared.ResourcePath(basePath, data.Team.ID), shared.ModalTarget)
	}))
}
