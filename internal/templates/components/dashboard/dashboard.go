package dashboard

import (
	"context"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/templates/components/shared"
)

type Tab struct {
	Key   string
	Label string
	URL   string
}

var Tabs = []Tab{
	{Key: "players", Label: "Players", URL: "/api/v1/players"},
	{Key: "teams", Label: "Teams", URL: "/api/v1/teams"},
	{Key: "rosters", Label: "Rosters", URL: "/api/v1/rosters"},
	{Key: "activity", Label: "Activity", URL: "/api/v1/activity"},
}

// TabByKey returns the tab for key, defaulting to players.
func TabByKey(key string) Tab {
	for _, tab := range Tabs {
		if tab.Key == key {
			return tab
		}
	}
	return Tabs[0]
}

// Page renders the tab bar and lazily loads the active tab's list.
func Page(active Tab) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Raw(`<nav class="mb-6 flex gap-2 border-b" role="tablist" hx-boost="true">`)
		for _, tab := range Tabs {
			classes := "px-4 py-2 text-gray-600"
			selected := "false"
			if tab.Key == active.Key {
				classes = "px-4 py-2 border-b-2 border-blue-600 font-semibold"
				selected = "true"
			}
			hw.Printf(`<a role="tab" aria-selected="%s" class="%s" href="/?tab=%s">%s</a>`,
				selected, classes, tab.Key, tab.Label)
		}
		hw.Raw(`</nav>`)
		hw.Printf(`<div id="tab-content"><div hx-get="%s" hx-trigger="load" hx-swap="outerHTML"><p class="text-gray-500">Loading...</p></div></div>`, active.URL)
	})
}
