package activity

import (
	"context"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/db"
	"github.com/codr1/Rosterboard/internal/templates/components/shared"
)

const ListID = "activity-list"

// ActivityList shows the most recent dashboard mutations, newest first.
func ActivityList(entries []db.ActivityEntry, errMsg string) templ.Component {
	return shared.Component(func(ctx context.Context, hw *shared.Writer) {
		hw.Printf(`<section id="%s" hx-get="/api/v1/activity" hx-trigger="players-changed from:body, teams-changed from:body, rosters-changed from:body" hx-swap="outerHTML">`, ListID)
		hw.Raw(`<h2 class="text-xl font-semibold mb-4">Recent Activity</h2>`)
		hw.Component(ctx, shared.ErrorBanner(errMsg))
		if len(entries) == 0 && errMsg == "" {
			hw.Raw(`<p class="text-gray-500">Nothing has changed yet.</p></section>`)
			return
		}
		hw.Raw(`<table class="w-full text-sm"><thead><tr class="text-left"><th>When</th><th>Resource</th><th>Action</th><th>Outcome</th><th>Message</th></tr></thead><tbody>`)
		for _, e := range entries {
			outcomeClass := "text-green-700"
			if e.Outcome == db.OutcomeFailure {
				outcomeClass = "text-red-700"
			}
			hw.Printf(`<tr class="border-t"><td>%s</td><td>%s</td><td>%s</td><td class="%s">%s</td><td>%s</td></tr>`,
				e.OccurredAt.Local().Format("2006-01-02 15:04:05"), e.Resource, e.Action, outcomeClass, string(e.Outcome), e.Message)
		}
		hw.Raw(`</tbody></table></section>`)
	})
}
