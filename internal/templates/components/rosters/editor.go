package rosters

import (
	"context"
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/Rosterboard/internal/templates/components/shared"
)

// Editor actions posted back to the editor endpoint.
const (
	ActionPage       = "page"
	ActionTogglePage = "toggle_page"
)

// RosterEditor is the roster editor modal. The whole selection lives in the
// form: checkboxes for the current page, hidden inputs for everything else,
// so every post carries the complete state.
func RosterEditor(data EditorData) templ.Component {
	title := "Manage Roster: " + data.Team.Name
	return shared.Modal(title, shared.Component(func(ctx context.Context, hw *shared.Writer) {
		teamPath := shared.ResourcePath(basePath, data.Team.ID)
		editorPath := teamPath + "/editor"

		hw.Printf(`<form id="roster-editor" hx-post="%s" hx-target="%s">`, teamPath, shared.ModalTarget)
		hw.Component(ctx, shared.ErrorBanner(data.Err))
		hw.Printf(`<input type="hidden" name="page" value="%d">`, data.Page.CurrentPage)
		if data.Selection != nil {
			for _, id := range data.Selection.Initial().Sorted() {
				hw.Printf(`<input type="hidden" name="initial" value="%s">`, id)
			}
		}
		for _, id := range data.OffPageSelected() {
			hw.Printf(`<input type="hidden" name="selected" value="%s">`, id)
		}

		hw.Raw(`<table class="w-full text-sm"><thead><tr class="text-left">`)
		checked := ""
		if data.PageAllSelected {
			checked = " checked"
		}
		hw.Printf(`<th class="w-8"><input type="checkbox" name="page_all" value="on" aria-label="Select all on this page" hx-post="%s" hx-vals='{"action":"%s"}' hx-target="%s" hx-trigger="change"`,
			editorPath, ActionTogglePage, shared.ModalTarget)
		hw.Raw(checked + `></th><th>Name</th><th>Age</th><th>Number</th><th>Position</th></tr></thead><tbody>`)

		if len(data.Page.Items) == 0 {
			hw.Raw(`<tr><td colspan="5" class="py-4 text-center text-gray-500">No players available.</td></tr>`)
		}
		for _, p := range data.Page.Items {
			rowChecked := ""
			if data.Selection != nil && data.Selection.IsSelected(p.ID) {
				rowChecked = " checked"
			}
			hw.Printf(`<tr class="border-t"><td><input type="checkbox" name="selected" value="%s" aria-label="Select %s"`, p.ID, p.Name)
			hw.Raw(rowChecked + `></td>`)
			hw.Printf(`<td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>`, p.Name, p.Age, p.NumberLabel(), p.Position)
		}
		hw.Raw(`</tbody></table>`)

		hw.Component(ctx, shared.Pagination(shared.PaginationData{
			CurrentPage: data.Page.CurrentPage,
			TotalPages:  data.Page.TotalPages,
			Attrs: func(page int) string {
				return `hx-post="` + templ.EscapeString(editorPath) + `" hx-vals='{"action":"` + ActionPage + `","goto":"` + strconv.Itoa(page) + `"}' hx-target="` + shared.ModalTarget + `"`
			},
		}))

		hw.Raw(`<div class="mt-4 flex justify-end gap-2">` + shared.CancelButton)
		hw.Raw(`<button type="submit" class="px-3 py-2 rounded bg-blue-600 text-white">Save Roster</button></div>`)
		hw.Raw(`</form>`)
	}))
}
