package rosters

import (
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/paginate"
	"github.com/codr1/Rosterboard/internal/roster"
)

// Card is one row of the roster listing. TeamID is resolved against the team
// list because the listing does not always embed it; empty means the team
// could not be found and the row cannot be edited.
type Card struct {
	Row    models.TeamRoster
	TeamID string
}

type ListData struct {
	Page paginate.Page[Card]
	Err  string
}

type EditorData struct {
	Team      models.Team
	Page      paginate.Page[models.Player]
	Selection *roster.Selection
	// PageAllSelected drives the select-all checkbox for the current page.
	PageAllSelected bool
	Err             string
}

// OffPageSelected are the selected ids not shown on the current page. They
// travel as hidden inputs so paging keeps the selection.
func (d EditorData) OffPageSelected() []string {
	if d.Selection == nil {
		return nil
	}
	onPage := roster.NewSet()
	for _, p := range d.Page.Items {
		onPage.Add(p.ID)
	}
	return d.Selection.Selected().Minus(onPage).Sorted()
}

type DeleteData struct {
	Team      models.Team
	LinkCount int
}
