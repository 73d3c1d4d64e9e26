// internal/api/rosters/handlers.go
package rosters

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/api/htmx"
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/paginate"
	"github.com/codr1/Rosterboard/internal/request"
	"github.com/codr1/Rosterboard/internal/resource"
	"github.com/codr1/Rosterboard/internal/roster"
	rostertempl "github.com/codr1/Rosterboard/internal/templates/components/rosters"
	"github.com/codr1/Rosterboard/internal/toast"
)

const (
	resourceName = "rosters"
	changedEvent = "rosters-changed"
	toastsEvent  = "toasts-changed"
)

// Deps are the collaborators shared by the roster handlers.
type Deps struct {
	Players     *resource.Players
	Teams       *resource.Teams
	PlayerTeams *resource.PlayerTeams
	Reconciler  *roster.Reconciler
	Notifier    *apiutil.Notifier
}

var (
	deps           Deps
	listPageSize   = 18
	editorPageSize = 10
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(d Deps, listSize, editorSize int) {
	if d.Players == nil || d.Teams == nil || d.PlayerTeams == nil || d.Reconciler == nil {
		log.Warn().Msg("InitHandlers called with missing roster dependencies; roster handlers will be unavailable")
	}
	deps = d
	if listSize > 0 {
		listPageSize = listSize
	}
	if editorSize > 0 {
		editorPageSize = editorSize
	}
}

func ready(w http.ResponseWriter, r *http.Request) bool {
	if deps.Players == nil || deps.Teams == nil || deps.PlayerTeams == nil || deps.Reconciler == nil {
		log.Ctx(r.Context()).Error().Msg("Roster handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return false
	}
	return true
}

// /api/v1/rosters
func HandleRostersList(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	ctx := r.Context()
	links := deps.PlayerTeams

	if r.URL.Query().Get("refresh") == "1" || !links.State().Loaded {
		links.Refetch(ctx, resource.Callbacks[[]models.TeamRoster]{
			OnSuccess: func(rows []models.TeamRoster) {
				if len(rows) == 0 {
					deps.Notifier.Notify(toast.Info, "No player team found.", toast.SuccessDuration)
					return
				}
				deps.Notifier.Notify(toast.Success, fmt.Sprintf("Successfully fetched %d player teams.", len(rows)), toast.SuccessDuration)
			},
			OnError: func(msg string) {
				deps.Notifier.Notify(toast.Error, "Error fetching player teams: "+msg, toast.ErrorDuration)
			},
		})
		htmx.Trigger(w, toastsEvent)
	}
	deps.Teams.EnsureLoaded(ctx)

	state := links.State()
	teams := deps.Teams.Items()
	cards := make([]rostertempl.Card, 0, len(state.Data))
	for _, row := range state.Data {
		cards = append(cards, rostertempl.Card{Row: row, TeamID: resolveTeamID(row, teams)})
	}
	page := paginate.Paginate(cards, listPageSize, request.Page(r))

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
			"player_teams": paginate.Paginate(state.Data, listPageSize, page.CurrentPage).Items,
			"current_page": page.CurrentPage,
			"total_pages":  page.TotalPages,
			"error":        state.Err,
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to write rosters list response")
		}
		return
	}

	component := rostertempl.RosterList(rostertempl.ListData{Page: page, Err: state.Err})
	apiutil.RenderHTMLComponent(ctx, w, component, nil, "Failed to render rosters list", "Failed to render list")
}

// resolveTeamID maps a listing row to a known team, by embedded id first and
// then by name. Empty when neither matches.
func resolveTeamID(row models.TeamRoster, teams []models.Team) string {
	if row.Team == nil {
		return ""
	}
	if row.Team.ID != "" {
		for _, t := range teams {
			if t.ID == row.Team.ID {
				return t.ID
			}
		}
	}
	for _, t := range teams {
		if t.Name == row.Team.Name {
			return t.ID
		}
	}
	return ""
}

// /api/v1/rosters/{teamID}/edit
func HandleRosterEdit(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	deps.Players.EnsureLoaded(ctx)
	deps.PlayerTeams.EnsureLoaded(ctx)

	initial := roster.InitialSelection(team, deps.PlayerTeams.Items(), deps.Players.Items())
	sel := roster.NewSelection(initial)
	page := paginate.ParsePage(r.URL.Query().Get("page"))

	errMsg := deps.PlayerTeams.State().Err
	if errMsg == "" {
		errMsg = deps.Players.State().Err
	}
	renderEditor(w, r, http.StatusOK, team, sel, page, errMsg)
}

// POST /api/v1/rosters/{teamID}/editor
//
// Re-renders the editor after a page change or a select-all toggle. The
// selection comes back from the form, so nothing is kept server-side.
func HandleRosterEditor(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	sel, err := selectionFromForm(r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	deps.Players.EnsureLoaded(r.Context())

	page := paginate.ParsePage(r.FormValue("page"))
	switch r.FormValue("action") {
	case rostertempl.ActionPage:
		page = paginate.ParsePage(r.FormValue("goto"))
	case rostertempl.ActionTogglePage:
		sel.SelectPage(deps.Players.Items(), editorPageSize, page, r.FormValue("page_all") == "on")
	default:
		http.Error(w, "Unknown editor action", http.StatusBadRequest)
		return
	}
	renderEditor(w, r, http.StatusOK, team, sel, page, "")
}

// POST /api/v1/rosters/{teamID}
func HandleRosterSubmit(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	sel, err := selectionFromForm(r)
	if err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	diff := sel.Diff()
	if diff.Empty() {
		w.WriteHeader(http.StatusOK)
		return
	}

	deps.Players.EnsureLoaded(ctx)
	deps.PlayerTeams.EnsureLoaded(ctx)
	result, err := deps.Reconciler.Apply(ctx, &team, diff, deps.PlayerTeams.Items(), deps.Players.Items())
	// Partial progress is never rolled back, so the listing is stale either way.
	deps.PlayerTeams.Invalidate()

	if err != nil {
		deps.Notifier.Failed(ctx, resourceName, "update", team.ID, "Failed to update player team: "+err.Error())
		htmx.Trigger(w, changedEvent, toastsEvent)
		// Rebase on what the backend now holds so a retry only sends what is left.
		deps.PlayerTeams.EnsureLoaded(ctx)
		initial := roster.InitialSelection(team, deps.PlayerTeams.Items(), deps.Players.Items())
		sel = roster.RestoreSelection(initial, sel.Selected())
		renderEditor(w, r, http.StatusOK, team, sel, paginate.ParsePage(r.FormValue("page")), err.Error())
		return
	}

	deps.Notifier.Succeeded(ctx, resourceName, "update", team.ID,
		fmt.Sprintf("Roster for %q updated: %d added, %d removed.", team.Name, result.Created, result.Deleted))
	htmx.Trigger(w, changedEvent, toastsEvent)
	w.WriteHeader(http.StatusOK)
}

// /api/v1/rosters/{teamID}/delete
func HandleRosterDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	deps.PlayerTeams.EnsureLoaded(r.Context())

	component := rostertempl.RosterDeleteModal(rostertempl.DeleteData{
		Team:      team,
		LinkCount: countTeamRows(team, deps.PlayerTeams.Items()),
	})
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render delete roster modal", "Failed to render modal")
}

// DELETE /api/v1/rosters/{teamID}
func HandleRosterDelete(w http.ResponseWriter, r *http.Request) {
	if !ready(w, r) {
		return
	}
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	deps.PlayerTeams.EnsureLoaded(ctx)
	result, err := deps.Reconciler.DeleteAll(ctx, &team, deps.PlayerTeams.Items())
	deps.PlayerTeams.Invalidate()

	if err != nil {
		deps.Notifier.Failed(ctx, resourceName, "delete", team.ID, "Failed to delete team relationships: "+err.Error())
		htmx.Trigger(w, changedEvent, toastsEvent)
		w.WriteHeader(http.StatusOK)
		return
	}

	deps.Notifier.Succeeded(ctx, resourceName, "delete", team.ID,
		fmt.Sprintf("Removed %d player assignments from %q.", result.Deleted, team.Name))
	htmx.Trigger(w, changedEvent, toastsEvent)
	w.WriteHeader(http.StatusOK)
}

func findTeam(w http.ResponseWriter, r *http.Request) (models.Team, bool) {
	id, err := apiutil.PathID(r, "teamID")
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return models.Team{}, false
	}
	deps.Teams.EnsureLoaded(r.Context())
	team, ok := deps.Teams.Find(id)
	if !ok {
		http.Error(w, "Team not found", http.StatusNotFound)
		return models.Team{}, false
	}
	return team, true
}

func selectionFromForm(r *http.Request) (*roster.Selection, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	initial := roster.NewSet(apiutil.FormValues(r, "initial")...)
	selected := roster.NewSet(apiutil.FormValues(r, "selected")...)
	return roster.RestoreSelection(initial, selected), nil
}

func countTeamRows(team models.Team, rows []models.TeamRoster) int {
	n := 0
	for _, row := range rows {
		if row.Team != nil && row.Team.Name == team.Name && row.ID != "" {
			n++
		}
	}
	return n
}

func renderEditor(w http.ResponseWriter, r *http.Request, status int, team models.Team, sel *roster.Selection, page int, errMsg string) {
	players := deps.Players.Items()
	component := rostertempl.RosterEditor(rostertempl.EditorData{
		Team:            team,
		Page:            paginate.Paginate(players, editorPageSize, page),
		Selection:       sel,
		PageAllSelected: sel.PageFullySelected(players, editorPageSize, page),
		Err:             errMsg,
	})
	apiutil.RenderHTMLStatus(r.Context(), w, status, component, nil, "Failed to render roster editor", "Failed to render editor")
}
