// internal/api/teams/handlers.go
package teams

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/api/htmx"
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/paginate"
	"github.com/codr1/Rosterboard/internal/request"
	"github.com/codr1/Rosterboard/internal/resource"
	teamtempl "github.com/codr1/Rosterboard/internal/templates/components/teams"
)

const (
	resourceName   = "teams"
	changedEvent   = "teams-changed"
	toastsEvent    = "toasts-changed"
	loadingToastID = "teams-loading"
)

var (
	store    *resource.Teams
	notifier *apiutil.Notifier
	pageSize = 18
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(teams *resource.Teams, n *apiutil.Notifier, listPageSize int) {
	if teams == nil {
		log.Warn().Msg("InitHandlers called with nil team store; team handlers will be unavailable")
	}
	store = teams
	notifier = n
	if listPageSize > 0 {
		pageSize = listPageSize
	}
}

func loadStore(w http.ResponseWriter, r *http.Request) *resource.Teams {
	if store == nil {
		log.Ctx(r.Context()).Error().Msg("Team store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return store
}

// /api/v1/teams
func HandleTeamsList(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	if r.URL.Query().Get("refresh") == "1" || !s.State().Loaded {
		notifier.Loading(loadingToastID, "Loading teams...")
		s.Refetch(ctx, resource.Callbacks[[]models.Team]{
			OnSuccess: func(items []models.Team) {
				notifier.Loaded(loadingToastID, fmt.Sprintf("Successfully loaded %d teams!", len(items)))
			},
			OnError: func(msg string) {
				notifier.LoadFailed(loadingToastID, "Failed to load teams: "+msg)
			},
		})
		htmx.Trigger(w, toastsEvent)
	}

	state := s.State()
	page := paginate.Paginate(state.Data, pageSize, request.Page(r))

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
			"teams":      page.Items,
			"current_page": page.CurrentPage,
			"total_pages":  page.TotalPages,
			"error":        state.Err,
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to write teams list response")
		}
		return
	}

	component := teamtempl.TeamList(teamtempl.ListData{Page: page, Err: state.Err})
	apiutil.RenderHTMLComponent(ctx, w, component, nil, "Failed to render teams list", "Failed to render list")
}

// /api/v1/teams/new
func HandleTeamNew(w http.ResponseWriter, r *http.Request) {
	component := teamtempl.TeamFormModal(teamtempl.FormData{})
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render new team form", "Failed to render form")
}

// POST /api/v1/teams
func HandleTeamCreate(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	form, input, err := parseTeamForm(r)
	if err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	req := models.CreateTeamRequest{Name: input.name, Sport: input.sport, City: input.city}
	req.Normalize()
	if err := req.Validate(); err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	_, ok := s.Create(ctx, req, resource.Callbacks[models.Team]{
		OnSuccess: func(t models.Team) {
			notifier.Succeeded(ctx, resourceName, "create", t.ID, fmt.Sprintf("Team %q created successfully!", t.Name))
		},
		OnError: func(msg string) {
			notifier.Failed(ctx, resourceName, "create", "", "Failed to create team: "+msg)
		},
	})
	if !ok {
		form.FormError = s.State().Err
		htmx.Trigger(w, toastsEvent)
		renderForm(w, r, http.StatusOK, form)
		return
	}

	htmx.Trigger(w, changedEvent, toastsEvent)
	w.WriteHeader(http.StatusOK)
}

// /api/v1/teams/{id}/edit
func HandleTeamEdit(w http.ResponseWriter, r *http.Request) {
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	renderForm(w, r, http.StatusOK, teamtempl.NewFormData(team))
}

// PUT /api/v1/teams/{id}
func HandleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	form, input, err := parseTeamForm(r)
	form.ID = id
	if err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	req := models.NewUpdateTeamRequest(input.name, input.sport, input.city)
	if err := req.Validate(); err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	_, ok := s.Update(ctx, id, req, resource.Callbacks[models.Team]{
		OnSuccess: func(t models.Team) {
			notifier.Succeeded(ctx, resourceName, "update", id, fmt.Sprintf("Team %q updated successfully!", t.Name))
		},
		OnError: func(msg string) {
			notifier.Failed(ctx, resourceName, "update", id, "Failed to update team: "+msg)
		},
	})
	if !ok {
		form.FormError = s.State().Err
		htmx.Trigger(w, toastsEvent)
		renderForm(w, r, http.StatusOK, form)
		return
	}

	htmx.Trigger(w, changedEvent, toastsEvent)
	w.WriteHeader(http.StatusOK)
}

// /api/v1/teams/{id}/delete
func HandleTeamDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	team, ok := findTeam(w, r)
	if !ok {
		return
	}
	component := teamtempl.TeamDeleteModal(team)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render delete team modal", "Failed to render modal")
}

// DELETE /api/v1/teams/{id}
func HandleTeamDelete(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return
	}

	deleted := s.Delete(ctx, id, resource.Callbacks[string]{
		OnSuccess: func(string) {
			notifier.Succeeded(ctx, resourceName, "delete", id, "Team deleted successfully!")
		},
		OnError: func(msg string) {
			notifier.Failed(ctx, resourceName, "delete", id, "Failed to delete team: "+msg)
		},
	})
	if !deleted {
		// The error is shown as a toast; the list keeps its data.
		s.ResetState()
		htmx.Trigger(w, toastsEvent)
		w.WriteHeader(http.StatusOK)
		return
	}

	htmx.Trigger(w, changedEvent, toastsEvent)
	w.WriteHeader(http.StatusOK)
}

func findTeam(w http.ResponseWriter, r *http.Request) (models.Team, bool) {
	s := loadStore(w, r)
	if s == nil {
		return models.Team{}, false
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid team ID", http.StatusBadRequest)
		return models.Team{}, false
	}
	s.EnsureLoaded(r.Context())
	team, ok := s.Find(id)
	if !ok {
		http.Error(w, "Team not found", http.StatusNotFound)
		return models.Team{}, false
	}
	return team, true
}

type teamInput struct {
	name  string
	sport string
	city  string
}

func parseTeamForm(r *http.Request) (teamtempl.FormData, teamInput, error) {
	if err := r.ParseForm(); err != nil {
		return teamtempl.FormData{}, teamInput{}, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form data", Err: err}
	}
	form := teamtempl.FormData{
		Name:  r.FormValue("name"),
		Sport: r.FormValue("sport"),
		City:  r.FormValue("city"),
	}
	return form, teamInput{
		name:  strings.TrimSpace(form.Name),
		sport: strings.TrimSpace(form.Sport),
		city:  strings.TrimSpace(form.City),
	}, nil
}

func renderInvalid(w http.ResponseWriter, r *http.Request, form teamtempl.FormData, err error) {
	var herr apiutil.HandlerError
	if errors.As(err, &herr) {
		http.Error(w, herr.Message, herr.Status)
		return
	}
	var ferr models.FieldError
	if errors.As(err, &ferr) {
		form.Errors = map[string]string{ferr.Field: ferr.Error()}
	} else {
		form.FormError = err.Error()
	}
	renderForm(w, r, http.StatusUnprocessableEntity, form)
}

func renderForm(w http.ResponseWriter, r *http.Request, status int, form teamtempl.FormData) {
	component := teamtempl.TeamFormModal(form)
	apiutil.RenderHTMLStatus(r.Context(), w, status, component, nil, "Failed to render team form", "Failed to render form")
}
