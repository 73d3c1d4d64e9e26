// internal/api/players/handlers.go
package players

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
	playertempl "github.com/codr1/Rosterboard/internal/templates/components/players"
)

const (
	resourceName   = "players"
	changedEvent   = "players-changed"
	toastsEvent    = "toasts-changed"
	loadingToastID = "players-loading"
)

var (
	store    *resource.Players
	notifier *apiutil.Notifier
	pageSize = 18
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(players *resource.Players, n *apiutil.Notifier, listPageSize int) {
	if players == nil {
		log.Warn().Msg("InitHandlers called with nil player store; player handlers will be unavailable")
	}
	store = players
	notifier = n
	if listPageSize > 0 {
		pageSize = listPageSize
	}
}

func loadStore(w http.ResponseWriter, r *http.Request) *resource.Players {
	if store == nil {
		log.Ctx(r.Context()).Error().Msg("Player store not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return store
}

// /api/v1/players
func HandlePlayersList(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	if r.URL.Query().Get("refresh") == "1" || !s.State().Loaded {
		notifier.Loading(loadingToastID, "Loading players...")
		s.Refetch(ctx, resource.Callbacks[[]models.Player]{
			OnSuccess: func(items []models.Player) {
				notifier.Loaded(loadingToastID, fmt.Sprintf("Successfully loaded %d players!", len(items)))
			},
			OnError: func(msg string) {
				notifier.LoadFailed(loadingToastID, "Failed to load players: "+msg)
			},
		})
		htmx.Trigger(w, toastsEvent)
	}

	state := s.State()
	page := paginate.Paginate(state.Data, pageSize, request.Page(r))

	if apiutil.IsJSONRequest(r) {
		if err := apiutil.WriteJSON(w, http.StatusOK, map[string]any{
			"players":      page.Items,
			"current_page": page.CurrentPage,
			"total_pages":  page.TotalPages,
			"error":        state.Err,
		}); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to write players list response")
		}
		return
	}

	component := playertempl.PlayerList(playertempl.ListData{Page: page, Err: state.Err})
	apiutil.RenderHTMLComponent(ctx, w, component, nil, "Failed to render players list", "Failed to render list")
}

// /api/v1/players/new
func HandlePlayerNew(w http.ResponseWriter, r *http.Request) {
	component := playertempl.PlayerFormModal(playertempl.FormData{})
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render new player form", "Failed to render form")
}

// POST /api/v1/players
func HandlePlayerCreate(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	form, input, err := parsePlayerForm(r)
	if err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	req := models.CreatePlayerRequest{
		Name:        input.name,
		Age:         input.age,
		Number:      input.number,
		Nationality: input.nationality,
		Position:    input.position,
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	_, ok := s.Create(ctx, req, resource.Callbacks[models.Player]{
		OnSuccess: func(p models.Player) {
			notifier.Succeeded(ctx, resourceName, "create", p.ID, fmt.Sprintf("Player %q created successfully!", p.Name))
		},
		OnError: func(msg string) {
			notifier.Failed(ctx, resourceName, "create", "", "Failed to create player: "+msg)
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

// /api/v1/players/{id}/edit
func HandlePlayerEdit(w http.ResponseWriter, r *http.Request) {
	player, ok := findPlayer(w, r)
	if !ok {
		return
	}
	renderForm(w, r, http.StatusOK, playertempl.NewFormData(player))
}

// PUT /api/v1/players/{id}
func HandlePlayerUpdate(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	form, input, err := parsePlayerForm(r)
	form.ID = id
	if err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	req := models.NewUpdatePlayerRequest(input.name, input.age, input.number, input.nationality, input.position)
	if err := req.Validate(); err != nil {
		renderInvalid(w, r, form, err)
		return
	}

	_, ok := s.Update(ctx, id, req, resource.Callbacks[models.Player]{
		OnSuccess: func(p models.Player) {
			notifier.Succeeded(ctx, resourceName, "update", id, fmt.Sprintf("Player %q updated successfully!", p.Name))
		},
		OnError: func(msg string) {
			notifier.Failed(ctx, resourceName, "update", id, "Failed to update player: "+msg)
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

// /api/v1/players/{id}/delete
func HandlePlayerDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	player, ok := findPlayer(w, r)
	if !ok {
		return
	}
	component := playertempl.PlayerDeleteModal(player)
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render delete player modal", "Failed to render modal")
}

// DELETE /api/v1/players/{id}
func HandlePlayerDelete(w http.ResponseWriter, r *http.Request) {
	s := loadStore(w, r)
	if s == nil {
		return
	}
	ctx := r.Context()

	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return
	}

	deleted := s.Delete(ctx, id, resource.Callbacks[string]{
		OnSuccess: func(string) {
			notifier.Succeeded(ctx, resourceName, "delete", id, "Player deleted successfully!")
		},
		OnError: func(msg string) {
			notifier.Failed(ctx, resourceName, "delete", id, "Failed to delete player: "+msg)
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

func findPlayer(w http.ResponseWriter, r *http.Request) (models.Player, bool) {
	s := loadStore(w, r)
	if s == nil {
		return models.Player{}, false
	}
	id, err := apiutil.PathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid player ID", http.StatusBadRequest)
		return models.Player{}, false
	}
	s.EnsureLoaded(r.Context())
	player, ok := s.Find(id)
	if !ok {
		http.Error(w, "Player not found", http.StatusNotFound)
		return models.Player{}, false
	}
	return player, true
}

type playerInput struct {
	name        string
	age         int
	number      *int
	nationality string
	position    string
}

// parsePlayerForm returns the submitted values for re-rendering alongside
// the parsed input.
func parsePlayerForm(r *http.Request) (playertempl.FormData, playerInput, error) {
	var input playerInput
	if err := r.ParseForm(); err != nil {
		return playertempl.FormData{}, input, apiutil.HandlerError{Status: http.StatusBadRequest, Message: "Invalid form data", Err: err}
	}
	form := playertempl.FormData{
		Name:        r.FormValue("name"),
		Age:         r.FormValue("age"),
		Number:      r.FormValue("number"),
		Nationality: r.FormValue("nationality"),
		Position:    r.FormValue("position"),
	}
	input.name = strings.TrimSpace(form.Name)
	input.nationality = strings.TrimSpace(form.Nationality)
	input.position = strings.TrimSpace(form.Position)

	age, err := apiutil.ParseIntField(form.Age, "age")
	if err != nil {
		return form, input, models.FieldError{Field: "age", Reason: strings.TrimPrefix(err.Error(), "age ")}
	}
	input.age = age

	number, err := apiutil.ParseOptionalIntField(form.Number, "number")
	if err != nil {
		return form, input, models.FieldError{Field: "number", Reason: strings.TrimPrefix(err.Error(), "number ")}
	}
	input.number = number
	return form, input, nil
}

func renderInvalid(w http.ResponseWriter, r *http.Request, form playertempl.FormData, err error) {
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

func renderForm(w http.ResponseWriter, r *http.Request, status int, form playertempl.FormData) {
	component := playertempl.PlayerFormModal(form)
	apiutil.RenderHTMLStatus(r.Context(), w, status, component, nil, "Failed to render player form", "Failed to render form")
}
