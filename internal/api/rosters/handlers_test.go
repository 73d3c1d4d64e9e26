package rosters

// NOTE: Tests cannot use t.Parallel() due to shared package state.

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/backend"
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/resource"
	"github.com/codr1/Rosterboard/internal/roster"
	"github.com/codr1/Rosterboard/internal/toast"
)

type fakeBackend struct {
	mu        sync.Mutex
	players   []models.Player
	teams     []models.Team
	rows      []models.TeamRoster
	failPaths map[string]int
	created   []models.CreatePlayerTeamRequest
	deleted   []string
	listCalls int
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	if status, ok := f.failPaths[r.Method+" "+r.URL.Path]; ok {
		w.WriteHeader(status)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/players/":
		writeEnvelope(w, f.players)
	case r.Method == http.MethodGet && r.URL.Path == "/teams/":
		writeEnvelope(w, f.teams)
	case r.Method == http.MethodGet && r.URL.Path == "/players_team/":
		f.listCalls++
		writeEnvelope(w, f.rows)
	case r.Method == http.MethodPost && r.URL.Path == "/players_team/":
		var req models.CreatePlayerTeamRequest
		_ = json.Unmarshal(body, &req)
		f.created = append(f.created, req)
		writeEnvelope(w, models.PlayerTeam{ID: "link-" + req.PlayerID, PlayerID: req.PlayerID, TeamID: req.TeamID})
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/players_team/"):
		id := strings.TrimPrefix(r.URL.Path, "/players_team/")
		f.deleted = append(f.deleted, id)
		kept := f.rows[:0]
		for _, row := range f.rows {
			if row.ID != id {
				kept = append(kept, row)
			}
		}
		f.rows = kept
		writeEnvelope(w, nil)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeEnvelope(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": 200, "message": "ok", "data": data})
}

func hawksBackend() *fakeBackend {
	return &fakeBackend{
		players: []models.Player{
			{ID: "p1", Name: "Alice", Age: 24},
			{ID: "p2", Name: "Bob", Age: 30},
			{ID: "p3", Name: "Cara", Age: 19},
		},
		teams: []models.Team{
			{ID: "t1", Name: "Hawks", Sport: "Hockey", City: "Oslo"},
			{ID: "t2", Name: "Owls", Sport: "Hockey", City: "Bergen"},
		},
		rows: []models.TeamRoster{
			{ID: "l1", Team: &models.RosterTeam{Name: "Hawks"}, Players: &models.RosterPlayers{IsArray: true, ObjectArray: []models.RosterPlayer{{Name: "Alice"}}}},
			{ID: "l2", Team: &models.RosterTeam{Name: "Hawks"}, Players: &models.RosterPlayers{IsArray: true, ObjectArray: []models.RosterPlayer{{Name: "Bob"}}}},
			{ID: "l3", Team: &models.RosterTeam{Name: "Owls"}, Players: &models.RosterPlayers{IsArray: true, ObjectArray: []models.RosterPlayer{{Name: "Alice"}}}},
			{ID: "l4", Team: &models.RosterTeam{Name: "Ghosts"}, Players: &models.RosterPlayers{IsArray: true}},
		},
	}
}

func setup(t *testing.T, fake *fakeBackend) (Deps, *toast.Queue) {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL)
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	toasts := toast.NewQueue(clock)
	d := Deps{
		Players:     resource.NewPlayers(client),
		Teams:       resource.NewTeams(client),
		PlayerTeams: resource.NewPlayerTeams(client),
		Reconciler:  roster.NewReconciler(client, clock),
		Notifier:    apiutil.NewNotifier(toasts, nil, clock),
	}
	InitHandlers(d, 18, 2)
	return d, toasts
}

func newMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/rosters", HandleRostersList)
	mux.HandleFunc("GET /api/v1/rosters/{teamID}/edit", HandleRosterEdit)
	mux.HandleFunc("POST /api/v1/rosters/{teamID}/editor", HandleRosterEditor)
	mux.HandleFunc("POST /api/v1/rosters/{teamID}", HandleRosterSubmit)
	mux.HandleFunc("GET /api/v1/rosters/{teamID}/delete", HandleRosterDeleteConfirm)
	mux.HandleFunc("DELETE /api/v1/rosters/{teamID}", HandleRosterDelete)
	return mux
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleRostersListResolvesTeams(t *testing.T) {
	fake := hawksBackend()
	_, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rosters", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "/api/v1/rosters/t1/edit") || !strings.Contains(body, "/api/v1/rosters/t2/edit") {
		t.Fatalf("expected edit links for known teams, got %s", body)
	}
	if strings.Contains(body, "/api/v1/rosters//edit") {
		t.Fatalf("unknown team must not get an edit link")
	}
	if !strings.Contains(body, "Ghosts") {
		t.Fatalf("unresolved rows should still be listed")
	}

	list := toasts.List()
	if len(list) != 1 || list[0].Message != "Successfully fetched 4 player teams." {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestHandleRostersListEmptyAndFailure(t *testing.T) {
	fake := &fakeBackend{}
	_, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rosters", nil))
	if list := toasts.List(); len(list) != 1 || list[0].Type != toast.Info || list[0].Message != "No player team found." {
		t.Fatalf("unexpected toasts: %+v", list)
	}

	toasts.ClearAll()
	fake.failPaths = map[string]int{"GET /players_team/": http.StatusInternalServerError}
	rec = httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rosters?refresh=1", nil))
	if !strings.Contains(rec.Body.String(), "HTTP error! status: 500") {
		t.Fatalf("expected error banner, got %s", rec.Body.String())
	}
	if list := toasts.List(); len(list) != 1 || list[0].Message != "Error fetching player teams: HTTP error! status: 500" {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestHandleRosterEditPreselectsByName(t *testing.T) {
	fake := hawksBackend()
	setup(t, fake)

	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rosters/t1/edit", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`name="initial" value="p1"`,
		`name="initial" value="p2"`,
		`name="selected" value="p1" aria-label="Select Alice" checked`,
		`name="page_all" value="on"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in editor, got %s", want, body)
		}
	}
	if strings.Contains(body, `name="initial" value="p3"`) {
		t.Fatalf("p3 is not on the roster")
	}

	rec = httptest.NewRecorder()
	newMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rosters/nope/edit", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandleRosterEditorKeepsSelectionAcrossPages(t *testing.T) {
	fake := hawksBackend()
	setup(t, fake)
	mux := newMux()

	// Page 1 holds p1 and p2; p3 is on page 2.
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/rosters/t1/editor", url.Values{
		"action":   {"page"},
		"goto":     {"2"},
		"page":     {"1"},
		"initial":  {"p1", "p2"},
		"selected": {"p2"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="page" value="2"`) {
		t.Fatalf("expected page 2, got %s", body)
	}
	if !strings.Contains(body, `type="hidden" name="selected" value="p2"`) {
		t.Fatalf("off-page selection should be carried as hidden input, got %s", body)
	}
	if strings.Contains(body, `name="selected" value="p1"`) {
		t.Fatalf("unchecked player must stay unchecked")
	}
	if !strings.Contains(body, `name="selected" value="p3" aria-label="Select Cara"`) {
		t.Fatalf("page 2 should list Cara, got %s", body)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/rosters/t1/editor", url.Values{
		"action":   {"toggle_page"},
		"page":     {"2"},
		"page_all": {"on"},
		"initial":  {"p1", "p2"},
		"selected": {"p2"},
	}))
	body = rec.Body.String()
	if !strings.Contains(body, `name="selected" value="p3" aria-label="Select Cara" checked`) {
		t.Fatalf("select-all should check the page, got %s", body)
	}
	if strings.Contains(body, `name="selected" value="p1"`) {
		t.Fatalf("select-all must not touch other pages")
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/rosters/t1/editor", url.Values{"action": {"bogus"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown action, got %d", rec.Code)
	}
}

func TestHandleRosterSubmitAppliesDiff(t *testing.T) {
	fake := hawksBackend()
	d, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/rosters/t1", url.Values{
		"initial":  {"p1", "p2"},
		"selected": {"p2", "p3"},
	}))

	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "rosters-changed") {
		t.Fatalf("expected rosters-changed, got %q", rec.Header().Get("HX-Trigger"))
	}

	if len(fake.created) != 1 {
		t.Fatalf("expected one create, got %+v", fake.created)
	}
	created := fake.created[0]
	if created.PlayerID != "p3" || created.TeamID != "t1" || created.Position != roster.PlaceholderPosition ||
		created.StartDate != "2025-06-01" || !created.IsActive {
		t.Fatalf("unexpected link request: %+v", created)
	}
	if len(fake.deleted) != 1 || fake.deleted[0] != "l1" {
		t.Fatalf("expected only the Hawks/Alice row deleted, got %v", fake.deleted)
	}
	if d.PlayerTeams.State().Loaded {
		t.Fatalf("listing should be invalidated after a submit")
	}
	if list := toasts.List(); len(list) != 1 || list[0].Message != `Roster for "Hawks" updated: 1 added, 1 removed.` {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestHandleRosterSubmitWithoutChangesSkipsBackend(t *testing.T) {
	fake := hawksBackend()
	setup(t, fake)

	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/rosters/t1", url.Values{
		"initial":  {"p1"},
		"selected": {"p1"},
	}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(fake.created) != 0 || len(fake.deleted) != 0 {
		t.Fatalf("no link calls expected, got %v %v", fake.created, fake.deleted)
	}
}

func TestHandleRosterSubmitFailureRebasesEditor(t *testing.T) {
	fake := hawksBackend()
	fake.failPaths = map[string]int{"DELETE /players_team/l1": http.StatusInternalServerError}
	_, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	newMux().ServeHTTP(rec, formRequest(http.MethodPost, "/api/v1/rosters/t1", url.Values{
		"initial":  {"p1", "p2"},
		"selected": {"p2", "p3"},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "HTTP error! status: 500") {
		t.Fatalf("expected editor with error, got %s", body)
	}
	// The listing still has Alice on the Hawks, so p1 stays in the initial set.
	if !strings.Contains(body, `name="initial" value="p1"`) {
		t.Fatalf("expected rebased initial selection, got %s", body)
	}

	list := toasts.List()
	if len(list) != 1 || list[0].Type != toast.Error || !strings.HasPrefix(list[0].Message, "Failed to update player team: remove player p1") {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestHandleRosterDeleteRemovesTeamRows(t *testing.T) {
	fake := hawksBackend()
	_, toasts := setup(t, fake)
	mux := newMux()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rosters/t1/delete", nil))
	if !strings.Contains(rec.Body.String(), "Remove all 2 player assignments") {
		t.Fatalf("unexpected confirm modal: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/rosters/t1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.Join(fake.deleted, ",") != "l1,l2" {
		t.Fatalf("unexpected deletes: %v", fake.deleted)
	}
	if list := toasts.List(); len(list) != 1 || list[0].Message != `Removed 2 player assignments from "Hawks".` {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestResolveTeamID(t *testing.T) {
	teams := []models.Team{{ID: "t1", Name: "Hawks"}, {ID: "t2", Name: "Owls"}}
	tests := []struct {
		name string
		row  models.TeamRoster
		want string
	}{
		{"by id", models.TeamRoster{Team: &models.RosterTeam{ID: "t2", Name: "Renamed"}}, "t2"},
		{"by name", models.TeamRoster{Team: &models.RosterTeam{Name: "Hawks"}}, "t1"},
		{"unknown", models.TeamRoster{Team: &models.RosterTeam{Name: "Ghosts"}}, ""},
		{"no team", models.TeamRoster{}, ""},
	}
	for _, tt := range tests {
		if got := resolveTeamID(tt.row, teams); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}
