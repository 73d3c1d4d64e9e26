package players

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

	"github.com/jonboulle/clockwork"

	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/backend"
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/resource"
	"github.com/codr1/Rosterboard/internal/toast"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

type fakeBackend struct {
	mu       sync.Mutex
	players  []models.Player
	failWith int
	requests []recordedRequest
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})

	if f.failWith != 0 {
		w.WriteHeader(f.failWith)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/players/":
		writeEnvelope(w, f.players)
	case r.Method == http.MethodPost && r.URL.Path == "/players/":
		var p models.Player
		_ = json.Unmarshal(body, &p)
		p.ID = "p-new"
		f.players = append(f.players, p)
		writeEnvelope(w, p)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/players/"):
		var p models.Player
		_ = json.Unmarshal(body, &p)
		p.ID = strings.TrimPrefix(r.URL.Path, "/players/")
		writeEnvelope(w, p)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/players/"):
		writeEnvelope(w, map[string]string{})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeBackend) recorded() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func writeEnvelope(w http.ResponseWriter, data any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"status": 200, "message": "ok", "data": data})
}

func intPtr(v int) *int { return &v }

func setup(t *testing.T, fake *fakeBackend) (*resource.Players, *toast.Queue) {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := backend.New(srv.URL)
	if err != nil {
		t.Fatalf("backend client: %v", err)
	}
	clock := clockwork.NewFakeClock()
	toasts := toast.NewQueue(clock)
	players := resource.NewPlayers(client)
	InitHandlers(players, apiutil.NewNotifier(toasts, nil, clock), 2)
	return players, toasts
}

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func TestHandlePlayersListLoadsAndPaginates(t *testing.T) {
	fake := &fakeBackend{players: []models.Player{
		{ID: "p1", Name: "Alice", Age: 24},
		{ID: "p2", Name: "Bob", Age: 30},
		{ID: "p3", Name: "Cara", Age: 19},
	}}
	_, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	HandlePlayersList(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Cara") || strings.Contains(body, "Alice") {
		t.Fatalf("expected only page 2 players, got %s", body)
	}

	list := toasts.List()
	if len(list) != 1 || list[0].Message != "Successfully loaded 3 players!" {
		t.Fatalf("unexpected toasts: %+v", list)
	}

	rec = httptest.NewRecorder()
	HandlePlayersList(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players?page=1", nil))
	if got := len(fake.recorded()); got != 1 {
		t.Fatalf("cached list should not refetch, backend saw %d requests", got)
	}
}

func TestHandlePlayersListShowsBackendError(t *testing.T) {
	fake := &fakeBackend{failWith: http.StatusInternalServerError}
	players, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	HandlePlayersList(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players", nil))

	if !strings.Contains(rec.Body.String(), "HTTP error! status: 500") {
		t.Fatalf("expected error banner, got %s", rec.Body.String())
	}
	if st := players.State(); st.Loading || st.Err != "HTTP error! status: 500" {
		t.Fatalf("unexpected state: %+v", st)
	}
	list := toasts.List()
	if len(list) != 1 || list[0].Type != toast.Error || list[0].Message != "Failed to load players: HTTP error! status: 500" {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestHandlePlayerCreateValidation(t *testing.T) {
	fake := &fakeBackend{}
	setup(t, fake)

	tests := []struct {
		name   string
		values url.Values
		want   string
	}{
		{"blank name", url.Values{"name": {"  "}, "age": {"24"}}, "name is required"},
		{"too young", url.Values{"name": {"Al"}, "age": {"12"}}, "age must be between 16 and 50"},
		{"missing age", url.Values{"name": {"Al"}}, "age is required"},
		{"bad number", url.Values{"name": {"Al"}, "age": {"20"}, "number": {"ten"}}, "number must be a whole number"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		HandlePlayerCreate(rec, formRequest(http.MethodPost, "/api/v1/players", tt.values))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", tt.name, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tt.want) {
			t.Fatalf("%s: expected %q in %s", tt.name, tt.want, rec.Body.String())
		}
	}
	if got := len(fake.recorded()); got != 0 {
		t.Fatalf("invalid forms must not reach the backend, saw %d requests", got)
	}
}

func TestHandlePlayerCreateSendsOnlyFilledFields(t *testing.T) {
	fake := &fakeBackend{}
	players, toasts := setup(t, fake)

	rec := httptest.NewRecorder()
	HandlePlayerCreate(rec, formRequest(http.MethodPost, "/api/v1/players", url.Values{
		"name": {" Alice "}, "age": {"24"}, "number": {""}, "nationality": {""}, "position": {""},
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "players-changed") {
		t.Fatalf("expected players-changed trigger, got %q", rec.Header().Get("HX-Trigger"))
	}

	reqs := fake.recorded()
	if len(reqs) != 1 {
		t.Fatalf("expected one backend request, got %d", len(reqs))
	}
	var sent map[string]any
	if err := json.Unmarshal([]byte(reqs[0].Body), &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if len(sent) != 2 || sent["name"] != "Alice" || sent["age"] != float64(24) {
		t.Fatalf("unexpected payload: %v", sent)
	}

	if _, ok := players.Find("p-new"); !ok {
		t.Fatalf("created player not cached")
	}
	if list := toasts.List(); len(list) != 1 || list[0].Message != `Player "Alice" created successfully!` {
		t.Fatalf("unexpected toasts: %+v", list)
	}
}

func TestHandlePlayerCreateBackendFailureKeepsModal(t *testing.T) {
	fake := &fakeBackend{failWith: http.StatusBadGateway}
	setup(t, fake)

	rec := httptest.NewRecorder()
	HandlePlayerCreate(rec, formRequest(http.MethodPost, "/api/v1/players", url.Values{"name": {"Alice"}, "age": {"24"}}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "HTTP error! status: 502") || !strings.Contains(body, `value="Alice"`) {
		t.Fatalf("expected modal with error and submitted values, got %s", body)
	}
	if strings.Contains(rec.Header().Get("HX-Trigger"), "players-changed") {
		t.Fatalf("failed create must not trigger a list reload")
	}
}

func TestHandlePlayerUpdateAndDelete(t *testing.T) {
	fake := &fakeBackend{players: []models.Player{{ID: "p1", Name: "Alice", Age: 24, Number: intPtr(9)}}}
	players, _ := setup(t, fake)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/players/{id}/edit", HandlePlayerEdit)
	mux.HandleFunc("PUT /api/v1/players/{id}", HandlePlayerUpdate)
	mux.HandleFunc("DELETE /api/v1/players/{id}", HandlePlayerDelete)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players/p1/edit", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `value="9"`) {
		t.Fatalf("edit modal: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players/missing/edit", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown player, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, formRequest(http.MethodPut, "/api/v1/players/p1", url.Values{"name": {"Alicia"}, "age": {"25"}, "number": {"9"}}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated, ok := players.Find("p1")
	if !ok || updated.Name != "Alicia" || updated.Age != 25 {
		t.Fatalf("cache not patched: %+v", updated)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/players/p1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	if _, ok := players.Find("p1"); ok {
		t.Fatalf("deleted player still cached")
	}

	reqs := fake.recorded()
	last := reqs[len(reqs)-1]
	if last.Method != http.MethodDelete || last.Path != "/players/p1" {
		t.Fatalf("unexpected delete request: %+v", last)
	}
}
