package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codr1/Rosterboard/internal/config"
)

func fakeRosterAPI(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	envelope := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"status": 200, "message": "ok", "data": data})
	}
	mux.HandleFunc("GET /players/", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []map[string]any{{"_id": "p1", "name": "Alice", "age": 24}})
	})
	mux.HandleFunc("GET /teams/", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []map[string]any{{"_id": "t1", "name": "Hawks", "sport": "Hockey", "city": "Oslo"}})
	})
	mux.HandleFunc("GET /players_team/", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, []any{})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()

	body := fmt.Sprintf(`app:
  name: "Rosterboard Test"
  environment: "test"
  port: 8080

backend:
  base_url: %q

database:
  driver: "sqlite"
  filename: %q

dashboard:
  list_page_size: 18
  editor_page_size: 10
  refresh_cron: "0 0 1 1 *"
  static_dir: %q

rate_limit:
  enabled: true
  max_mutations: 1
  window: 1m

features:
  enable_metrics: true
  enable_refresh: true
`, apiURL, filepath.Join(t.TempDir(), "db", "activity.db"), t.TempDir())

	cfg, err := config.Parse([]byte(body))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate config: %v", err)
	}
	return cfg
}

func get(t *testing.T, client *http.Client, target string) (int, string) {
	t.Helper()

	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestServerServesDashboard(t *testing.T) {
	api := fakeRosterAPI(t)
	cfg := testConfig(t, api.URL)

	server, svc, err := newServer(cfg)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	t.Cleanup(svc.Close)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	client := ts.Client()

	if status, body := get(t, client, ts.URL+"/health"); status != http.StatusOK || body != "OK" {
		t.Fatalf("health: %d %q", status, body)
	}

	status, body := get(t, client, ts.URL+"/?tab=teams")
	if status != http.StatusOK || !strings.Contains(body, "<title>Rosterboard Test</title>") {
		t.Fatalf("dashboard: %d %s", status, body)
	}

	status, body = get(t, client, ts.URL+"/api/v1/players")
	if status != http.StatusOK || !strings.Contains(body, "Alice") {
		t.Fatalf("players list: %d %s", status, body)
	}

	status, body = get(t, client, ts.URL+"/api/v1/rosters")
	if status != http.StatusOK || !strings.Contains(body, "No players are assigned") {
		t.Fatalf("rosters list: %d %s", status, body)
	}

	status, body = get(t, client, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("metrics: %d", status)
	}
	for _, want := range []string{
		`rosterboard_http_requests_total{method="GET",route="GET /api/v1/players",status="200"} 1`,
		`rosterboard_backend_requests_total{method="GET",route="/players/",status="200"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in metrics", want)
		}
	}

	if jobs := svc.scheduler.Jobs(); len(jobs) != 2 {
		t.Fatalf("expected prune and refresh jobs, got %v", jobs)
	}
}

func TestServerRateLimitsMutations(t *testing.T) {
	api := fakeRosterAPI(t)
	cfg := testConfig(t, api.URL)

	server, svc, err := newServer(cfg)
	if err != nil {
		t.Fatalf("newServer: %v", err)
	}
	t.Cleanup(svc.Close)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	// An invalid form still counts against the mutation budget.
	form := url.Values{"name": {""}, "age": {"20"}}
	resp, err := ts.Client().PostForm(ts.URL+"/api/v1/players", form)
	if err != nil {
		t.Fatalf("first post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}

	resp, err = ts.Client().PostForm(ts.URL+"/api/v1/players", form)
	if err != nil {
		t.Fatalf("second post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}

	// Reads are never limited.
	if status, _ := get(t, ts.Client(), ts.URL+"/api/v1/toasts"); status != http.StatusOK {
		t.Fatalf("expected toasts poll to pass, got %d", status)
	}
}
