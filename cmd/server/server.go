// cmd/server/server.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/api"
	"github.com/codr1/Rosterboard/internal/api/activity"
	"github.com/codr1/Rosterboard/internal/api/apiutil"
	"github.com/codr1/Rosterboard/internal/api/dashboard"
	"github.com/codr1/Rosterboard/internal/api/players"
	"github.com/codr1/Rosterboard/internal/api/rosters"
	"github.com/codr1/Rosterboard/internal/api/teams"
	"github.com/codr1/Rosterboard/internal/api/toasts"
	"github.com/codr1/Rosterboard/internal/backend"
	"github.com/codr1/Rosterboard/internal/config"
	"github.com/codr1/Rosterboard/internal/db"
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/ratelimit"
	"github.com/codr1/Rosterboard/internal/resource"
	"github.com/codr1/Rosterboard/internal/roster"
	"github.com/codr1/Rosterboard/internal/scheduler"
	"github.com/codr1/Rosterboard/internal/toast"
)

// services are the long-lived collaborators stopped on shutdown.
type services struct {
	database  *db.DB
	scheduler *scheduler.Service
	limiter   *ratelimit.Limiter
}

func (s *services) Close() {
	if s == nil {
		return
	}
	if s.scheduler != nil {
		if err := s.scheduler.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop scheduler")
		}
	}
	if s.limiter != nil {
		s.limiter.Close()
	}
	if s.database != nil {
		if err := s.database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}
}

func newServer(cfg *config.Config) (*http.Server, *services, error) {
	svc := &services{}
	clock := clockwork.NewRealClock()

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open activity log: %w", err)
	}
	svc.database = database

	registry := prometheus.NewRegistry()
	clientOpts := []backend.Option{
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithRateLimit(cfg.Backend.MaxRPS, cfg.Backend.Burst),
	}
	if cfg.Features.EnableMetrics {
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		clientOpts = append(clientOpts, backend.WithMetrics(registry))
	}
	client, err := backend.New(cfg.Backend.BaseURL, clientOpts...)
	if err != nil {
		svc.Close()
		return nil, nil, fmt.Errorf("create backend client: %w", err)
	}

	playerStore := resource.NewPlayers(client)
	teamStore := resource.NewTeams(client)
	linkStore := resource.NewPlayerTeams(client)
	toastQueue := toast.NewQueue(clock)
	notifier := apiutil.NewNotifier(toastQueue, database.Queries, clock)

	dashboard.InitHandlers(cfg.App.Name)
	players.InitHandlers(playerStore, notifier, cfg.Dashboard.ListPageSize)
	teams.InitHandlers(teamStore, notifier, cfg.Dashboard.ListPageSize)
	rosters.InitHandlers(rosters.Deps{
		Players:     playerStore,
		Teams:       teamStore,
		PlayerTeams: linkStore,
		Reconciler:  roster.NewReconciler(client, clock),
		Notifier:    notifier,
	}, cfg.Dashboard.ListPageSize, cfg.Dashboard.EditorPageSize)
	toasts.InitHandlers(toastQueue)
	activity.InitHandlers(database.Queries)

	sched, err := scheduler.New(clock)
	if err != nil {
		svc.Close()
		return nil, nil, fmt.Errorf("create scheduler: %w", err)
	}
	svc.scheduler = sched
	if err := scheduler.RegisterActivityPruneJob(sched, database.Queries, cfg.Database.ActivityRetention, clock); err != nil {
		svc.Close()
		return nil, nil, err
	}
	if cfg.Features.EnableRefresh {
		err := scheduler.RegisterRefreshJob(sched, cfg.Dashboard.RefreshCron,
			scheduler.RefreshTarget{Name: "players", Refresh: func(ctx context.Context) bool {
				_, ok := playerStore.Refetch(ctx, resource.Callbacks[[]models.Player]{})
				return ok
			}},
			scheduler.RefreshTarget{Name: "teams", Refresh: func(ctx context.Context) bool {
				_, ok := teamStore.Refetch(ctx, resource.Callbacks[[]models.Team]{})
				return ok
			}},
			scheduler.RefreshTarget{Name: "player_teams", Refresh: func(ctx context.Context) bool {
				_, ok := linkStore.Refetch(ctx, resource.Callbacks[[]models.TeamRoster]{})
				return ok
			}},
		)
		if err != nil {
			svc.Close()
			return nil, nil, err
		}
	}
	sched.Start()

	router := http.NewServeMux()
	registerRoutes(router, cfg, registry)

	// The first middleware wraps the router directly.
	var chain []api.Middleware
	if cfg.Features.EnableMetrics {
		chain = append(chain, api.WithMetrics(registry))
	}
	if cfg.RateLimit.Enabled {
		svc.limiter = ratelimit.New(&ratelimit.Config{
			MaxPerWindow: cfg.RateLimit.MaxMutations,
			Window:       cfg.RateLimit.Window,
			TrustProxy:   cfg.RateLimit.TrustProxy,
			Clock:        clock,
		})
		chain = append(chain, svc.limiter.Middleware)
	}
	chain = append(chain,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)
	handler := api.ChainMiddleware(router, chain...)

	return &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, svc, nil
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, registry *prometheus.Registry) {
	// Main page handler
	mux.HandleFunc("/", dashboard.HandleDashboardPage)

	// Health check
	mux.HandleFunc("GET /health", dashboard.HandleHealth)

	// Player routes
	mux.HandleFunc("GET /api/v1/players", players.HandlePlayersList)
	mux.HandleFunc("GET /api/v1/players/new", players.HandlePlayerNew)
	mux.HandleFunc("POST /api/v1/players", players.HandlePlayerCreate)
	mux.HandleFunc("GET /api/v1/players/{id}/edit", players.HandlePlayerEdit)
	mux.HandleFunc("PUT /api/v1/players/{id}", players.HandlePlayerUpdate)
	mux.HandleFunc("GET /api/v1/players/{id}/delete", players.HandlePlayerDeleteConfirm)
	mux.HandleFunc("DELETE /api/v1/players/{id}", players.HandlePlayerDelete)

	// Team routes
	mux.HandleFunc("GET /api/v1/teams", teams.HandleTeamsList)
	mux.HandleFunc("GET /api/v1/teams/new", teams.HandleTeamNew)
	mux.HandleFunc("POST /api/v1/teams", teams.HandleTeamCreate)
	mux.HandleFunc("GET /api/v1/teams/{id}/edit", teams.HandleTeamEdit)
	mux.HandleFunc("PUT /api/v1/teams/{id}", teams.HandleTeamUpdate)
	mux.HandleFunc("GET /api/v1/teams/{id}/delete", teams.HandleTeamDeleteConfirm)
	mux.HandleFunc("DELETE /api/v1/teams/{id}", teams.HandleTeamDelete)

	// Roster routes
	mux.HandleFunc("GET /api/v1/rosters", rosters.HandleRostersList)
	mux.HandleFunc("GET /api/v1/rosters/{teamID}/edit", rosters.HandleRosterEdit)
	mux.HandleFunc("POST /api/v1/rosters/{teamID}/editor", rosters.HandleRosterEditor)
	mux.HandleFunc("POST /api/v1/rosters/{teamID}", rosters.HandleRosterSubmit)
	mux.HandleFunc("GET /api/v1/rosters/{teamID}/delete", rosters.HandleRosterDeleteConfirm)
	mux.HandleFunc("DELETE /api/v1/rosters/{teamID}", rosters.HandleRosterDelete)

	// Toast routes
	mux.HandleFunc("GET /api/v1/toasts", toasts.HandleToastsList)
	mux.HandleFunc("DELETE /api/v1/toasts/{id}", toasts.HandleToastDismiss)

	// Activity log
	mux.HandleFunc("GET /api/v1/activity", activity.HandleActivityList)

	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Static file handling with logging and environment awareness
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = cfg.Dashboard.StaticDir
	}
	fs := http.FileServer(http.Dir(staticDir))

	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
