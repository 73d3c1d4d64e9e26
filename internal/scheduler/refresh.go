package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	refreshJobTimeout = time.Minute
	pruneJobCron      = "17 3 * * *"
)

// RefreshTarget is one cached collection the refresh job reloads.
type RefreshTarget struct {
	Name    string
	Refresh func(ctx context.Context) bool
}

// ActivityPruner deletes activity entries older than cutoff.
type ActivityPruner interface {
	PruneActivityBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// RegisterRefreshJob reloads every target on cronExpr so the dashboard picks
// up changes made to the backend by other clients.
func RegisterRefreshJob(svc *Service, cronExpr string, targets ...RefreshTarget) error {
	if len(targets) == 0 {
		return fmt.Errorf("refresh job requires at least one target")
	}
	if _, err := svc.AddJob("cache_refresh", cronExpr, refreshTask(targets)); err != nil {
		return fmt.Errorf("add cache refresh job: %w", err)
	}
	return nil
}

func refreshTask(targets []RefreshTarget) func() {
	jobLogger := log.With().Str("component", "cache_refresh_job").Logger()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		failed := 0
		for _, target := range targets {
			if !target.Refresh(ctx) {
				failed++
				jobLogger.Warn().Str("resource", target.Name).Msg("Scheduled refresh failed")
			}
		}
		jobLogger.Info().Int("targets", len(targets)).Int("failed", failed).Msg("Scheduled refresh finished")
	}
}

// RegisterActivityPruneJob drops activity entries older than retention once a day.
func RegisterActivityPruneJob(svc *Service, pruner ActivityPruner, retention time.Duration, clock clockwork.Clock) error {
	if pruner == nil {
		return fmt.Errorf("prune job requires an activity store")
	}
	if retention <= 0 {
		return fmt.Errorf("prune job requires a positive retention")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if _, err := svc.AddJob("activity_prune", pruneJobCron, pruneTask(pruner, retention, clock)); err != nil {
		return fmt.Errorf("add activity prune job: %w", err)
	}
	return nil
}

func pruneTask(pruner ActivityPruner, retention time.Duration, clock clockwork.Clock) func() {
	jobLogger := log.With().Str("component", "activity_prune_job").Logger()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
		defer cancel()

		cutoff := clock.Now().Add(-retention)
		removed, err := pruner.PruneActivityBefore(ctx, cutoff)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Failed to prune activity log")
			return
		}
		jobLogger.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("Activity log pruned")
	}
}
