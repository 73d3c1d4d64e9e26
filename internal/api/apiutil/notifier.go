package apiutil

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/codr1/Rosterboard/internal/db"
	"github.com/codr1/Rosterboard/internal/request"
	"github.com/codr1/Rosterboard/internal/toast"
)

// ActivityRecorder persists one activity entry.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, arg db.RecordActivityParams) (int64, error)
}

// Notifier reports the outcome of a dashboard action: a toast for the user
// and, for mutations, an entry in the activity log. Either sink may be nil.
type Notifier struct {
	Toasts   *toast.Queue
	Activity ActivityRecorder
	Clock    clockwork.Clock
}

func NewNotifier(toasts *toast.Queue, activity ActivityRecorder, clock clockwork.Clock) *Notifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Notifier{Toasts: toasts, Activity: activity, Clock: clock}
}

// Succeeded records a successful mutation and shows message.
func (n *Notifier) Succeeded(ctx context.Context, resource, action, targetID, message string) {
	if n == nil {
		return
	}
	n.show(toast.Success, message, toast.SuccessDuration, "")
	n.record(ctx, resource, action, targetID, db.OutcomeSuccess, message)
}

// Failed records a failed mutation and shows message.
func (n *Notifier) Failed(ctx context.Context, resource, action, targetID, message string) {
	if n == nil {
		return
	}
	n.show(toast.Error, message, toast.ErrorDuration, "")
	n.record(ctx, resource, action, targetID, db.OutcomeFailure, message)
}

// Loading shows a sticky info toast under id until Loaded or LoadFailed.
// Concurrent loads share one toast; the first to finish dismisses it.
func (n *Notifier) Loading(id, message string) {
	if n == nil || n.Toasts == nil || n.Toasts.Has(id) {
		return
	}
	n.show(toast.Info, message, toast.Sticky, id)
}

func (n *Notifier) Loaded(id, message string) {
	if n == nil {
		return
	}
	n.dismiss(id)
	n.show(toast.Success, message, toast.DefaultDuration, "")
}

func (n *Notifier) LoadFailed(id, message string) {
	if n == nil {
		return
	}
	n.dismiss(id)
	n.show(toast.Error, message, toast.ErrorDuration, "")
}

// Notify shows a toast without recording activity.
func (n *Notifier) Notify(typ toast.Type, message string, duration time.Duration) {
	if n == nil {
		return
	}
	n.show(typ, message, duration, "")
}

func (n *Notifier) show(typ toast.Type, message string, duration time.Duration, id string) {
	if n.Toasts == nil {
		return
	}
	n.Toasts.Show(typ, message, duration, id)
}

func (n *Notifier) dismiss(id string) {
	if n.Toasts == nil {
		return
	}
	n.Toasts.Remove(id)
}

func (n *Notifier) record(ctx context.Context, resource, action, targetID string, outcome db.Outcome, message string) {
	if n.Activity == nil {
		return
	}
	_, err := n.Activity.RecordActivity(context.WithoutCancel(ctx), db.RecordActivityParams{
		OccurredAt: n.Clock.Now(),
		RequestID:  request.ID(ctx),
		Resource:   resource,
		Action:     action,
		TargetID:   targetID,
		Outcome:    outcome,
		Message:    message,
	})
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("resource", resource).Str("action", action).Msg("Failed to record activity")
	}
}
