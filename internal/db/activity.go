package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// ActivityEntry is one mutation the dashboard sent to the roster API.
type ActivityEntry struct {
	ID         int64
	OccurredAt time.Time
	RequestID  string
	Resource   string
	Action     string
	TargetID   string
	Outcome    Outcome
	Message    string
}

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type Queries struct {
	db DBTX
}

func NewQueries(db DBTX) *Queries {
	return &Queries{db: db}
}

type RecordActivityParams struct {
	OccurredAt time.Time
	RequestID  string
	Resource   string
	Action     string
	TargetID   string
	Outcome    Outcome
	Message    string
}

const recordActivity = `
INSERT INTO activity_log (occurred_at, request_id, resource, action, target_id, outcome, message)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) RecordActivity(ctx context.Context, arg RecordActivityParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, recordActivity,
		arg.OccurredAt.UTC(),
		arg.RequestID,
		arg.Resource,
		arg.Action,
		arg.TargetID,
		string(arg.Outcome),
		arg.Message,
	)
	if err != nil {
		return 0, fmt.Errorf("record activity: %w", err)
	}
	return result.LastInsertId()
}

const listRecentActivity = `
SELECT id, occurred_at, request_id, resource, action, target_id, outcome, message
FROM activity_log
ORDER BY occurred_at DESC, id DESC
LIMIT ?
`

func (q *Queries) ListRecentActivity(ctx context.Context, limit int64) ([]ActivityEntry, error) {
	rows, err := q.db.QueryContext(ctx, listRecentActivity, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var entries []ActivityEntry
	for rows.Next() {
		var e ActivityEntry
		var outcome string
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.RequestID, &e.Resource, &e.Action, &e.TargetID, &outcome, &e.Message); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.Outcome = Outcome(outcome)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}
	return entries, nil
}

const pruneActivityBefore = `
DELETE FROM activity_log WHERE occurred_at < ?
`

// PruneActivityBefore deletes entries older than cutoff and returns how many went.
func (q *Queries) PruneActivityBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneActivityBefore, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune activity: %w", err)
	}
	return result.RowsAffected()
}
