package roster

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/codr1/Rosterboard/internal/backend"
	"github.com/codr1/Rosterboard/internal/models"
)

type fakeLinks struct {
	created   []models.CreatePlayerTeamRequest
	deleted   []string
	missing   map[string]bool
	failOn    string
	createErr error
}

func (f *fakeLinks) CreatePlayerTeam(ctx context.Context, req models.CreatePlayerTeamRequest) (models.PlayerTeam, error) {
	if f.createErr != nil && req.PlayerID == f.failOn {
		return models.PlayerTeam{}, f.createErr
	}
	f.created = append(f.created, req)
	return models.PlayerTeam{ID: "new-" + req.PlayerID, PlayerID: req.PlayerID, TeamID: req.TeamID}, nil
}

// DeletePlayerTeam answers 404 for rows already deleted or marked missing.
func (f *fakeLinks) DeletePlayerTeam(ctx context.Context, id string) error {
	if f.missing[id] || slices.Contains(f.deleted, id) {
		return &backend.APIError{Status: http.StatusNotFound, Message: "Player team not found"}
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func hawksRows() []models.TeamRoster {
	return []models.TeamRoster{
		{ID: "l1", Team: &models.RosterTeam{Name: "Hawks"}, Players: &models.RosterPlayers{ObjectArray: []models.RosterPlayer{{Name: "Alice"}, {Name: "Bob"}}}},
		{ID: "l2", Team: &models.RosterTeam{Name: "Hawks"}, Players: &models.RosterPlayers{ObjectArray: []models.RosterPlayer{{Name: "Alice"}}}},
		{ID: "l3", Team: &models.RosterTeam{Name: "Owls"}, Players: &models.RosterPlayers{ObjectArray: []models.RosterPlayer{{Name: "Alice"}}}},
		{ID: "", Team: &models.RosterTeam{Name: "Hawks"}, Players: &models.RosterPlayers{ObjectArray: []models.RosterPlayer{{Name: "Alice"}}}},
	}
}

func TestApplyIssuesCreatesAndNameMatchedDeletes(t *testing.T) {
	links := &fakeLinks{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC))
	rc := NewReconciler(links, clock)

	team := &models.Team{ID: "t1", Name: "Hawks"}
	players := []models.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}, {ID: "p3", Name: "Cara"}}
	diff := Reconcile(NewSet("p1", "p2"), NewSet("p2", "p3"))

	result, err := rc.Apply(context.Background(), team, diff, hawksRows(), players)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := []models.CreatePlayerTeamRequest{{
		PlayerID:     "p3",
		TeamID:       "t1",
		Position:     PlaceholderPosition,
		JerseyNumber: 0,
		StartDate:    "2025-03-14",
		IsActive:     true,
	}}
	if !reflect.DeepEqual(links.created, want) {
		t.Fatalf("created: %+v", links.created)
	}
	if !reflect.DeepEqual(links.deleted, []string{"l1", "l2"}) {
		t.Fatalf("deleted: %v", links.deleted)
	}
	if result.Created != 1 || result.Deleted != 2 {
		t.Fatalf("result: %+v", result)
	}
}

func TestApplyDeletesSharedRowOnce(t *testing.T) {
	links := &fakeLinks{}
	rc := NewReconciler(links, clockwork.NewFakeClock())

	team := &models.Team{ID: "t1", Name: "Hawks"}
	players := []models.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}

	// l1 embeds both Alice and Bob.
	result, err := rc.Apply(context.Background(), team, Reconcile(NewSet("p1", "p2"), NewSet()), hawksRows(), players)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(links.deleted, []string{"l1", "l2"}) {
		t.Fatalf("deleted: %v", links.deleted)
	}
	if result.Deleted != 2 {
		t.Fatalf("result: %+v", result)
	}
}

func TestApplyTreatsMissingLinkAsRemoved(t *testing.T) {
	links := &fakeLinks{missing: map[string]bool{"l1": true}}
	rc := NewReconciler(links, clockwork.NewFakeClock())

	team := &models.Team{ID: "t1", Name: "Hawks"}
	players := []models.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}

	result, err := rc.Apply(context.Background(), team, Reconcile(NewSet("p1", "p2"), NewSet()), hawksRows(), players)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !reflect.DeepEqual(links.deleted, []string{"l2"}) {
		t.Fatalf("deleted: %v", links.deleted)
	}
	if result.Deleted != 1 {
		t.Fatalf("result: %+v", result)
	}
}

func TestApplyStartDateIsUTC(t *testing.T) {
	links := &fakeLinks{}
	east := time.FixedZone("UTC+5", 5*60*60)
	rc := NewReconciler(links, clockwork.NewFakeClockAt(time.Date(2025, 3, 15, 2, 0, 0, 0, east)))

	team := &models.Team{ID: "t1", Name: "Hawks"}
	if _, err := rc.Apply(context.Background(), team, Diff{ToAdd: []string{"p3"}}, nil, nil); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(links.created) != 1 || links.created[0].StartDate != "2025-03-14" {
		t.Fatalf("expected UTC start date, got %+v", links.created)
	}
}

func TestApplyRequiresTeam(t *testing.T) {
	links := &fakeLinks{}
	rc := NewReconciler(links, nil)

	diff := Diff{ToAdd: []string{"p1"}}
	if _, err := rc.Apply(context.Background(), nil, diff, nil, nil); !errors.Is(err, ErrTeamNotSelected) {
		t.Fatalf("expected ErrTeamNotSelected, got %v", err)
	}
	if _, err := rc.Apply(context.Background(), &models.Team{Name: "No ID"}, diff, nil, nil); !errors.Is(err, ErrTeamNotSelected) {
		t.Fatalf("expected ErrTeamNotSelected for team without id, got %v", err)
	}
	if len(links.created) != 0 {
		t.Fatalf("no request may be issued without a team")
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	boom := errors.New("HTTP error! status: 500")
	links := &fakeLinks{failOn: "p2", createErr: boom}
	rc := NewReconciler(links, clockwork.NewFakeClock())

	team := &models.Team{ID: "t1", Name: "Hawks"}
	diff := Diff{ToAdd: []string{"p1", "p2", "p3"}, ToRemove: []string{"p9"}}

	result, err := rc.Apply(context.Background(), team, diff, hawksRows(), nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped backend error, got %v", err)
	}
	if result.Created != 1 || len(links.created) != 1 {
		t.Fatalf("expected exactly one link before the failure, got %+v", result)
	}
	if len(links.deleted) != 0 {
		t.Fatalf("removals must not run after a failed add")
	}
}

func TestApplySkipsUnknownPlayers(t *testing.T) {
	links := &fakeLinks{}
	rc := NewReconciler(links, clockwork.NewFakeClock())

	team := &models.Team{ID: "t1", Name: "Hawks"}
	result, err := rc.Apply(context.Background(), team, Diff{ToRemove: []string{"ghost"}}, hawksRows(), nil)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if result.Deleted != 0 || len(links.deleted) != 0 {
		t.Fatalf("unknown players must not delete anything")
	}
}

func TestDeleteAllRemovesTeamRows(t *testing.T) {
	links := &fakeLinks{}
	rc := NewReconciler(links, clockwork.NewFakeClock())

	result, err := rc.DeleteAll(context.Background(), &models.Team{ID: "t1", Name: "Hawks"}, hawksRows())
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if !reflect.DeepEqual(links.deleted, []string{"l1", "l2"}) {
		t.Fatalf("deleted: %v", links.deleted)
	}
	if result.Deleted != 2 {
		t.Fatalf("result: %+v", result)
	}
}
