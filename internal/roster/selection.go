// Package roster reconciles a team's roster editor selection against the
// links that existed when the editor opened.
package roster

import (
	"slices"

	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/paginate"
)

// Set is a set of player ids.
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

func (s Set) Add(id string) {
	if id != "" {
		s[id] = struct{}{}
	}
}

func (s Set) Remove(id string) {
	delete(s, id)
}

func (s Set) Clone() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Sorted returns the ids in ascending order.
func (s Set) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Minus returns the ids in s that are not in other.
func (s Set) Minus(other Set) Set {
	out := make(Set)
	for id := range s {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Diff is the set of link changes needed to move from the initial roster to
// the selected one.
type Diff struct {
	ToAdd    []string
	ToRemove []string
}

func (d Diff) Empty() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// Reconcile computes ToAdd = selected - initial and ToRemove = initial - selected.
func Reconcile(initial, selected Set) Diff {
	return Diff{
		ToAdd:    selected.Minus(initial).Sorted(),
		ToRemove: initial.Minus(selected).Sorted(),
	}
}

// InitialSelection derives the ids checked when the editor opens. Rows belong
// to the team when either the team name or the team id matches; the embedded
// player names are then mapped back to ids through players.
func InitialSelection(team models.Team, rows []models.TeamRoster, players []models.Player) Set {
	names := make(map[string]struct{})
	for _, row := range rows {
		if row.Team == nil {
			continue
		}
		sameTeam := row.Team.Name == team.Name || (row.Team.ID != "" && row.Team.ID == team.ID)
		if !sameTeam {
			continue
		}
		for _, p := range row.EmbeddedPlayers() {
			names[p.Name] = struct{}{}
		}
	}

	selected := make(Set)
	for _, p := range players {
		if _, ok := names[p.Name]; ok {
			selected.Add(p.ID)
		}
	}
	return selected
}

// Selection is the editor's mutable checkbox state.
type Selection struct {
	initial  Set
	selected Set
}

// NewSelection starts an editor with selected equal to initial.
func NewSelection(initial Set) *Selection {
	return &Selection{initial: initial.Clone(), selected: initial.Clone()}
}

// RestoreSelection rebuilds editor state carried across requests.
func RestoreSelection(initial, selected Set) *Selection {
	return &Selection{initial: initial.Clone(), selected: selected.Clone()}
}

func (s *Selection) Toggle(playerID string, checked bool) {
	if checked {
		s.selected.Add(playerID)
		return
	}
	s.selected.Remove(playerID)
}

// SelectPage checks or unchecks every player on the given page, leaving other
// pages untouched.
func (s *Selection) SelectPage(players []models.Player, perPage, page int, checked bool) {
	for _, p := range paginate.Paginate(players, perPage, page).Items {
		s.Toggle(p.ID, checked)
	}
}

// PageFullySelected reports whether every player on the page is checked.
// An empty page is never fully selected.
func (s *Selection) PageFullySelected(players []models.Player, perPage, page int) bool {
	items := paginate.Paginate(players, perPage, page).Items
	if len(items) == 0 {
		return false
	}
	for _, p := range items {
		if !s.selected.Has(p.ID) {
			return false
		}
	}
	return true
}

func (s *Selection) IsSelected(playerID string) bool {
	return s.selected.Has(playerID)
}

func (s *Selection) Initial() Set {
	return s.initial.Clone()
}

func (s *Selection) Selected() Set {
	return s.selected.Clone()
}

func (s *Selection) Diff() Diff {
	return Reconcile(s.initial, s.selected)
}

// Reset empties both the initial and the current selection.
func (s *Selection) Reset() {
	s.initial = make(Set)
	s.selected = make(Set)
}
