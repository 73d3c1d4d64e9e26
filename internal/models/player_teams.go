// internal/models/player_teams.go
package models

import (
	"strings"
	"time"
)

// StartDateLayout is the date format the backend uses for link start and end dates.
const StartDateLayout = "2006-01-02"

// PlayerTeam is a flat link record: one player's tenure on one team.
type PlayerTeam struct {
	ID           string  `json:"_id,omitempty"`
	PlayerID     string  `json:"player_id"`
	TeamID       string  `json:"team_id"`
	Position     string  `json:"position"`
	JerseyNumber int     `json:"jersey_number"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	IsActive     bool    `json:"is_active"`
}

type CreatePlayerTeamRequest struct {
	PlayerID     string  `json:"player_id"`
	TeamID       string  `json:"team_id"`
	Position     string  `json:"position"`
	JerseyNumber int     `json:"jersey_number"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date,omitempty"`
	IsActive     bool    `json:"is_active"`
}

type UpdatePlayerTeamRequest struct {
	PlayerID     *string `json:"player_id,omitempty"`
	TeamID       *string `json:"team_id,omitempty"`
	Position     *string `json:"position,omitempty"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	StartDate    *string `json:"start_date,omitempty"`
	EndDate      *string `json:"end_date,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

// RosterTeam is the team object embedded in a denormalized roster row.
type RosterTeam struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Sport string `json:"sport"`
	City  string `json:"city"`
}

// RosterPlayer is a player object embedded in a denormalized roster row.
type RosterPlayer struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Number      int    `json:"number"`
	Nationality string `json:"nationality"`
	Position    string `json:"position"`
}

type RosterPlayers struct {
	IsArray     bool           `json:"is_array"`
	ObjectArray []RosterPlayer `json:"object_array"`
}

// TeamRoster is one row of the link listing endpoint: the link's own fields
// with the team and its players embedded instead of flat ids.
type TeamRoster struct {
	ID           string         `json:"_id"`
	Team         *RosterTeam    `json:"team"`
	Players      *RosterPlayers `json:"players"`
	Position     string         `json:"position"`
	JerseyNumber int            `json:"jersey_number"`
	StartDate    string         `json:"start_date"`
	EndDate      *string        `json:"end_date"`
	IsActive     bool           `json:"is_active"`
}

func (r TeamRoster) Key() string {
	return r.ID
}

// EmbeddedPlayers returns the row's players, or nil when the backend sent none.
func (r TeamRoster) EmbeddedPlayers() []RosterPlayer {
	if r.Players == nil {
		return nil
	}
	return r.Players.ObjectArray
}

func (r TeamRoster) TeamName() string {
	if r.Team == nil {
		return ""
	}
	return r.Team.Name
}

// HasPlayerNamed reports whether an embedded player carries exactly name.
func (r TeamRoster) HasPlayerNamed(name string) bool {
	for _, p := range r.EmbeddedPlayers() {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (r TeamRoster) PlayerNames() []string {
	players := r.EmbeddedPlayers()
	names := make([]string, 0, len(players))
	for _, p := range players {
		if n := strings.TrimSpace(p.Name); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func FormatStartDate(t time.Time) string {
	return t.Format(StartDateLayout)
}
