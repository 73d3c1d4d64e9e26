// internal/models/teams.go
package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Team struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Sport string `json:"sport"`
	City  string `json:"city"`
}

func (t Team) Key() string {
	return t.ID
}

// Initial is the upper-cased first letter of the team name, used by the team badge.
func (t Team) Initial() string {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

type CreateTeamRequest struct {
	Name  string `json:"name"`
	Sport string `json:"sport"`
	City  string `json:"city"`
}

func (r *CreateTeamRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Sport = strings.TrimSpace(r.Sport)
	r.City = strings.TrimSpace(r.City)
}

func (r CreateTeamRequest) Validate() error {
	return validateTeam(r.Name, r.Sport, r.City)
}

type UpdateTeamRequest struct {
	Name  *string `json:"name,omitempty"`
	Sport *string `json:"sport,omitempty"`
	City  *string `json:"city,omitempty"`
}

func NewUpdateTeamRequest(name, sport, city string) UpdateTeamRequest {
	var req UpdateTeamRequest
	if v := strings.TrimSpace(name); v != "" {
		req.Name = &v
	}
	if v := strings.TrimSpace(sport); v != "" {
		req.Sport = &v
	}
	if v := strings.TrimSpace(city); v != "" {
		req.City = &v
	}
	return req
}

func (r UpdateTeamRequest) Validate() error {
	return validateTeam(deref(r.Name), deref(r.Sport), deref(r.City))
}

func (r UpdateTeamRequest) Apply(t Team) Team {
	if r.Name != nil {
		t.Name = *r.Name
	}
	if r.Sport != nil {
		t.Sport = *r.Sport
	}
	if r.City != nil {
		t.City = *r.City
	}
	return t
}

func validateTeam(name, sport, city string) error {
	if strings.TrimSpace(name) == "" {
		return FieldError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(sport) == "" {
		return FieldError{Field: "sport", Reason: "is required"}
	}
	if strings.TrimSpace(city) == "" {
		return FieldError{Field: "city", Reason: "is required"}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
