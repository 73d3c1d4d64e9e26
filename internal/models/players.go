// internal/models/players.go
package models

import (
	"fmt"
	"strings"
)

const (
	MinPlayerAge = 16
	MaxPlayerAge = 50
)

// FieldError reports a single invalid form field.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type Player struct {
	ID          string `json:"_id,omitempty"`
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Number      *int   `json:"number,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Position    string `json:"position,omitempty"`
}

func (p Player) Key() string {
	return p.ID
}

func (p Player) NumberLabel() string {
	if p.Number == nil {
		return "-"
	}
	return fmt.Sprintf("#%d", *p.Number)
}

// CreatePlayerRequest omits optional fields left blank on the form.
type CreatePlayerRequest struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Number      *int   `json:"number,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Position    string `json:"position,omitempty"`
}

func (r *CreatePlayerRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Nationality = strings.TrimSpace(r.Nationality)
	r.Position = strings.TrimSpace(r.Position)
	if r.Number != nil && *r.Number == 0 {
		r.Number = nil
	}
}

func (r CreatePlayerRequest) Validate() error {
	return validatePlayer(r.Name, r.Age)
}

type UpdatePlayerRequest struct {
	Name        *string `json:"name,omitempty"`
	Age         *int    `json:"age,omitempty"`
	Number      *int    `json:"number,omitempty"`
	Nationality *string `json:"nationality,omitempty"`
	Position    *string `json:"position,omitempty"`
}

// NewUpdatePlayerRequest builds a partial update from form values, dropping
// blank strings and zero numbers.
func NewUpdatePlayerRequest(name string, age int, number *int, nationality, position string) UpdatePlayerRequest {
	var req UpdatePlayerRequest
	if v := strings.TrimSpace(name); v != "" {
		req.Name = &v
	}
	if age != 0 {
		req.Age = &age
	}
	if number != nil && *number != 0 {
		n := *number
		req.Number = &n
	}
	if v := strings.TrimSpace(nationality); v != "" {
		req.Nationality = &v
	}
	if v := strings.TrimSpace(position); v != "" {
		req.Position = &v
	}
	return req
}

func (r UpdatePlayerRequest) Validate() error {
	if r.Name == nil {
		return FieldError{Field: "name", Reason: "is required"}
	}
	age := 0
	if r.Age != nil {
		age = *r.Age
	}
	return validatePlayer(*r.Name, age)
}

// Apply returns p with the request's non-nil fields set.
func (r UpdatePlayerRequest) Apply(p Player) Player {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	if r.Number != nil {
		n := *r.Number
		p.Number = &n
	}
	if r.Nationality != nil {
		p.Nationality = *r.Nationality
	}
	if r.Position != nil {
		p.Position = *r.Position
	}
	return p
}

func validatePlayer(name string, age int) error {
	if strings.TrimSpace(name) == "" {
		return FieldError{Field: "name", Reason: "is required"}
	}
	if age < MinPlayerAge || age > MaxPlayerAge {
		return FieldError{Field: "age", Reason: fmt.Sprintf("must be between %d and %d", MinPlayerAge, MaxPlayerAge)}
	}
	return nil
}
