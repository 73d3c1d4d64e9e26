package players

import (
	"strconv"

	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/paginate"
)

type ListData struct {
	Page paginate.Page[models.Player]
	Err  string
}

// FormData backs the create and update modals. Values are kept as typed so
// a rejected submission re-renders exactly what the user entered.
type FormData struct {
	ID          string
	Name        string
	Age         string
	Number      string
	Nationality string
	Position    string
	Errors      map[string]string
	FormError   string
}

func NewFormData(p models.Player) FormData {
	data := FormData{
		ID:          p.ID,
		Name:        p.Name,
		Nationality: p.Nationality,
		Position:    p.Position,
	}
	if p.Age != 0 {
		data.Age = strconv.Itoa(p.Age)
	}
	if p.Number != nil {
		data.Number = strconv.Itoa(*p.Number)
	}
	return data
}

func (f FormData) IsEdit() bool {
	return f.ID != ""
}

func (f FormData) Error(field string) string {
	return f.Errors[field]
}
