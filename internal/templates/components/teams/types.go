package teams

import (
	"github.com/codr1/Rosterboard/internal/models"
	"github.com/codr1/Rosterboard/internal/paginate"
)

type ListData struct {
	Page paginate.Page[models.Team]
	Err  string
}

type FormData struct {
	ID        string
	Name      string
	Sport     string
	City      string
	Errors    map[string]string
	FormError string
}

func NewFormData(t models.Team) FormData {
	return FormData{ID: t.ID, Name: t.Name, Sport: t.Sport, City: t.City}
}

func (f FormData) IsEdit() bool {
	return f.ID != ""
}

func (f FormData) Error(field string) string {
	return f.Errors[field]
}
