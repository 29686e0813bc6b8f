package response_models

import "eventnotifier/internal/models/request_models"

type CategoryOption struct {
	ID       uint
	Name     string
	Selected bool
}

type EventView struct {
	ID            uint
	Title         string
	Description   string
	Location      string
	StartDate     string
	EndDate       string
	CategoryID    uint
	CategoryName  string
	DaysRemaining int
	DDay          string
	Ended         bool
}

type EventListPage struct {
	Events         []EventView
	Categories     []CategoryOption
	ActiveOnly     bool
	FilterCategory uint
	Today          string
}

// EventFormPage backs both the create form and the detail/edit form.
type EventFormPage struct {
	Action     string
	EventID    uint
	Event      *EventView
	Form       request_models.EventForm
	Categories []CategoryOption
	Errors     map[string]string
}
