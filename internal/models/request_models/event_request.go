package request_models

// EventForm is the create/update form as posted by the browser. Values stay raw
// strings so a rejected submission can be echoed back unchanged.
type EventForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Location    string `form:"location"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
	CategoryID  string `form:"category_id"`
}

// ListEventsQuery holds the optional list filters.
type ListEventsQuery struct {
	CategoryID string `form:"category"`
	Active     bool   `form:"active"`
}
