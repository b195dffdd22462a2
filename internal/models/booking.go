package models

// BookingRequest is the parsed payload for the book-appointment tool. Start
// time stays a string until the dispatcher validates it; the voice agent
// sends timestamps in more than one shape.
type BookingRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	StartTime     string `json:"start_time"`
}

// AvailabilityQuery is the parsed payload for the check-availability tool.
// Day is advisory: the calendar window is always the configured look-ahead
// from now.
type AvailabilityQuery struct {
	Day string `json:"day"`
}
