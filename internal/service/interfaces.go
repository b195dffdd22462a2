package service

import (
	"google.golang.org/api/calendar/v3"
)

// CalendarClient abstracts Google Calendar operations for testability.
type CalendarClient interface {
	ListEvents(timeMin, timeMax string, maxResults int64) ([]*calendar.Event, error)
	InsertEvent(event *calendar.Event) (*calendar.Event, error)
}

// SMSSender abstracts outbound text delivery for testability. The recipient
// is fixed at construction; tools only supply the body.
type SMSSender interface {
	Send(body string) (sid string, err error)
}
