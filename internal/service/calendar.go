package service

import (
	"context"
	"fmt"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarService struct {
	srv    *calendar.Service
	config CalendarConfig
}

func NewCalendarService(ctx context.Context, config CalendarConfig) (*CalendarService, error) {
	if config.CalendarID == "" {
		return nil, fmt.Errorf("calendar_id is not configured")
	}

	tokenJSON, err := config.LoadServiceAccountToken()
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithAuthCredentialsJSON(option.ServiceAccount, tokenJSON))
	if err != nil {
		return nil, err
	}

	return &CalendarService{srv: srv, config: config}, nil
}

func (s *CalendarService) ListEvents(timeMin, timeMax string, maxResults int64) ([]*calendar.Event, error) {
	events, err := s.srv.Events.List(s.config.CalendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin).
		TimeMax(timeMax).
		MaxResults(maxResults).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, err
	}
	return events.Items, nil
}

func (s *CalendarService) InsertEvent(event *calendar.Event) (*calendar.Event, error) {
	return s.srv.Events.Insert(s.config.CalendarID, event).Do()
}
