package dispatcher

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/threeriversplumbing/dispatch-api/internal/models"
)

// CheckAvailability reports whether the calendar has open time between now
// and the configured look-ahead horizon. The day reference is advisory only;
// the query window always starts at the current instant.
func (d *Dispatcher) CheckAvailability(query models.AvailabilityQuery) Result {
	return d.CheckAvailabilityAt(query, time.Now())
}

// CheckAvailabilityAt is CheckAvailability against a caller-supplied clock.
// Exposed for testing with a deterministic clock.
func (d *Dispatcher) CheckAvailabilityAt(query models.AvailabilityQuery, now time.Time) Result {
	if d.Calendar == nil {
		return d.errorResult(errUnavailable, "Scheduling is offline right now. Please try again later.", nil,
			zap.String("collaborator", "calendar"))
	}

	timeMin := now.Format(time.RFC3339)
	timeMax := now.Add(d.FeatureCfg.Calendar.LookAhead()).Format(time.RFC3339)

	d.Logger.Info("Checking availability",
		zap.String("day", query.Day),
		zap.String("time_min", timeMin),
		zap.String("time_max", timeMax))

	events, err := d.Calendar.ListEvents(timeMin, timeMax, d.FeatureCfg.Calendar.ResultCap())
	if err != nil {
		return d.errorResult(errFailure, "We're having trouble accessing the schedule right now.", err)
	}

	if len(events) == 0 {
		return Result{Status: StatusFree, Message: "The schedule is wide open."}
	}

	return Result{
		Status:  StatusBusy,
		Message: fmt.Sprintf("These times are already booked: %s.", BuildBusySummary(events)),
	}
}

// BuildBusySummary renders calendar events as a comma-joined list of
// "<start> (<summary>)" entries for the spoken busy message. All-day events
// carry a date instead of a datetime; events without a summary read "Busy".
func BuildBusySummary(events []*calendar.Event) string {
	parts := make([]string, 0, len(events))
	for _, event := range events {
		start := ""
		if event.Start != nil {
			start = event.Start.DateTime
			if start == "" {
				start = event.Start.Date
			}
		}

		summary := event.Summary
		if summary == "" {
			summary = "Busy"
		}

		parts = append(parts, fmt.Sprintf("%s (%s)", start, summary))
	}
	return strings.Join(parts, ", ")
}
