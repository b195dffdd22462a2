package dispatcher

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/threeriversplumbing/dispatch-api/internal/models"
)

// SlotDuration is the fixed length of every appointment.
const SlotDuration = time.Hour

// slotTimeLayout renders instants with an explicit numeric offset, so UTC
// comes out as +00:00 rather than Z. The calendar echoes this form back.
const slotTimeLayout = "2006-01-02T15:04:05-07:00"

// naiveTimeLayout accepts zone-less timestamps, taken as UTC.
const naiveTimeLayout = "2006-01-02T15:04:05"

// BookAppointment creates a one-hour calendar event at the requested start
// time. Parse validation runs before anything else, so a bad timestamp never
// reaches the calendar. With overlap rejection enabled (the default), a slot
// that already holds an event is refused.
func (d *Dispatcher) BookAppointment(req models.BookingRequest) Result {
	start, err := ParseStartTime(req.StartTime)
	if err != nil {
		return d.errorResult(errValidation, "A valid start time is required to book an appointment.", err,
			zap.String("start_time", req.StartTime))
	}

	if d.Calendar == nil {
		return d.errorResult(errUnavailable, "Scheduling is offline right now. Please try again later.", nil,
			zap.String("collaborator", "calendar"))
	}

	end := start.Add(SlotDuration)

	if d.FeatureCfg.Calendar.ShouldRejectOverlaps() {
		existing, err := d.Calendar.ListEvents(FormatSlotTime(start), FormatSlotTime(end), d.FeatureCfg.Calendar.ResultCap())
		if err != nil {
			return d.errorResult(errFailure, "We're having trouble accessing the schedule right now.", err)
		}
		if len(existing) > 0 {
			d.Logger.Info("Slot already taken",
				zap.String("start", FormatSlotTime(start)),
				zap.Int("events", len(existing)))
			return Result{Status: StatusError, Message: "That time is already booked. Please pick another slot."}
		}
	}

	event := &calendar.Event{
		Summary:     fmt.Sprintf("PLUMBING: %s", req.CustomerName),
		Description: fmt.Sprintf("Customer: %s\nPhone: %s\nBooked by the AI phone dispatcher.", req.CustomerName, req.CustomerPhone),
		Start:       &calendar.EventDateTime{DateTime: FormatSlotTime(start), TimeZone: "UTC"},
		End:         &calendar.EventDateTime{DateTime: FormatSlotTime(end), TimeZone: "UTC"},
	}

	created, err := d.Calendar.InsertEvent(event)
	if err != nil {
		return d.errorResult(errFailure, "We couldn't book that appointment right now.", err,
			zap.String("start", FormatSlotTime(start)))
	}

	bookingID := ""
	if created != nil {
		bookingID = created.Id
	}

	d.Logger.Info("Appointment booked",
		zap.String("booking_id", bookingID),
		zap.String("customer", req.CustomerName),
		zap.String("start", FormatSlotTime(start)))

	d.notifyBooking(req, start)

	return Result{
		Status:    StatusSuccess,
		Message:   "Appointment booked successfully.",
		BookingID: bookingID,
	}
}

// notifyBooking texts the plumber a heads-up about a fresh booking. Failures
// are logged and swallowed: the booking already happened.
func (d *Dispatcher) notifyBooking(req models.BookingRequest, start time.Time) {
	if d.SMS == nil || !d.FeatureCfg.Calendar.ShouldNotifyOnBooking() {
		return
	}

	body := fmt.Sprintf("🗓️ NEW JOB BOOKED\n"+
		"Name: %s\n"+
		"Phone: %s\n"+
		"Scheduled: %s",
		req.CustomerName, req.CustomerPhone, FormatSlotTime(start))

	if _, err := d.SMS.Send(body); err != nil {
		d.Logger.Warn("Failed to send booking notification", zap.Error(err))
	}
}

// ParseStartTime parses the requested start instant. A trailing "Z" is
// rewritten to an explicit +00:00 offset first; a zone-less timestamp is
// accepted and taken as UTC.
func ParseStartTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("start time is empty")
	}

	if strings.HasSuffix(raw, "Z") {
		raw = strings.TrimSuffix(raw, "Z") + "+00:00"
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse(naiveTimeLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable start time %q", raw)
	}
	return t, nil
}

// FormatSlotTime renders an instant the way calendar events store it: UTC
// with an explicit +00:00 offset.
func FormatSlotTime(t time.Time) string {
	return t.UTC().Format(slotTimeLayout)
}
