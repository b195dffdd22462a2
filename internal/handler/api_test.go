package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/threeriversplumbing/dispatch-api/internal/dispatcher"
	"github.com/threeriversplumbing/dispatch-api/internal/service"
)

type mockCalendar struct {
	listFn   func(timeMin, timeMax string, maxResults int64) ([]*calendar.Event, error)
	inserted []*calendar.Event
}

func (m *mockCalendar) ListEvents(timeMin, timeMax string, maxResults int64) ([]*calendar.Event, error) {
	if m.listFn != nil {
		return m.listFn(timeMin, timeMax, maxResults)
	}
	return nil, nil
}

func (m *mockCalendar) InsertEvent(event *calendar.Event) (*calendar.Event, error) {
	m.inserted = append(m.inserted, event)
	created := *event
	created.Id = "evt-123"
	return &created, nil
}

type mockSMS struct {
	sendFn func(body string) (string, error)
	sent   []string
}

func (m *mockSMS) Send(body string) (string, error) {
	m.sent = append(m.sent, body)
	if m.sendFn != nil {
		return m.sendFn(body)
	}
	return "SM123", nil
}

func newTestServer(cal *mockCalendar, sms *mockSMS) *gin.Engine {
	gin.SetMode(gin.TestMode)

	d := &dispatcher.Dispatcher{
		Logger:     zap.NewNop(),
		FeatureCfg: &service.FeatureConfig{},
	}
	if cal != nil {
		d.Calendar = cal
	}
	if sms != nil {
		d.SMS = sms
	}

	r := gin.New()
	RegisterRoutes(r, NewAPIHandler(d, zap.NewNop()))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, target, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	parsed := map[string]any{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w.Code, parsed
}

func TestHomeEndpoint(t *testing.T) {
	r := newTestServer(nil, nil)

	code, body := doJSON(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "The Plumber Dispatcher is Online 🟢", body["status"])
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("no collaborators", func(t *testing.T) {
		r := newTestServer(nil, nil)

		code, body := doJSON(t, r, http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, false, body["sms_ready"])
		assert.Equal(t, false, body["calendar_ready"])
	})

	t.Run("all collaborators", func(t *testing.T) {
		r := newTestServer(&mockCalendar{}, &mockSMS{})

		_, body := doJSON(t, r, http.MethodGet, "/healthz", "")
		assert.Equal(t, true, body["sms_ready"])
		assert.Equal(t, true, body["calendar_ready"])
	})
}

func TestCheckServiceAreaEndpoint(t *testing.T) {
	r := newTestServer(nil, nil)

	t.Run("authorized", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodPost, "/check-service-area", `{"zip_code":"15213"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "authorized", body["result"])
		assert.Equal(t, "You are in our service area.", body["message"])
	})

	t.Run("out of area", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodPost, "/check-service-area", `{"zip_code":"90210"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "out_of_area", body["result"])
	})

	t.Run("missing zip", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodPost, "/check-service-area", `{}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["result"])
		assert.Equal(t, "No zip code provided.", body["message"])
	})

	t.Run("query parameter", func(t *testing.T) {
		code, body := doJSON(t, r, http.MethodPost, "/check-service-area?zip_code=15222", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "authorized", body["result"])
	})
}

func TestReportEmergencyEndpoint(t *testing.T) {
	t.Run("high severity dispatches sms", func(t *testing.T) {
		sms := &mockSMS{}
		r := newTestServer(nil, sms)

		code, body := doJSON(t, r, http.MethodPost, "/report-emergency", `{
			"issue_type": "Burst Pipe",
			"customer_name": "Sarah Connor",
			"customer_phone": "+15551234567",
			"zip_code": "15213",
			"severity": "high"
		}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "SM123", body["sms_id"])
		assert.NotEmpty(t, body["report_id"])
		require.Len(t, sms.sent, 1)
		assert.Contains(t, sms.sent[0], "Issue: Burst Pipe")
	})

	t.Run("sparse high severity payload uses defaults", func(t *testing.T) {
		sms := &mockSMS{}
		r := newTestServer(nil, sms)

		code, body := doJSON(t, r, http.MethodPost, "/report-emergency", `{"severity":"high"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "success", body["status"])
		require.Len(t, sms.sent, 1)
		assert.Contains(t, sms.sent[0], "Issue: Unknown issue")
		assert.Contains(t, sms.sent[0], "Customer: Unknown caller")
	})

	t.Run("low severity is logged", func(t *testing.T) {
		sms := &mockSMS{}
		r := newTestServer(nil, sms)

		code, body := doJSON(t, r, http.MethodPost, "/report-emergency", `{"severity":"low","issue_type":"Dripping Faucet"}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "logged", body["status"])
		assert.Equal(t, "Routine issue logged. Office will call back.", body["message"])
		assert.Empty(t, sms.sent)
	})

	t.Run("empty body defaults to logged", func(t *testing.T) {
		r := newTestServer(nil, &mockSMS{})

		code, body := doJSON(t, r, http.MethodPost, "/report-emergency", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "logged", body["status"])
	})

	t.Run("sms unconfigured", func(t *testing.T) {
		r := newTestServer(nil, nil)

		code, body := doJSON(t, r, http.MethodPost, "/report-emergency", `{"severity":"high"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Failed to send SMS", body["message"])
	})

	t.Run("sms failure stays a structured error", func(t *testing.T) {
		sms := &mockSMS{sendFn: func(string) (string, error) {
			return "", errors.New("twilio 500")
		}}
		r := newTestServer(nil, sms)

		code, body := doJSON(t, r, http.MethodPost, "/report-emergency", `{"severity":"high"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Failed to send SMS", body["message"])
	})
}

func TestCheckAvailabilityEndpoint(t *testing.T) {
	t.Run("calendar offline", func(t *testing.T) {
		r := newTestServer(nil, nil)

		code, body := doJSON(t, r, http.MethodPost, "/check-availability", `{"day":"tomorrow"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Scheduling is offline right now. Please try again later.", body["message"])
	})

	t.Run("free", func(t *testing.T) {
		r := newTestServer(&mockCalendar{}, nil)

		code, body := doJSON(t, r, http.MethodPost, "/check-availability", `{"day":"tomorrow"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "free", body["status"])
	})

	t.Run("busy lists the events", func(t *testing.T) {
		cal := &mockCalendar{listFn: func(string, string, int64) ([]*calendar.Event, error) {
			return []*calendar.Event{
				{Summary: "PLUMBING: Bob", Start: &calendar.EventDateTime{DateTime: "2026-01-12T15:00:00+00:00"}},
			}, nil
		}}
		r := newTestServer(cal, nil)

		code, body := doJSON(t, r, http.MethodPost, "/check-availability", "")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "busy", body["status"])
		assert.Contains(t, body["message"], "2026-01-12T15:00:00+00:00 (PLUMBING: Bob)")
	})
}

func TestBookAppointmentEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		cal := &mockCalendar{}
		r := newTestServer(cal, nil)

		code, body := doJSON(t, r, http.MethodPost, "/book-appointment", `{
			"customer_name": "Sarah Connor",
			"customer_phone": "+15551234567",
			"start_time": "2026-01-12T15:00:00Z"
		}`)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "evt-123", body["booking_id"])

		require.Len(t, cal.inserted, 1)
		assert.Equal(t, "PLUMBING: Sarah Connor", cal.inserted[0].Summary)
		assert.Equal(t, "2026-01-12T15:00:00+00:00", cal.inserted[0].Start.DateTime)
		assert.Equal(t, "2026-01-12T16:00:00+00:00", cal.inserted[0].End.DateTime)
	})

	t.Run("preferred_time alias books too", func(t *testing.T) {
		cal := &mockCalendar{}
		r := newTestServer(cal, nil)

		code, body := doJSON(t, r, http.MethodPost, "/book-appointment", `{"name":"Bob","preferred_time":"2026-01-12T15:00:00Z"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "success", body["status"])
		require.Len(t, cal.inserted, 1)
		assert.Equal(t, "PLUMBING: Bob", cal.inserted[0].Summary)
	})

	t.Run("missing start time", func(t *testing.T) {
		cal := &mockCalendar{}
		r := newTestServer(cal, nil)

		code, body := doJSON(t, r, http.MethodPost, "/book-appointment", `{"customer_name":"Bob"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "A valid start time is required to book an appointment.", body["message"])
		assert.Empty(t, cal.inserted)
	})

	t.Run("malformed json", func(t *testing.T) {
		cal := &mockCalendar{}
		r := newTestServer(cal, nil)

		code, body := doJSON(t, r, http.MethodPost, "/book-appointment", `{"start_time":`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["status"])
		assert.Empty(t, cal.inserted)
	})

	t.Run("calendar offline", func(t *testing.T) {
		r := newTestServer(nil, nil)

		code, body := doJSON(t, r, http.MethodPost, "/book-appointment", `{"start_time":"2026-01-12T15:00:00Z"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "error", body["status"])
		assert.Equal(t, "Scheduling is offline right now. Please try again later.", body["message"])
	})
}

func TestToolEndpointsAlwaysRespond200(t *testing.T) {
	r := newTestServer(nil, nil)

	endpoints := []string{
		"/check-service-area",
		"/report-emergency",
		"/check-availability",
		"/book-appointment",
	}

	for _, endpoint := range endpoints {
		t.Run(endpoint, func(t *testing.T) {
			for _, body := range []string{"", "{}", `{"unexpected":true}`, `not json at all`} {
				code, _ := doJSON(t, r, http.MethodPost, endpoint, body)
				assert.Equal(t, http.StatusOK, code, "body %q must not break the tool contract", body)
			}
		})
	}
}
