package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/threeriversplumbing/dispatch-api/internal/dispatcher"
)

// APIHandler exposes the dispatcher's tools over HTTP. Every tool responds
// 200 with a structured body; the voice agent reads status fields, not HTTP
// codes.
type APIHandler struct {
	dispatcher *dispatcher.Dispatcher
	logger     *zap.Logger
}

func NewAPIHandler(d *dispatcher.Dispatcher, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		dispatcher: d,
		logger:     logger,
	}
}

// Home handles GET / as the liveness indicator the voice platform polls.
func (h *APIHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "The Plumber Dispatcher is Online 🟢"})
}

// Health handles GET /healthz with collaborator readiness flags.
func (h *APIHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"sms_ready":      h.dispatcher.SMSReady(),
		"calendar_ready": h.dispatcher.CalendarReady(),
	})
}

// CheckServiceArea handles POST /check-service-area.
func (h *APIHandler) CheckServiceArea(c *gin.Context) {
	zip := parseZipCode(c)
	c.JSON(http.StatusOK, h.dispatcher.CheckServiceArea(zip))
}

// ReportEmergency handles POST /report-emergency.
func (h *APIHandler) ReportEmergency(c *gin.Context) {
	report := parseEmergencyReport(c)
	c.JSON(http.StatusOK, h.dispatcher.ReportEmergency(report))
}

// CheckAvailability handles POST /check-availability.
func (h *APIHandler) CheckAvailability(c *gin.Context) {
	query := parseAvailabilityQuery(c)
	c.JSON(http.StatusOK, h.dispatcher.CheckAvailability(query))
}

// BookAppointment handles POST /book-appointment.
func (h *APIHandler) BookAppointment(c *gin.Context) {
	req := parseBookingRequest(c)
	c.JSON(http.StatusOK, h.dispatcher.BookAppointment(req))
}
