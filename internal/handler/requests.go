package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/threeriversplumbing/dispatch-api/internal/models"
)

// payload is the loosely-typed body the voice platform posts. Tool arguments
// arrive under inconsistent key names across agent revisions, so fields
// resolve through ordered alias lists instead of struct tags.
type payload map[string]any

// decodePayload reads the JSON body. A malformed or absent body degrades to
// an empty payload: required fields then surface their own validation errors
// and fully-defaulted tools proceed.
func decodePayload(c *gin.Context) payload {
	p := payload{}
	if err := c.ShouldBindJSON(&p); err != nil {
		return payload{}
	}
	return p
}

// stringField returns the first usable value among the ordered aliases. Bare
// numbers are tolerated because agents sometimes send zip codes unquoted.
func (p payload) stringField(keys ...string) string {
	for _, key := range keys {
		value, ok := p[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func withDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// parseZipCode resolves the zip across its known aliases, falling back to a
// query parameter for older agent revisions that sent it there.
func parseZipCode(c *gin.Context) string {
	p := decodePayload(c)
	zip := p.stringField("zip_code", "zip", "code")
	if zip == "" {
		zip = strings.TrimSpace(c.Query("zip_code"))
	}
	return zip
}

func parseEmergencyReport(c *gin.Context) models.EmergencyReport {
	p := decodePayload(c)
	return models.EmergencyReport{
		IssueType:     withDefault(p.stringField("issue_type", "issue"), "Unknown issue"),
		CustomerName:  withDefault(p.stringField("customer_name", "name"), "Unknown caller"),
		CustomerPhone: withDefault(p.stringField("customer_phone", "phone"), "Unknown"),
		ZipCode:       withDefault(p.stringField("zip_code", "zip"), "Unknown"),
		Severity:      withDefault(p.stringField("severity"), "low"),
	}
}

func parseAvailabilityQuery(c *gin.Context) models.AvailabilityQuery {
	p := decodePayload(c)
	return models.AvailabilityQuery{
		Day: p.stringField("day", "date"),
	}
}

func parseBookingRequest(c *gin.Context) models.BookingRequest {
	p := decodePayload(c)
	return models.BookingRequest{
		CustomerName:  withDefault(p.stringField("customer_name", "name"), "Unknown caller"),
		CustomerPhone: withDefault(p.stringField("customer_phone", "phone"), "Unknown"),
		StartTime:     p.stringField("start_time", "preferred_time", "time"),
	}
}
