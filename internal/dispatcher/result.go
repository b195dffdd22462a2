package dispatcher

import (
	"go.uber.org/zap"
)

// Tool statuses. check-service-area speaks a "result" key with its own
// vocabulary; every other tool speaks "status".
const (
	ResultAuthorized = "authorized"
	ResultOutOfArea  = "out_of_area"
	ResultError      = "error"

	StatusSuccess = "success"
	StatusLogged  = "logged"
	StatusFree    = "free"
	StatusBusy    = "busy"
	StatusError   = "error"
)

// Result is the uniform tool outcome. Every dispatcher method returns one;
// failures are folded in, never raised, so a live phone call always receives
// a well-formed body.
type Result struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	ReportID  string `json:"report_id,omitempty"`
	SMSID     string `json:"sms_id,omitempty"`
	BookingID string `json:"booking_id,omitempty"`
}

// AreaResult is the check-service-area outcome, kept on its original
// "result" key.
type AreaResult struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// errKind classifies what went wrong while running a tool.
type errKind int

const (
	errValidation  errKind = iota // bad or missing input, no collaborator call made
	errUnavailable                // collaborator not configured
	errFailure                    // collaborator call failed
)

// errorResult folds a fault into the spoken error result. The underlying
// cause is logged here and never reaches the caller.
func (d *Dispatcher) errorResult(kind errKind, spoken string, err error, fields ...zap.Field) Result {
	fields = append(fields, zap.Error(err))
	switch kind {
	case errValidation:
		d.Logger.Warn("Rejected invalid tool input", fields...)
	case errUnavailable:
		d.Logger.Warn("Collaborator not configured", fields...)
	default:
		d.Logger.Error("Collaborator call failed", fields...)
	}
	return Result{Status: StatusError, Message: spoken}
}
