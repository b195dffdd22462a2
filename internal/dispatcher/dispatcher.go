package dispatcher

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/threeriversplumbing/dispatch-api/internal/models"
	"github.com/threeriversplumbing/dispatch-api/internal/service"
)

// Dispatcher coordinates the phone tools behind the webhook surface. The
// collaborator fields stay nil when unconfigured; every tool degrades to an
// error result instead of failing the call.
type Dispatcher struct {
	Logger     *zap.Logger
	Calendar   service.CalendarClient
	SMS        service.SMSSender
	FeatureCfg *service.FeatureConfig
}

// CalendarReady reports whether calendar-backed tools can run.
func (d *Dispatcher) CalendarReady() bool {
	return d.Calendar != nil
}

// SMSReady reports whether SMS-backed tools can run.
func (d *Dispatcher) SMSReady() bool {
	return d.SMS != nil
}

// CheckServiceArea answers whether a caller's zip code is inside the
// service area. Pure lookup against the configured footprint.
func (d *Dispatcher) CheckServiceArea(zip string) AreaResult {
	if zip == "" {
		d.Logger.Warn("Service area check without a zip code")
		return AreaResult{Result: ResultError, Message: "No zip code provided."}
	}

	if d.FeatureCfg.Dispatch.ZipSet()[zip] {
		d.Logger.Info("Service area check", zap.String("zip", zip), zap.String("result", ResultAuthorized))
		return AreaResult{Result: ResultAuthorized, Message: "You are in our service area."}
	}

	d.Logger.Info("Service area check", zap.String("zip", zip), zap.String("result", ResultOutOfArea))
	return AreaResult{Result: ResultOutOfArea, Message: "Unfortunately, we do not service that zip code."}
}

// ReportEmergency logs an emergency report and, for high severity, texts the
// plumber's cell immediately. Low severity never wakes anyone up.
func (d *Dispatcher) ReportEmergency(report models.EmergencyReport) Result {
	reportID := uuid.New().String()

	d.Logger.Info("Emergency reported",
		zap.String("report_id", reportID),
		zap.String("issue", report.IssueType),
		zap.String("severity", report.Severity),
		zap.String("zip", report.ZipCode))

	if !strings.EqualFold(report.Severity, "high") {
		return Result{
			Status:   StatusLogged,
			Message:  "Routine issue logged. Office will call back.",
			ReportID: reportID,
		}
	}

	if d.SMS == nil {
		return d.errorResult(errUnavailable, "Failed to send SMS", nil,
			zap.String("report_id", reportID), zap.String("collaborator", "sms"))
	}

	sid, err := d.SMS.Send(BuildEmergencySMS(report))
	if err != nil {
		return d.errorResult(errFailure, "Failed to send SMS", err,
			zap.String("report_id", reportID))
	}

	d.Logger.Info("Emergency dispatched", zap.String("report_id", reportID), zap.String("sms_id", sid))
	return Result{
		Status:   StatusSuccess,
		Message:  "Emergency dispatched. The plumber has been texted and will call back immediately.",
		ReportID: reportID,
		SMSID:    sid,
	}
}

// BuildEmergencySMS renders the text sent to the plumber for a high-severity
// report.
func BuildEmergencySMS(report models.EmergencyReport) string {
	return fmt.Sprintf("🚨 NEW EMERGENCY JOB 🚨\n\n"+
		"Issue: %s\n"+
		"Customer: %s\n"+
		"Phone: %s\n"+
		"Location: %s\n"+
		"Status: Customer is waiting. Call immediately.",
		report.IssueType, report.CustomerName, report.CustomerPhone, report.ZipCode)
}
