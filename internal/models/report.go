package models

// EmergencyReport is the parsed payload for the report-emergency tool.
// Every field carries a caller-safe default by the time it reaches the
// dispatcher, so a sparse payload still produces a usable report.
type EmergencyReport struct {
	IssueType     string `json:"issue_type"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	ZipCode       string `json:"zip_code"`
	Severity      string `json:"severity"`
}
