package models

import "time"

// Severity grades a system alert.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

var severityLabels = map[Severity]string{
	SeverityCritical: "Krytyczny",
	SeverityWarning:  "Ostrzeżenie",
	SeverityInfo:     "Informacja",
}

func (s Severity) Valid() bool { _, ok := severityLabels[s]; return ok }

// Label returns the Polish display label for the severity.
func (s Severity) Label() string {
	if l, ok := severityLabels[s]; ok {
		return l
	}
	return string(s)
}

// SystemAlert is a condition raised against the resource fleet. Alerts
// are dismissed, never deleted.
type SystemAlert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity" validate:"required,oneof=critical warning info"`
	Timestamp   time.Time `json:"timestamp"`
	Category    Category  `json:"category,omitempty"`
	ResourceID  string    `json:"resourceId,omitempty"`
	ActionLink  string    `json:"actionLink,omitempty"`
	ActionText  string    `json:"actionText,omitempty"`
	Dismissed   bool      `json:"dismissed"`
}
