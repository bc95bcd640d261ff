// Package feed stores the operational feed collections: alerts, anomalies,
// events and notifications. The four collections share one document shape;
// each entry carries a type discriminant validated against the collection's
// own enum.
package feed

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Severities, shared by alerts and anomalies.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Entry is one feed document. DueDate is only meaningful for events.
type Entry struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:24"`
	Type      string    `json:"type" gorm:"not null"`
	Severity  string    `json:"severity,omitempty"`
	Status    string    `json:"status" gorm:"not null"`
	Title     string    `json:"title" gorm:"not null"`
	Message   string    `json:"message"`
	UserID    *string   `json:"user_id,omitempty" gorm:"column:user_id;size:24;index"`
	ServiceID *string   `json:"service_id,omitempty" gorm:"column:service_id;size:24;index"`
	DueDate   *string   `json:"due_date,omitempty" gorm:"column:due_date;size:10"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// Kind describes one collection: its storage table, the label used in
// response messages and the enums its entries must respect. A nil Severities
// slice means the collection does not carry a severity.
type Kind struct {
	Table         string
	Label         string
	Types         []string
	Severities    []string
	Statuses      []string
	DefaultStatus string
	HasDueDate    bool
	// ReadAllStatus, when set, enables the bulk per-user flip endpoint that
	// moves every entry of a user to this status.
	ReadAllStatus string
}

var (
	Alerts = Kind{
		Table:         "alerts",
		Label:         "Alerte",
		Types:         []string{"planning", "absence", "effectif", "system"},
		Severities:    []string{SeverityInfo, SeverityWarning, SeverityCritical},
		Statuses:      []string{"new", "acknowledged", "resolved"},
		DefaultStatus: "new",
	}

	Anomalies = Kind{
		Table:         "anomalies",
		Label:         "Anomalie",
		Types:         []string{"heures_manquantes", "heures_supplementaires", "chevauchement", "absence_non_couverte"},
		Severities:    []string{SeverityInfo, SeverityWarning, SeverityCritical},
		Statuses:      []string{"new", "confirmed", "dismissed"},
		DefaultStatus: "new",
	}

	Events = Kind{
		Table:         "events",
		Label:         "Événement",
		Types:         []string{"reunion", "formation", "entretien", "autre"},
		Statuses:      []string{"scheduled", "cancelled", "done"},
		DefaultStatus: "scheduled",
		HasDueDate:    true,
	}

	Notifications = Kind{
		Table:         "notifications",
		Label:         "Notification",
		Types:         []string{"info", "rappel", "action_requise"},
		Statuses:      []string{"unread", "read"},
		DefaultStatus: "unread",
		ReadAllStatus: "read",
	}
)

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func (k Kind) ValidType(t string) bool {
	return contains(k.Types, t)
}

func (k Kind) ValidStatus(s string) bool {
	return contains(k.Statuses, s)
}

func (k Kind) ValidSeverity(s string) bool {
	return k.Severities != nil && contains(k.Severities, s)
}

var ErrNotFound = internal.NewNotFoundError("Entrée non trouvée", internal.ErrCodeResourceNotFound)
