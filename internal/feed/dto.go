package feed

import (
	"fmt"
	"strings"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/timefmt"
)

type CreateDTO struct {
	Type      string  `json:"type"`
	Severity  string  `json:"severity"`
	Status    string  `json:"status"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	UserID    *string `json:"user_id"`
	ServiceID *string `json:"service_id"`
	DueDate   *string `json:"due_date"`
}

// Validate checks the payload against the collection's enums.
func (d CreateDTO) Validate(k Kind) error {
	if !k.ValidType(d.Type) {
		return badEnum("type", k.Types)
	}
	if strings.TrimSpace(d.Title) == "" {
		return internal.NewValidationError("Le titre est obligatoire", internal.ErrCodeValidationFailed)
	}
	if d.Status != "" && !k.ValidStatus(d.Status) {
		return badEnum("status", k.Statuses)
	}
	if d.Severity != "" && !k.ValidSeverity(d.Severity) {
		return badEnum("severity", k.Severities)
	}
	if d.DueDate != nil && !timefmt.ValidDate(*d.DueDate) {
		return internal.NewValidationError("Format de date invalide. Utilisez le format YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

type UpdateDTO struct {
	Type      *string `json:"type"`
	Severity  *string `json:"severity"`
	Status    *string `json:"status"`
	Title     *string `json:"title"`
	Message   *string `json:"message"`
	UserID    *string `json:"user_id"`
	ServiceID *string `json:"service_id"`
	DueDate   *string `json:"due_date"`
}

func (d UpdateDTO) Validate(k Kind) error {
	if d.Type != nil && !k.ValidType(*d.Type) {
		return badEnum("type", k.Types)
	}
	if d.Status != nil && !k.ValidStatus(*d.Status) {
		return badEnum("status", k.Statuses)
	}
	if d.Severity != nil && *d.Severity != "" && !k.ValidSeverity(*d.Severity) {
		return badEnum("severity", k.Severities)
	}
	if d.DueDate != nil && !timefmt.ValidDate(*d.DueDate) {
		return internal.NewValidationError("Format de date invalide. Utilisez le format YYYY-MM-DD", internal.ErrCodeInvalidDate)
	}
	return nil
}

func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Type != nil {
		fields["type"] = *d.Type
	}
	if d.Severity != nil {
		fields["severity"] = *d.Severity
	}
	if d.Status != nil {
		fields["status"] = *d.Status
	}
	if d.Title != nil {
		fields["title"] = *d.Title
	}
	if d.Message != nil {
		fields["message"] = *d.Message
	}
	if d.UserID != nil {
		fields["user_id"] = *d.UserID
	}
	if d.ServiceID != nil {
		fields["service_id"] = *d.ServiceID
	}
	if d.DueDate != nil {
		fields["due_date"] = *d.DueDate
	}
	return fields
}

func badEnum(field string, allowed []string) error {
	return internal.NewValidationError(
		fmt.Sprintf("Valeur de '%s' invalide. Valeurs autorisées: %v", field, allowed),
		internal.ErrCodeInvalidStatus)
}
