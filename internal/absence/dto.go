package absence

import (
	"strings"

	"github.com/duvalivy/planrh/internal/timefmt"
)

type CreateDTO struct {
	StaffID       string  `json:"staff_id"`
	StartDate     string  `json:"start_date"`
	StartHour     string  `json:"start_hour"`
	EndDate       string  `json:"end_date"`
	EndHour       string  `json:"end_hour"`
	Reason        string  `json:"reason"`
	Comment       *string `json:"commentaire"`
	ServiceID     *string `json:"service_id"`
	ReplacementID *string `json:"replacement_id"`
	AbsenceCodeID *string `json:"absence_code_id"`
	Status        string  `json:"status"`
}

// Validate checks shapes and period ordering. An absence may span several
// days; on a single day the end hour must come after the start hour.
func (d CreateDTO) Validate() error {
	if strings.TrimSpace(d.StaffID) == "" {
		return ErrStaffRequired
	}
	if !timefmt.ValidDate(d.StartDate) || !timefmt.ValidDate(d.EndDate) {
		return ErrBadDate
	}
	if d.StartHour != "" && !timefmt.ValidTime(d.StartHour) {
		return ErrBadHour
	}
	if d.EndHour != "" && !timefmt.ValidTime(d.EndHour) {
		return ErrBadHour
	}
	if d.EndDate < d.StartDate {
		return ErrBadPeriod
	}
	if d.EndDate == d.StartDate && d.StartHour != "" && d.EndHour != "" && d.EndHour <= d.StartHour {
		return ErrBadPeriod
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		return ErrBadStatus
	}
	return nil
}

type UpdateDTO struct {
	StartDate     *string `json:"start_date"`
	StartHour     *string `json:"start_hour"`
	EndDate       *string `json:"end_date"`
	EndHour       *string `json:"end_hour"`
	Reason        *string `json:"reason"`
	Comment       *string `json:"commentaire"`
	ServiceID     *string `json:"service_id"`
	ReplacementID *string `json:"replacement_id"`
	AbsenceCodeID *string `json:"absence_code_id"`
	Status        *string `json:"status"`
}

func (d UpdateDTO) Validate() error {
	if d.StartDate != nil && !timefmt.ValidDate(*d.StartDate) {
		return ErrBadDate
	}
	if d.EndDate != nil && !timefmt.ValidDate(*d.EndDate) {
		return ErrBadDate
	}
	if d.StartHour != nil && *d.StartHour != "" && !timefmt.ValidTime(*d.StartHour) {
		return ErrBadHour
	}
	if d.EndHour != nil && *d.EndHour != "" && !timefmt.ValidTime(*d.EndHour) {
		return ErrBadHour
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		return ErrBadStatus
	}
	return nil
}

func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.StartDate != nil {
		fields["start_date"] = *d.StartDate
	}
	if d.StartHour != nil {
		fields["start_hour"] = *d.StartHour
	}
	if d.EndDate != nil {
		fields["end_date"] = *d.EndDate
	}
	if d.EndHour != nil {
		fields["end_hour"] = *d.EndHour
	}
	if d.Reason != nil {
		fields["reason"] = *d.Reason
	}
	if d.Comment != nil {
		fields["commentaire"] = *d.Comment
	}
	if d.ServiceID != nil {
		fields["service_id"] = *d.ServiceID
	}
	if d.ReplacementID != nil {
		fields["replacement_id"] = *d.ReplacementID
	}
	if d.AbsenceCodeID != nil {
		fields["absence_code_id"] = *d.AbsenceCodeID
	}
	if d.Status != nil {
		fields["status"] = *d.Status
	}
	return fields
}

// StatusDTO is the payload of the dedicated status endpoint.
type StatusDTO struct {
	Status string `json:"status"`
}

// ReplaceDTO assigns a replacement to an absence.
type ReplaceDTO struct {
	ReplacementID string `json:"replacement_id"`
}
