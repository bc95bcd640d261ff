package availability

import "github.com/duvalivy/planrh/internal/timefmt"

// ValidDate accepts zero-padded YYYY-MM-DD calendar dates only.
func ValidDate(s string) bool {
	return timefmt.ValidDate(s)
}

// ValidTime accepts zero-padded HH:MM clock times only.
func ValidTime(s string) bool {
	return timefmt.ValidTime(s)
}

// CreateDTO is the proposal submission payload. The status field is ignored
// on purpose: all proposals start as "proposed".
type CreateDTO struct {
	UserID    string  `json:"user_id"`
	Date      string  `json:"date"`
	StartTime string  `json:"start_time"`
	EndTime   string  `json:"end_time"`
	Comment   *string `json:"commentaire"`
}

// Validate runs the cheap shape checks. Referential and overlap checks need
// the repository and live in the service.
func (d CreateDTO) Validate() error {
	if !ValidDate(d.Date) {
		return ErrBadDate
	}
	if !ValidTime(d.StartTime) {
		return ErrBadStartTime
	}
	if !ValidTime(d.EndTime) {
		return ErrBadEndTime
	}
	if d.EndTime <= d.StartTime {
		return ErrBadRange
	}
	return nil
}

// UpdateDTO carries a partial update; nil fields are left untouched.
type UpdateDTO struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Status    *string `json:"status"`
	Comment   *string `json:"commentaire"`
}

func (d UpdateDTO) Validate() error {
	if d.Date != nil && !ValidDate(*d.Date) {
		return ErrBadDate
	}
	if d.StartTime != nil && !ValidTime(*d.StartTime) {
		return ErrBadStartTime
	}
	if d.EndTime != nil && !ValidTime(*d.EndTime) {
		return ErrBadEndTime
	}
	if d.Status != nil && !ValidStatus(*d.Status) {
		return ErrBadStatus
	}
	return nil
}

// Fields materializes the non-nil members as a column update map.
func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Date != nil {
		fields["date"] = *d.Date
	}
	if d.StartTime != nil {
		fields["start_time"] = *d.StartTime
	}
	if d.EndTime != nil {
		fields["end_time"] = *d.EndTime
	}
	if d.Status != nil {
		fields["status"] = *d.Status
	}
	if d.Comment != nil {
		fields["commentaire"] = *d.Comment
	}
	return fields
}

// DecideDTO is the cadre decision payload for PUT /availabilities/{id}.
type DecideDTO struct {
	Status  string  `json:"status"`
	Comment *string `json:"commentaire"`
}
