package planning

import (
	"strings"

	"github.com/duvalivy/planrh/internal/timefmt"
)

type CreateDTO struct {
	UserID       string  `json:"user_id"`
	Date         string  `json:"date"`
	TimeRange    string  `json:"time_range"`
	ActivityCode string  `json:"activity_code"`
	ValidatedBy  *string `json:"validated_by"`
	Comment      *string `json:"commentaire"`
}

func (d CreateDTO) Validate() error {
	if strings.TrimSpace(d.UserID) == "" {
		return ErrUserRequired
	}
	if !timefmt.ValidDate(d.Date) {
		return ErrBadDate
	}
	if strings.TrimSpace(d.TimeRange) == "" {
		return ErrRangeRequired
	}
	return nil
}

type UpdateDTO struct {
	Date         *string `json:"date"`
	TimeRange    *string `json:"time_range"`
	ActivityCode *string `json:"activity_code"`
	ValidatedBy  *string `json:"validated_by"`
	Comment      *string `json:"commentaire"`
}

func (d UpdateDTO) Validate() error {
	if d.Date != nil && !timefmt.ValidDate(*d.Date) {
		return ErrBadDate
	}
	if d.TimeRange != nil && strings.TrimSpace(*d.TimeRange) == "" {
		return ErrRangeRequired
	}
	return nil
}

func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Date != nil {
		fields["date"] = *d.Date
	}
	if d.TimeRange != nil {
		fields["time_range"] = *d.TimeRange
	}
	if d.ActivityCode != nil {
		fields["activity_code"] = *d.ActivityCode
	}
	if d.ValidatedBy != nil {
		fields["validated_by"] = *d.ValidatedBy
	}
	if d.Comment != nil {
		fields["commentaire"] = *d.Comment
	}
	return fields
}
