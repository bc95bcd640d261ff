package contract

import (
	"strings"

	"github.com/duvalivy/planrh/internal/timefmt"
)

type CreateDTO struct {
	UserID        string    `json:"user_id"`
	StartDate     string    `json:"start_date"`
	Type          string    `json:"type"`
	WeeklyHours   float64   `json:"weekly_hours"`
	DailyHours    float64   `json:"daily_hours"`
	WorkingPeriod string    `json:"working_period"`
	WorkDays      []WorkDay `json:"work_days"`
}

func (d CreateDTO) Validate() error {
	if strings.TrimSpace(d.UserID) == "" {
		return ErrUserRequired
	}
	if d.StartDate != "" && !timefmt.ValidDate(d.StartDate) {
		return ErrBadStartDate
	}
	for _, wd := range d.WorkDays {
		if !timefmt.ValidTime(wd.StartTime) || !timefmt.ValidTime(wd.EndTime) {
			return ErrBadWorkDayTime
		}
	}
	return nil
}

type UpdateDTO struct {
	StartDate     *string    `json:"start_date"`
	Type          *string    `json:"type"`
	WeeklyHours   *float64   `json:"weekly_hours"`
	DailyHours    *float64   `json:"daily_hours"`
	WorkingPeriod *string    `json:"working_period"`
	WorkDays      *[]WorkDay `json:"work_days"`
}

func (d UpdateDTO) Validate() error {
	if d.StartDate != nil && !timefmt.ValidDate(*d.StartDate) {
		return ErrBadStartDate
	}
	if d.WorkDays != nil {
		for _, wd := range *d.WorkDays {
			if !timefmt.ValidTime(wd.StartTime) || !timefmt.ValidTime(wd.EndTime) {
				return ErrBadWorkDayTime
			}
		}
	}
	return nil
}

func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.StartDate != nil {
		fields["start_date"] = *d.StartDate
	}
	if d.Type != nil {
		fields["type"] = *d.Type
	}
	if d.WeeklyHours != nil {
		fields["weekly_hours"] = *d.WeeklyHours
	}
	if d.DailyHours != nil {
		fields["daily_hours"] = *d.DailyHours
	}
	if d.WorkingPeriod != nil {
		fields["working_period"] = *d.WorkingPeriod
	}
	if d.WorkDays != nil {
		fields["work_days"] = WorkDays(*d.WorkDays)
	}
	return fields
}
