package ask

import "strings"

type CreateDTO struct {
	AbsenceID   string `json:"absence_id"`
	ColleagueID string `json:"colleague_id"`
	Status      string `json:"status"`
}

func (d CreateDTO) Validate() error {
	if strings.TrimSpace(d.AbsenceID) == "" {
		return ErrAbsenceRequired
	}
	if strings.TrimSpace(d.ColleagueID) == "" {
		return ErrColleagueRequired
	}
	return nil
}

type UpdateDTO struct {
	ColleagueID *string `json:"colleague_id"`
	Status      *string `json:"status"`
}

func (d UpdateDTO) Validate() error {
	if d.ColleagueID != nil && strings.TrimSpace(*d.ColleagueID) == "" {
		return ErrColleagueRequired
	}
	return nil
}

func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.ColleagueID != nil {
		fields["colleague_id"] = *d.ColleagueID
	}
	if d.Status != nil {
		fields["status"] = *d.Status
	}
	return fields
}
