package code

import "strings"

type CreateDTO struct {
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	Grouping  string  `json:"grouping"`
	Indicator string  `json:"indicator"`
	BeginDate *string `json:"begin_date"`
	EndDate   *string `json:"end_date"`
}

func (d CreateDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type UpdateDTO struct {
	Name      *string `json:"name"`
	ShortName *string `json:"short_name"`
	Grouping  *string `json:"grouping"`
	Indicator *string `json:"indicator"`
	BeginDate *string `json:"begin_date"`
	EndDate   *string `json:"end_date"`
}

func (d UpdateDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (d UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Name != nil {
		fields["name"] = strings.TrimSpace(*d.Name)
	}
	if d.ShortName != nil {
		fields["short_name"] = *d.ShortName
	}
	if d.Grouping != nil {
		fields["grouping"] = *d.Grouping
	}
	if d.Indicator != nil {
		fields["indicator"] = *d.Indicator
	}
	if d.BeginDate != nil {
		fields["begin_date"] = *d.BeginDate
	}
	if d.EndDate != nil {
		fields["end_date"] = *d.EndDate
	}
	return fields
}
