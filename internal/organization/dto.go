package organization

import "strings"

type ServiceDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HeadID      *string `json:"head_id"`
}

func (d ServiceDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type ServiceUpdateDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	HeadID      *string `json:"head_id"`
}

func (d ServiceUpdateDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (d ServiceUpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Name != nil {
		fields["name"] = strings.TrimSpace(*d.Name)
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.HeadID != nil {
		fields["head_id"] = *d.HeadID
	}
	return fields
}

type SpecialityDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (d SpecialityDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type SpecialityUpdateDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (d SpecialityUpdateDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (d SpecialityUpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Name != nil {
		fields["name"] = strings.TrimSpace(*d.Name)
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	return fields
}

type PoleDTO struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	HeadID        *string  `json:"head_id"`
	SpecialityIDs []string `json:"speciality_ids"`
}

func (d PoleDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

type PoleUpdateDTO struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	HeadID        *string   `json:"head_id"`
	SpecialityIDs *[]string `json:"speciality_ids"`
}

func (d PoleUpdateDTO) Validate() error {
	if d.Name != nil && strings.TrimSpace(*d.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

func (d PoleUpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if d.Name != nil {
		fields["name"] = strings.TrimSpace(*d.Name)
	}
	if d.Description != nil {
		fields["description"] = *d.Description
	}
	if d.HeadID != nil {
		fields["head_id"] = *d.HeadID
	}
	if d.SpecialityIDs != nil {
		fields["speciality_ids"] = StringList(*d.SpecialityIDs)
	}
	return fields
}

