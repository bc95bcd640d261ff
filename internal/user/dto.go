package user

import (
	"regexp"
	"strings"

	"github.com/duvalivy/planrh/internal"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterDTO is the request payload for POST /users/register.
type RegisterDTO struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phoneNumber"`
	Password     string  `json:"password"`
	Role         string  `json:"role"`
	ServiceID    *string `json:"service_id,omitempty"`
	SpecialityID *string `json:"speciality_id,omitempty"`
}

func (dto RegisterDTO) Validate() error {
	if strings.TrimSpace(dto.FirstName) == "" || strings.TrimSpace(dto.LastName) == "" {
		return internal.NewValidationError("first_name and last_name are required", internal.ErrCodeValidationFailed)
	}
	if !emailPattern.MatchString(dto.Email) {
		return ErrInvalidEmail
	}
	if len(dto.Password) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Role) == "" {
		return internal.NewValidationError("role is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// UpdateDTO carries a partial field merge; nil means "leave unchanged".
// Passwords never travel through this path.
type UpdateDTO struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	Role         *string `json:"role,omitempty"`
	ServiceID    *string `json:"service_id,omitempty"`
	SpecialityID *string `json:"speciality_id,omitempty"`
}

func (dto UpdateDTO) Fields() map[string]any {
	fields := map[string]any{}
	if dto.FirstName != nil {
		fields["first_name"] = *dto.FirstName
	}
	if dto.LastName != nil {
		fields["last_name"] = *dto.LastName
	}
	if dto.Email != nil {
		fields["email"] = *dto.Email
	}
	if dto.PhoneNumber != nil {
		fields["phone_number"] = *dto.PhoneNumber
	}
	if dto.Role != nil {
		fields["role"] = *dto.Role
	}
	if dto.ServiceID != nil {
		fields["service_id"] = *dto.ServiceID
	}
	if dto.SpecialityID != nil {
		fields["speciality_id"] = *dto.SpecialityID
	}
	return fields
}

func (dto UpdateDTO) Validate() error {
	if dto.Email != nil && !emailPattern.MatchString(*dto.Email) {
		return ErrInvalidEmail
	}
	return nil
}

type ChangePasswordDTO struct {
	NewPassword string `json:"new_password"`
}

func (dto ChangePasswordDTO) Validate() error {
	if len(dto.NewPassword) < 6 {
		return internal.NewValidationError("password must be at least 6 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AssignServiceDTO struct {
	ServiceID string `json:"service_id"`
}

func (dto AssignServiceDTO) Validate() error {
	if strings.TrimSpace(dto.ServiceID) == "" {
		return internal.NewValidationError("service_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// RegisteredResponse is the creation receipt: storage id plus the issued
// matricule.
type RegisteredResponse struct {
	ID        string `json:"id"`
	Matricule string `json:"matricule"`
	CreatedAt string `json:"created_at"`
}
