// Package organization holds the care structure referentials: services,
// specialities and poles.
package organization

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Service is a care unit (e.g. cardiology ward) headed by a cadre.
type Service struct {
	ID          string    `json:"_id" gorm:"primaryKey;size:24"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description *string   `json:"description,omitempty"`
	HeadID      *string   `json:"head_id,omitempty" gorm:"column:head_id;size:24"`
	Matricule   string    `json:"matricule" gorm:"uniqueIndex;size:16"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Service) TableName() string {
	return "services"
}

type Speciality struct {
	ID          string    `json:"_id" gorm:"primaryKey;size:24"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description *string   `json:"description,omitempty"`
	Matricule   string    `json:"matricule" gorm:"uniqueIndex;size:16"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Speciality) TableName() string {
	return "specialities"
}

// StringList stores a list of ids as a JSON array column, readable on both
// postgres and sqlite.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported StringList source %T", value)
	}
}

// Pole groups specialities under a head (e.g. surgical pole).
type Pole struct {
	ID            string     `json:"_id" gorm:"primaryKey;size:24"`
	Name          string     `json:"name" gorm:"uniqueIndex;not null"`
	Description   *string    `json:"description,omitempty"`
	HeadID        *string    `json:"head_id,omitempty" gorm:"column:head_id;size:24"`
	SpecialityIDs StringList `json:"speciality_ids" gorm:"column:speciality_ids;type:text"`
	Matricule     string     `json:"matricule" gorm:"uniqueIndex;size:16"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Pole) TableName() string {
	return "poles"
}

var (
	ErrServiceNotFound    = internal.NewNotFoundError("Service non trouvé", internal.ErrCodeResourceNotFound)
	ErrSpecialityNotFound = internal.NewNotFoundError("Spécialité non trouvée", internal.ErrCodeResourceNotFound)
	ErrPoleNotFound       = internal.NewNotFoundError("Pôle non trouvé", internal.ErrCodeResourceNotFound)

	ErrServiceNameTaken    = internal.NewConflictError("Un service avec ce nom existe déjà", internal.ErrCodeDuplicateName)
	ErrSpecialityNameTaken = internal.NewConflictError("Une spécialité avec ce nom existe déjà", internal.ErrCodeDuplicateName)
	ErrPoleNameTaken       = internal.NewConflictError("Un pôle avec ce nom existe déjà", internal.ErrCodeDuplicateName)

	ErrNameRequired = internal.NewValidationError("Le nom est obligatoire", internal.ErrCodeValidationFailed)
)
