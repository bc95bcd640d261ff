// Package code manages the activity and absence code referential.
package code

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Code is a planning/absence activity code (e.g. "CP" for paid leave).
// Begin/end dates bound its validity period and stay free-form strings on
// the wire.
type Code struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:24"`
	Name      string    `json:"name" gorm:"not null"`
	ShortName string    `json:"short_name" gorm:"column:short_name"`
	Grouping  string    `json:"grouping"`
	Indicator string    `json:"indicator"`
	BeginDate *string   `json:"begin_date,omitempty" gorm:"column:begin_date;size:10"`
	EndDate   *string   `json:"end_date,omitempty" gorm:"column:end_date;size:10"`
	Matricule string    `json:"matricule" gorm:"uniqueIndex;size:16"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Code) TableName() string {
	return "codes"
}

var (
	ErrNotFound     = internal.NewNotFoundError("Code non trouvé", internal.ErrCodeResourceNotFound)
	ErrNameRequired = internal.NewValidationError("Le nom du code est obligatoire", internal.ErrCodeValidationFailed)
)
