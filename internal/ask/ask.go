// Package ask manages replacement requests sent to colleagues for an
// absence.
package ask

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Ask links an absence to the colleague solicited as a replacement. The
// status is a free-form string kept as the clients send it.
type Ask struct {
	ID          string    `json:"_id" gorm:"primaryKey;size:24"`
	AbsenceID   string    `json:"absence_id" gorm:"column:absence_id;size:24;not null;index"`
	ColleagueID string    `json:"colleague_id" gorm:"column:colleague_id;size:24;not null;index"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Ask) TableName() string {
	return "asks"
}

var (
	ErrNotFound          = internal.NewNotFoundError("Demande non trouvée", internal.ErrCodeResourceNotFound)
	ErrAbsenceRequired   = internal.NewValidationError("L'identifiant de l'absence est obligatoire", internal.ErrCodeValidationFailed)
	ErrColleagueRequired = internal.NewValidationError("L'identifiant du collègue est obligatoire", internal.ErrCodeValidationFailed)
)
