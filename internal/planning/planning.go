// Package planning stores validated work assignments.
package planning

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Planning is one validated assignment of a user to a slot. The time_range
// is free form ("08:00-16:00", "Nuit"); duplicates are defined as the exact
// (user_id, date, time_range) string triple and rejected by a composite
// unique index.
type Planning struct {
	ID           string    `json:"_id" gorm:"primaryKey;size:24"`
	UserID       string    `json:"user_id" gorm:"column:user_id;size:24;not null;uniqueIndex:idx_plannings_slot"`
	Date         string    `json:"date" gorm:"size:10;not null;uniqueIndex:idx_plannings_slot"`
	TimeRange    string    `json:"time_range" gorm:"column:time_range;not null;uniqueIndex:idx_plannings_slot"`
	ActivityCode string    `json:"activity_code" gorm:"column:activity_code"`
	ValidatedBy  *string   `json:"validated_by,omitempty" gorm:"column:validated_by;size:24"`
	Comment      *string   `json:"commentaire,omitempty" gorm:"column:commentaire"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Planning) TableName() string {
	return "plannings"
}

// Filter narrows List; zero values mean no constraint.
type Filter struct {
	UserID       string
	Date         string
	ActivityCode string
	ServiceID    string
}

var (
	ErrNotFound      = internal.NewNotFoundError("Planning non trouvé", internal.ErrCodeResourceNotFound)
	ErrDuplicateSlot = internal.NewConflictError("Un planning existe déjà pour ce créneau", internal.ErrCodeDuplicateSlot)
	ErrUnknownUser   = internal.NewValidationError("Utilisateur non trouvé", internal.ErrCodeUserNotFound)
	ErrUserRequired  = internal.NewValidationError("L'identifiant de l'utilisateur est obligatoire", internal.ErrCodeValidationFailed)
	ErrRangeRequired = internal.NewValidationError("Le créneau horaire est obligatoire", internal.ErrCodeValidationFailed)
	ErrBadDate       = internal.NewValidationError("Format de date invalide. Utilisez le format YYYY-MM-DD", internal.ErrCodeInvalidDate)
)
