// Package absence manages staff absence requests and their replacement
// workflow.
package absence

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Absence request statuses; wire values stay in French.
const (
	StatusPending           = "En cours"
	StatusAcceptedByReplace = "Accepté par le remplaçant"
	StatusValidatedByCadre  = "Validé par le cadre"
	StatusRefusedByReplace  = "Refusé par le remplaçant"
	StatusRefusedByCadre    = "Refusé par le cadre"
)

// Statuses lists the accepted values in display order.
var Statuses = []string{
	StatusPending,
	StatusAcceptedByReplace,
	StatusValidatedByCadre,
	StatusRefusedByReplace,
	StatusRefusedByCadre,
}

// ValidStatus checks enum membership. Transitions between enumerated
// statuses are unconstrained: cadres may override any prior decision.
func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

type Absence struct {
	ID            string    `json:"_id" gorm:"primaryKey;size:24"`
	StaffID       string    `json:"staff_id" gorm:"column:staff_id;size:24;not null;index"`
	StartDate     string    `json:"start_date" gorm:"column:start_date;size:10;not null"`
	StartHour     string    `json:"start_hour" gorm:"column:start_hour;size:5"`
	EndDate       string    `json:"end_date" gorm:"column:end_date;size:10;not null"`
	EndHour       string    `json:"end_hour" gorm:"column:end_hour;size:5"`
	Reason        string    `json:"reason"`
	Comment       *string   `json:"commentaire,omitempty" gorm:"column:commentaire"`
	ServiceID     *string   `json:"service_id,omitempty" gorm:"column:service_id;size:24"`
	ReplacementID *string   `json:"replacement_id,omitempty" gorm:"column:replacement_id;size:24"`
	AbsenceCodeID *string   `json:"absence_code_id,omitempty" gorm:"column:absence_code_id;size:24"`
	Status        string    `json:"status" gorm:"not null"`
	Matricule     string    `json:"matricule" gorm:"uniqueIndex;size:16"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Absence) TableName() string {
	return "absences"
}

var (
	ErrNotFound      = internal.NewNotFoundError("Demande d'absence non trouvée", internal.ErrCodeResourceNotFound)
	ErrUnknownUser   = internal.NewValidationError("Utilisateur non trouvé", internal.ErrCodeUserNotFound)
	ErrStaffRequired = internal.NewValidationError("L'identifiant du membre du personnel est obligatoire", internal.ErrCodeValidationFailed)
	ErrBadDate       = internal.NewValidationError("Format de date invalide. Utilisez le format YYYY-MM-DD", internal.ErrCodeInvalidDate)
	ErrBadHour       = internal.NewValidationError("Format d'heure invalide. Utilisez le format HH:MM", internal.ErrCodeInvalidTime)
	ErrBadPeriod     = internal.NewValidationError("La fin de l'absence doit être postérieure à son début", internal.ErrCodeInvalidRange)
	ErrBadStatus     = internal.NewValidationError("Statut d'absence invalide", internal.ErrCodeInvalidStatus)
	ErrReplRequired  = internal.NewValidationError("L'identifiant du remplaçant est obligatoire", internal.ErrCodeValidationFailed)
)
