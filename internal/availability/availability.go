package availability

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Availability statuses. A proposal is created as "proposed" and only a
// cadre decision moves it forward.
const (
	StatusProposed  = "proposed"
	StatusValidated = "validated"
	StatusRejected  = "rejected"
)

// Availability is a caregiver-submitted candidate time window on a single
// day. Intervals are half-open [start_time, end_time) and stored as
// zero-padded HH:MM strings, so lexicographic comparison is order-equivalent
// to numeric comparison.
type Availability struct {
	ID        string    `json:"_id" gorm:"primaryKey;size:24"`
	UserID    string    `json:"user_id" gorm:"column:user_id;size:24;not null;index:idx_availabilities_user_date"`
	Date      string    `json:"date" gorm:"size:10;not null;index:idx_availabilities_user_date"`
	StartTime string    `json:"start_time" gorm:"column:start_time;size:5;not null"`
	EndTime   string    `json:"end_time" gorm:"column:end_time;size:5;not null"`
	Status    string    `json:"status" gorm:"not null;default:proposed"`
	Comment   *string   `json:"commentaire,omitempty" gorm:"column:commentaire"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Availability) TableName() string {
	return "availabilities"
}

// Overlaps reports whether the stored interval intersects [start, end).
// Touching endpoints do not overlap.
func (a *Availability) Overlaps(start, end string) bool {
	return a.StartTime < end && a.EndTime > start
}

// TeamAvailability is the cadre view: a proposal joined with the proposing
// user's display name and matricule.
type TeamAvailability struct {
	Availability
	UserName      string `json:"user_name,omitempty"`
	UserMatricule string `json:"user_matricule,omitempty"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusProposed, StatusValidated, StatusRejected:
		return true
	}
	return false
}

// DecisionStatus reports whether status is one a cadre may set through the
// decide endpoint.
func DecisionStatus(status string) bool {
	return status == StatusValidated || status == StatusRejected
}

var (
	ErrNotFound = internal.NewNotFoundError("Disponibilité non trouvée", internal.ErrCodeResourceNotFound)

	ErrBadDate        = internal.NewValidationError("Format de date invalide. Utilisez le format YYYY-MM-DD", internal.ErrCodeInvalidDate)
	ErrBadStartTime   = internal.NewValidationError("Format d'heure de début invalide. Utilisez le format HH:MM", internal.ErrCodeInvalidTime)
	ErrBadEndTime     = internal.NewValidationError("Format d'heure de fin invalide. Utilisez le format HH:MM", internal.ErrCodeInvalidTime)
	ErrBadRange       = internal.NewValidationError("L'heure de fin doit être postérieure à l'heure de début", internal.ErrCodeInvalidRange)
	ErrUnknownUser    = internal.NewValidationError("Utilisateur non trouvé", internal.ErrCodeUserNotFound)
	ErrSlotConflict   = internal.NewConflictError("Une disponibilité existe déjà pour ce créneau horaire", internal.ErrCodeOverlappingSlot)
	ErrBadStatus      = internal.NewValidationError("Statut invalide. Valeurs autorisées: [proposed validated rejected]", internal.ErrCodeInvalidStatus)
	ErrBadDecision    = internal.NewValidationError("Statut invalide. Seuls 'validated' et 'rejected' sont autorisés pour les cadres", internal.ErrCodeInvalidStatus)
	ErrNothingUpdated = internal.NewNotFoundError("Aucune modification effectuée", internal.ErrCodeResourceNotFound)
)
