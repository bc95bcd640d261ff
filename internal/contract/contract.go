// Package contract manages employment contracts and their weekly work
// pattern.
package contract

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/duvalivy/planrh/internal"
)

// WorkDay is one recurring working slot of the weekly pattern.
type WorkDay struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// WorkDays serializes the pattern as a JSON text column.
type WorkDays []WorkDay

func (d WorkDays) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal(d)
	return string(b), err
}

func (d *WorkDays) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	default:
		return fmt.Errorf("unsupported WorkDays source %T", value)
	}
}

type Contract struct {
	ID            string    `json:"_id" gorm:"primaryKey;size:24"`
	UserID        string    `json:"user_id" gorm:"column:user_id;size:24;not null;index"`
	StartDate     string    `json:"start_date" gorm:"column:start_date;size:10"`
	Type          string    `json:"type"`
	WeeklyHours   float64   `json:"weekly_hours" gorm:"column:weekly_hours"`
	DailyHours    float64   `json:"daily_hours" gorm:"column:daily_hours"`
	WorkingPeriod string    `json:"working_period" gorm:"column:working_period"`
	WorkDays      WorkDays  `json:"work_days" gorm:"column:work_days;type:text"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Contract) TableName() string {
	return "contracts"
}

var (
	ErrNotFound       = internal.NewNotFoundError("Contrat non trouvé", internal.ErrCodeResourceNotFound)
	ErrUserRequired   = internal.NewValidationError("L'identifiant de l'utilisateur est obligatoire", internal.ErrCodeValidationFailed)
	ErrUnknownUser    = internal.NewValidationError("Utilisateur non trouvé", internal.ErrCodeUserNotFound)
	ErrBadStartDate   = internal.NewValidationError("Format de date invalide. Utilisez le format YYYY-MM-DD", internal.ErrCodeInvalidDate)
	ErrBadWorkDayTime = internal.NewValidationError("Format d'heure invalide dans work_days. Utilisez le format HH:MM", internal.ErrCodeInvalidTime)
)
