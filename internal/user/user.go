package user

import (
	"time"

	"github.com/duvalivy/planrh/internal"
)

// Roles known to the scheduling domain. Matricule prefixes derive from the
// role; anything else falls back to the generic USR prefix.
const (
	RoleAdmin = "admin"
	RoleCadre = "cadre"
	RoleNurse = "nurse"
)

type User struct {
	ID           string    `json:"_id" gorm:"primaryKey;size:24"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PhoneNumber  string    `json:"phoneNumber" gorm:"column:phone_number"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	Role         string    `json:"role" gorm:"not null"`
	ServiceID    *string   `json:"service_id" gorm:"column:service_id;size:24"`
	SpecialityID *string   `json:"speciality_id" gorm:"column:speciality_id;size:24"`
	Matricule    string    `json:"matricule" gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsCadre() bool {
	return u.Role == RoleCadre || u.Role == RoleAdmin
}

var (
	ErrNotFound       = internal.NewNotFoundError("Utilisateur introuvable", internal.ErrCodeUserNotFound)
	ErrEmailTaken     = internal.NewConflictError("Email already exists", internal.ErrCodeDuplicateEmail)
	ErrInvalidEmail   = internal.NewValidationError("Invalid email address", internal.ErrCodeInvalidEmail)
	ErrNoNursesFound  = internal.NewNotFoundError("Aucun infirmier trouvé", internal.ErrCodeResourceNotFound)
	ErrNoCadresFound  = internal.NewNotFoundError("Aucun cadre trouvé", internal.ErrCodeResourceNotFound)
)
