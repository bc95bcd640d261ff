package user

import (
	"errors"
	"log/slog"
	"time"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/pkg/matricule"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(u *User) error
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	List() ([]*User, error)
	ListByRole(role string) ([]*User, error)
	ListByService(serviceID string) ([]*User, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
	MatriculeExists(candidate string) (bool, error)
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost, logger: logger}
}

// Register creates a user with a freshly issued role-prefixed matricule and a
// bcrypt credential hash. The email unique index is the authoritative
// duplicate guard; the pre-check only produces the friendlier error early.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("user validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err != nil {
		return nil, internal.NewInternalError("email lookup failed", err)
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	mat, err := matricule.Generate(matricule.UserShape(dto.Role), s.repo.MatriculeExists)
	if err != nil {
		return nil, internal.NewInternalError("matricule generation failed", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("password hashing failed", err)
	}

	now := time.Now()
	u := &User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        dto.Email,
		PhoneNumber:  dto.PhoneNumber,
		PasswordHash: string(hash),
		Role:         dto.Role,
		ServiceID:    dto.ServiceID,
		SpecialityID: dto.SpecialityID,
		Matricule:    mat,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", u.ID, "matricule", u.Matricule, "role", u.Role)
	return u, nil
}

func (s *Service) GetByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *Service) List() ([]*User, error) {
	return s.repo.List()
}

func (s *Service) ListNurses() ([]*User, error) {
	nurses, err := s.repo.ListByRole(RoleNurse)
	if err != nil {
		return nil, err
	}
	if len(nurses) == 0 {
		return nil, ErrNoNursesFound
	}
	return nurses, nil
}

func (s *Service) ListCadres() ([]*User, error) {
	cadres, err := s.repo.ListByRole(RoleCadre)
	if err != nil {
		return nil, err
	}
	if len(cadres) == 0 {
		return nil, ErrNoCadresFound
	}
	return cadres, nil
}

// Update applies a partial field merge and refreshes the update stamp.
func (s *Service) Update(id string, dto UpdateDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	fields := dto.Fields()
	fields["updated_at"] = time.Now()

	modified, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to update user", err)
	}
	if modified == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Service) ChangePassword(id string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return internal.NewInternalError("password hashing failed", err)
	}

	modified, err := s.repo.UpdateFields(id, map[string]any{
		"password_hash": string(hash),
		"updated_at":    time.Now(),
	})
	if err != nil {
		return internal.NewInternalError("failed to change password", err)
	}
	if modified == 0 {
		return ErrNotFound
	}

	s.logger.Info("password changed", "user_id", id)
	return nil
}

func (s *Service) AssignService(id string, dto AssignServiceDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	modified, err := s.repo.UpdateFields(id, map[string]any{
		"service_id": dto.ServiceID,
		"updated_at": time.Now(),
	})
	if err != nil {
		return internal.NewInternalError("failed to assign service", err)
	}
	if modified == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Service) Delete(id string) error {
	deleted, err := s.repo.Delete(id)
	if err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to delete user", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}

	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// Exists reports whether a user id resolves; availability and absence
// services use it for referential checks.
func (s *Service) Exists(id string) (bool, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

// Lookup returns display attributes for team views. An unknown id yields
// empty strings without an error.
func (s *Service) Lookup(id string) (name, matricule string, err error) {
	u, err := s.repo.GetByID(id)
	if err != nil || u == nil {
		return "", "", err
	}
	return u.FirstName + " " + u.LastName, u.Matricule, nil
}

// ListServiceUserIDs resolves a care service's member set for cross-domain
// filters.
func (s *Service) ListServiceUserIDs(serviceID string) ([]string, error) {
	members, err := s.repo.ListByService(serviceID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(members))
	for _, u := range members {
		ids = append(ids, u.ID)
	}
	return ids, nil
}
