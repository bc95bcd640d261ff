package contract

import (
	"log/slog"

	"github.com/duvalivy/planrh/internal"
)

type Repository interface {
	Create(c *Contract) error
	GetByID(id string) (*Contract, error)
	ListByUser(userID string) ([]Contract, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
}

// UserDirectory reports whether a user id refers to a registered user.
type UserDirectory interface {
	Exists(id string) (bool, error)
}

type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

func (s *Service) Create(dto CreateDTO) (*Contract, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.users.Exists(dto.UserID)
	if err != nil {
		return nil, internal.NewInternalError("vérification de l'utilisateur impossible", err)
	}
	if !ok {
		return nil, ErrUnknownUser
	}

	c := &Contract{
		UserID:        dto.UserID,
		StartDate:     dto.StartDate,
		Type:          dto.Type,
		WeeklyHours:   dto.WeeklyHours,
		DailyHours:    dto.DailyHours,
		WorkingPeriod: dto.WorkingPeriod,
		WorkDays:      dto.WorkDays,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, internal.NewInternalError("enregistrement du contrat impossible", err)
	}

	s.logger.Info("contract created", "contract_id", c.ID, "user_id", c.UserID, "type", c.Type)
	return c, nil
}

func (s *Service) GetByID(id string) (*Contract, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture du contrat impossible", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) ListByUser(userID string) ([]Contract, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("lecture des contrats impossible", err)
	}
	return items, nil
}

func (s *Service) Update(id string, dto UpdateDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return nil
	}
	rows, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		return internal.NewInternalError("mise à jour du contrat impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression du contrat impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
