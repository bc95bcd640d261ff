package ask

import (
	"log/slog"

	"github.com/duvalivy/planrh/internal"
)

type Repository interface {
	Create(a *Ask) error
	GetByID(id string) (*Ask, error)
	List() ([]Ask, error)
	ListByColleague(colleagueID string) ([]Ask, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateDTO) (*Ask, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := &Ask{
		AbsenceID:   dto.AbsenceID,
		ColleagueID: dto.ColleagueID,
		Status:      dto.Status,
	}
	if err := s.repo.Create(a); err != nil {
		return nil, internal.NewInternalError("enregistrement de la demande impossible", err)
	}

	s.logger.Info("ask created", "ask_id", a.ID, "absence_id", a.AbsenceID, "colleague_id", a.ColleagueID)
	return a, nil
}

func (s *Service) GetByID(id string) (*Ask, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture de la demande impossible", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) List() ([]Ask, error) {
	items, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("lecture des demandes impossible", err)
	}
	return items, nil
}

func (s *Service) ListByColleague(colleagueID string) ([]Ask, error) {
	items, err := s.repo.ListByColleague(colleagueID)
	if err != nil {
		return nil, internal.NewInternalError("lecture des demandes impossible", err)
	}
	return items, nil
}

func (s *Service) Update(id string, dto UpdateDTO) (*Ask, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	rows, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		return nil, internal.NewInternalError("mise à jour de la demande impossible", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression de la demande impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
