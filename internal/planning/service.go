package planning

import (
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/timefmt"
)

type Repository interface {
	Create(p *Planning) error
	GetByID(id string) (*Planning, error)
	// List applies filter fields that are set; ServiceID is resolved to a
	// user-id set by the service before reaching the repository.
	List(userIDs []string, date, activityCode, userID string) ([]Planning, error)
	SlotExists(userID, date, timeRange string) (bool, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
}

type UserDirectory interface {
	Exists(id string) (bool, error)
	ListServiceUserIDs(serviceID string) ([]string, error)
}

type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{repo: repo, users: users, logger: logger}
}

// Create stores an assignment. The slot pre-check is only a fast path; the
// composite unique index on (user_id, date, time_range) is the authoritative
// duplicate signal, so a constraint violation from the insert maps to the
// same duplicate error.
func (s *Service) Create(dto CreateDTO) (*Planning, error) {
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

	taken, err := s.repo.SlotExists(dto.UserID, dto.Date, dto.TimeRange)
	if err != nil {
		return nil, internal.NewInternalError("vérification du créneau impossible", err)
	}
	if taken {
		return nil, ErrDuplicateSlot
	}

	p := &Planning{
		UserID:       dto.UserID,
		Date:         dto.Date,
		TimeRange:    dto.TimeRange,
		ActivityCode: dto.ActivityCode,
		ValidatedBy:  dto.ValidatedBy,
		Comment:      dto.Comment,
	}
	if err := s.repo.Create(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlot
		}
		return nil, internal.NewInternalError("enregistrement du planning impossible", err)
	}

	s.logger.Info("planning created",
		"planning_id", p.ID, "user_id", p.UserID, "date", p.Date, "time_range", p.TimeRange)
	return p, nil
}

func (s *Service) GetByID(id string) (*Planning, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture du planning impossible", err)
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// List applies the optional filters. A service filter resolves the service's
// member set first; an empty member set short-circuits to an empty result.
func (s *Service) List(f Filter) ([]Planning, error) {
	if f.Date != "" && !timefmt.ValidDate(f.Date) {
		return nil, ErrBadDate
	}

	var userIDs []string
	if f.ServiceID != "" {
		ids, err := s.users.ListServiceUserIDs(f.ServiceID)
		if err != nil {
			return nil, internal.NewInternalError("lecture des membres du service impossible", err)
		}
		if len(ids) == 0 {
			return []Planning{}, nil
		}
		userIDs = ids
	}

	items, err := s.repo.List(userIDs, f.Date, f.ActivityCode, f.UserID)
	if err != nil {
		return nil, internal.NewInternalError("lecture des plannings impossible", err)
	}
	return items, nil
}

func (s *Service) Update(id string, dto UpdateDTO) (*Planning, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	rows, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlot
		}
		return nil, internal.NewInternalError("mise à jour du planning impossible", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression du planning impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
