package feed

import (
	"log/slog"
	"time"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/internal/timefmt"
)

// Repository persists one feed collection; the implementation is bound to a
// table at construction.
type Repository interface {
	Create(e *Entry) error
	GetByID(id string) (*Entry, error)
	List() ([]Entry, error)
	ListByUser(userID string) ([]Entry, error)
	ListByService(serviceID string) ([]Entry, error)
	// ListDueFrom returns entries whose due_date is on or after the given
	// date, soonest first.
	ListDueFrom(date string) ([]Entry, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	// UpdateStatusByUser moves every entry of a user that is not already in
	// the given status to it, returning the number of rows touched.
	UpdateStatusByUser(userID, status string) (int64, error)
	Delete(id string) (int64, error)
}

// Service carries one collection's lifecycle. The same type serves all four
// collections, each instance bound to its Kind.
type Service struct {
	kind   Kind
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

func NewService(kind Kind, repo Repository, logger *slog.Logger) *Service {
	return &Service{kind: kind, repo: repo, logger: logger, now: time.Now}
}

func (s *Service) Kind() Kind {
	return s.kind
}

func (s *Service) Create(dto CreateDTO) (*Entry, error) {
	if err := dto.Validate(s.kind); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = s.kind.DefaultStatus
	}

	e := &Entry{
		Type:      dto.Type,
		Severity:  dto.Severity,
		Status:    status,
		Title:     dto.Title,
		Message:   dto.Message,
		UserID:    dto.UserID,
		ServiceID: dto.ServiceID,
	}
	if s.kind.HasDueDate {
		e.DueDate = dto.DueDate
	}
	if err := s.repo.Create(e); err != nil {
		return nil, internal.NewInternalError("enregistrement de l'entrée impossible", err)
	}

	s.logger.Info("feed entry created", "collection", s.kind.Table, "entry_id", e.ID, "type", e.Type)
	return e, nil
}

func (s *Service) GetByID(id string) (*Entry, error) {
	e, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture de l'entrée impossible", err)
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) List() ([]Entry, error) {
	items, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("lecture des entrées impossible", err)
	}
	return items, nil
}

func (s *Service) ListByUser(userID string) ([]Entry, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("lecture des entrées impossible", err)
	}
	return items, nil
}

func (s *Service) ListByService(serviceID string) ([]Entry, error) {
	items, err := s.repo.ListByService(serviceID)
	if err != nil {
		return nil, internal.NewInternalError("lecture des entrées impossible", err)
	}
	return items, nil
}

// Upcoming returns entries due today or later, soonest first. Only wired for
// the events collection.
func (s *Service) Upcoming() ([]Entry, error) {
	today := s.now().Format(timefmt.DateLayout)
	items, err := s.repo.ListDueFrom(today)
	if err != nil {
		return nil, internal.NewInternalError("lecture des entrées impossible", err)
	}
	return items, nil
}

// MarkAllForUser flips every entry of a user to the collection's read-all
// status. Only wired for collections that define one.
func (s *Service) MarkAllForUser(userID string) (int64, error) {
	rows, err := s.repo.UpdateStatusByUser(userID, s.kind.ReadAllStatus)
	if err != nil {
		return 0, internal.NewInternalError("mise à jour des entrées impossible", err)
	}
	s.logger.Info("feed entries marked", "collection", s.kind.Table, "user_id", userID, "count", rows)
	return rows, nil
}

func (s *Service) Update(id string, dto UpdateDTO) (*Entry, error) {
	if err := dto.Validate(s.kind); err != nil {
		return nil, err
	}
	fields := dto.Fields()
	if !s.kind.HasDueDate {
		delete(fields, "due_date")
	}
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	rows, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		return nil, internal.NewInternalError("mise à jour de l'entrée impossible", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression de l'entrée impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
