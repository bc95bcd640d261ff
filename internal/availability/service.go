package availability

import (
	"log/slog"

	"github.com/duvalivy/planrh/internal"
)

// Repository is the persistence contract for availability proposals.
type Repository interface {
	Create(av *Availability) error
	GetByID(id string) (*Availability, error)
	List() ([]Availability, error)
	ListByUser(userID string) ([]Availability, error)
	ListByDate(date string) ([]Availability, error)
	ListByStatus(status string) ([]Availability, error)
	// FindOverlap returns any proposal of userID on date whose interval
	// intersects [start, end), excluding excludeID (pass "" on create).
	FindOverlap(userID, date, start, end, excludeID string) (*Availability, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
}

// UserDirectory is the slice of the user domain availability needs:
// existence checks before accepting a proposal and display attributes for
// the team view.
type UserDirectory interface {
	Exists(id string) (bool, error)
	Lookup(id string) (name, matricule string, err error)
	// ListServiceUserIDs resolves the member set of a care service for the
	// team view's service filter.
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

// Create validates and records a proposal. Checks run in a fixed order
// (date, start, end, range, user, overlap) so callers always see the first
// failure of that chain. The stored status is forced to "proposed" whatever
// the payload said.
func (s *Service) Create(dto CreateDTO) (*Availability, error) {
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

	clash, err := s.repo.FindOverlap(dto.UserID, dto.Date, dto.StartTime, dto.EndTime, "")
	if err != nil {
		return nil, internal.NewInternalError("recherche de chevauchement impossible", err)
	}
	if clash != nil {
		s.logger.Warn("overlapping availability rejected",
			"user_id", dto.UserID, "date", dto.Date, "clash_id", clash.ID)
		return nil, ErrSlotConflict
	}

	av := &Availability{
		UserID:    dto.UserID,
		Date:      dto.Date,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Status:    StatusProposed,
		Comment:   dto.Comment,
	}
	if err := s.repo.Create(av); err != nil {
		return nil, internal.NewInternalError("enregistrement de la disponibilité impossible", err)
	}

	s.logger.Info("availability proposed", "availability_id", av.ID, "user_id", av.UserID, "date", av.Date)
	return av, nil
}

func (s *Service) GetByID(id string) (*Availability, error) {
	av, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture de la disponibilité impossible", err)
	}
	if av == nil {
		return nil, ErrNotFound
	}
	return av, nil
}

func (s *Service) ListByUser(userID string) ([]Availability, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, internal.NewInternalError("lecture des disponibilités impossible", err)
	}
	return items, nil
}

func (s *Service) ListByDate(date string) ([]Availability, error) {
	if !ValidDate(date) {
		return nil, ErrBadDate
	}
	items, err := s.repo.ListByDate(date)
	if err != nil {
		return nil, internal.NewInternalError("lecture des disponibilités impossible", err)
	}
	return items, nil
}

func (s *Service) ListByStatus(status string) ([]Availability, error) {
	if !ValidStatus(status) {
		return nil, ErrBadStatus
	}
	items, err := s.repo.ListByStatus(status)
	if err != nil {
		return nil, internal.NewInternalError("lecture des disponibilités impossible", err)
	}
	return items, nil
}

// Team decorates proposals with the proposing user's name and matricule for
// the cadre dashboard. serviceID narrows to the members of one care service,
// status to one lifecycle state; either may be empty. A user deleted since
// the proposal was made yields empty decoration rather than an error.
func (s *Service) Team(serviceID, status string) ([]TeamAvailability, error) {
	if status != "" && !ValidStatus(status) {
		return nil, ErrBadStatus
	}

	items, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("lecture des disponibilités impossible", err)
	}

	var members map[string]bool
	if serviceID != "" {
		ids, err := s.users.ListServiceUserIDs(serviceID)
		if err != nil {
			return nil, internal.NewInternalError("lecture des membres du service impossible", err)
		}
		members = make(map[string]bool, len(ids))
		for _, id := range ids {
			members[id] = true
		}
	}

	out := make([]TeamAvailability, 0, len(items))
	names := map[string][2]string{}
	for _, av := range items {
		if members != nil && !members[av.UserID] {
			continue
		}
		if status != "" && av.Status != status {
			continue
		}
		dec, ok := names[av.UserID]
		if !ok {
			name, mat, err := s.users.Lookup(av.UserID)
			if err != nil {
				s.logger.Warn("team view user lookup failed", "user_id", av.UserID, "error", err)
			}
			dec = [2]string{name, mat}
			names[av.UserID] = dec
		}
		out = append(out, TeamAvailability{Availability: av, UserName: dec[0], UserMatricule: dec[1]})
	}
	return out, nil
}

// Update applies a partial edit. When the window moves, the overlap check
// re-runs against the merged interval, excluding the record itself.
func (s *Service) Update(id string, dto UpdateDTO) (*Availability, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	date, start, end := current.Date, current.StartTime, current.EndTime
	if dto.Date != nil {
		date = *dto.Date
	}
	if dto.StartTime != nil {
		start = *dto.StartTime
	}
	if dto.EndTime != nil {
		end = *dto.EndTime
	}
	if end <= start {
		return nil, ErrBadRange
	}

	if dto.Date != nil || dto.StartTime != nil || dto.EndTime != nil {
		clash, err := s.repo.FindOverlap(current.UserID, date, start, end, id)
		if err != nil {
			return nil, internal.NewInternalError("recherche de chevauchement impossible", err)
		}
		if clash != nil {
			return nil, ErrSlotConflict
		}
	}

	fields := dto.Fields()
	if len(fields) == 0 {
		return current, nil
	}
	if _, err := s.repo.UpdateFields(id, fields); err != nil {
		return nil, internal.NewInternalError("mise à jour de la disponibilité impossible", err)
	}
	return s.GetByID(id)
}

// Decide records a cadre decision. Only "validated" and "rejected" are
// accepted, and the status check runs before the proposal lookup so an
// invalid status on an unknown id still reports the status error.
func (s *Service) Decide(id string, dto DecideDTO) (*Availability, error) {
	if !DecisionStatus(dto.Status) {
		return nil, ErrBadDecision
	}

	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"status": dto.Status}
	if dto.Comment != nil {
		fields["commentaire"] = *dto.Comment
	}
	if _, err := s.repo.UpdateFields(id, fields); err != nil {
		return nil, internal.NewInternalError("mise à jour du statut impossible", err)
	}

	s.logger.Info("availability decided", "availability_id", id, "user_id", current.UserID, "status", dto.Status)
	current.Status = dto.Status
	if dto.Comment != nil {
		current.Comment = dto.Comment
	}
	return current, nil
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression de la disponibilité impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
