package absence

import (
	"log/slog"
	"strings"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/pkg/matricule"
)

type Repository interface {
	Create(a *Absence) error
	GetByID(id string) (*Absence, error)
	List() ([]Absence, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
	MatriculeExists(candidate string) (bool, error)
}

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

// Create records an absence request. When the payload carries no status the
// request starts as "En cours"; a carried status only needs enum membership.
func (s *Service) Create(dto CreateDTO) (*Absence, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.users.Exists(dto.StaffID)
	if err != nil {
		return nil, internal.NewInternalError("vérification de l'utilisateur impossible", err)
	}
	if !ok {
		return nil, ErrUnknownUser
	}

	mat, err := matricule.Generate(matricule.ShapeAbsence, s.repo.MatriculeExists)
	if err != nil {
		return nil, internal.NewInternalError("génération du matricule impossible", err)
	}

	status := dto.Status
	if status == "" {
		status = StatusPending
	}

	a := &Absence{
		StaffID:       dto.StaffID,
		StartDate:     dto.StartDate,
		StartHour:     dto.StartHour,
		EndDate:       dto.EndDate,
		EndHour:       dto.EndHour,
		Reason:        dto.Reason,
		Comment:       dto.Comment,
		ServiceID:     dto.ServiceID,
		ReplacementID: dto.ReplacementID,
		AbsenceCodeID: dto.AbsenceCodeID,
		Status:        status,
		Matricule:     mat,
	}
	if err := s.repo.Create(a); err != nil {
		return nil, internal.NewInternalError("enregistrement de la demande d'absence impossible", err)
	}

	s.logger.Info("absence requested",
		"absence_id", a.ID, "staff_id", a.StaffID, "matricule", a.Matricule,
		"start_date", a.StartDate, "end_date", a.EndDate)
	return a, nil
}

func (s *Service) GetByID(id string) (*Absence, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture de la demande d'absence impossible", err)
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) List() ([]Absence, error) {
	items, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("lecture des demandes d'absence impossible", err)
	}
	return items, nil
}

func (s *Service) Update(id string, dto UpdateDTO) (*Absence, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return s.GetByID(id)
	}
	rows, err := s.repo.UpdateFields(id, fields)
	if err != nil {
		return nil, internal.NewInternalError("mise à jour de la demande d'absence impossible", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetByID(id)
}

// UpdateStatus moves a request to any enumerated status. No transition
// graph: a cadre decision may override a replacement's answer and vice
// versa.
func (s *Service) UpdateStatus(id, status string) (*Absence, error) {
	if !ValidStatus(status) {
		return nil, ErrBadStatus
	}

	rows, err := s.repo.UpdateFields(id, map[string]any{"status": status})
	if err != nil {
		return nil, internal.NewInternalError("mise à jour du statut impossible", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	s.logger.Info("absence status updated", "absence_id", id, "status", status)
	return s.GetByID(id)
}

// AssignReplacement sets the replacement unconditionally, whatever the
// current status.
func (s *Service) AssignReplacement(id, replacementID string) (*Absence, error) {
	if strings.TrimSpace(replacementID) == "" {
		return nil, ErrReplRequired
	}

	ok, err := s.users.Exists(replacementID)
	if err != nil {
		return nil, internal.NewInternalError("vérification du remplaçant impossible", err)
	}
	if !ok {
		return nil, ErrUnknownUser
	}

	rows, err := s.repo.UpdateFields(id, map[string]any{"replacement_id": replacementID})
	if err != nil {
		return nil, internal.NewInternalError("affectation du remplaçant impossible", err)
	}
	if rows == 0 {
		return nil, ErrNotFound
	}

	s.logger.Info("absence replacement assigned", "absence_id", id, "replacement_id", replacementID)
	return s.GetByID(id)
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression de la demande d'absence impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
