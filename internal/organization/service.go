package organization

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/pkg/matricule"
	"github.com/duvalivy/planrh/pkg/spreadsheet"
)

// Repository is the persistence contract for the three referential tables.
type Repository interface {
	CreateService(s *Service) error
	GetService(id string) (*Service, error)
	ServiceNameExists(name string) (bool, error)
	ServiceMatriculeExists(candidate string) (bool, error)
	ListServices() ([]Service, error)
	UpdateService(id string, fields map[string]any) (int64, error)
	DeleteService(id string) (int64, error)

	CreateSpeciality(s *Speciality) error
	GetSpeciality(id string) (*Speciality, error)
	SpecialityNameExists(name string) (bool, error)
	SpecialityMatriculeExists(candidate string) (bool, error)
	ListSpecialities() ([]Speciality, error)
	UpdateSpeciality(id string, fields map[string]any) (int64, error)
	DeleteSpeciality(id string) (int64, error)

	CreatePole(p *Pole) error
	GetPole(id string) (*Pole, error)
	PoleNameExists(name string) (bool, error)
	PoleMatriculeExists(candidate string) (bool, error)
	ListPoles() ([]Pole, error)
	UpdatePole(id string, fields map[string]any) (int64, error)
	DeletePole(id string) (int64, error)
}

// Manager implements the organization referential logic. The entity carried
// by this package is named Service, so the logic type takes a different name.
type Manager struct {
	repo   Repository
	logger *slog.Logger
}

func NewManager(repo Repository, logger *slog.Logger) *Manager {
	return &Manager{repo: repo, logger: logger}
}

// CreateService issues a SERV matricule and inserts. The name pre-check is a
// fast path; the unique index is what actually guarantees uniqueness, so a
// constraint violation from the insert maps to the same duplicate error.
func (m *Manager) CreateService(dto ServiceDTO) (*Service, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := m.repo.ServiceNameExists(dto.Name)
	if err != nil {
		return nil, internal.NewInternalError("vérification du nom impossible", err)
	}
	if taken {
		return nil, ErrServiceNameTaken
	}

	mat, err := matricule.Generate(matricule.ShapeService, m.repo.ServiceMatriculeExists)
	if err != nil {
		return nil, internal.NewInternalError("génération du matricule impossible", err)
	}

	svc := &Service{
		Name:        dto.Name,
		Description: dto.Description,
		HeadID:      dto.HeadID,
		Matricule:   mat,
	}
	if err := m.repo.CreateService(svc); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrServiceNameTaken
		}
		return nil, internal.NewInternalError("enregistrement du service impossible", err)
	}

	m.logger.Info("service created", "service_id", svc.ID, "matricule", svc.Matricule)
	return svc, nil
}

func (m *Manager) GetService(id string) (*Service, error) {
	svc, err := m.repo.GetService(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture du service impossible", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

func (m *Manager) ListServices() ([]Service, error) {
	items, err := m.repo.ListServices()
	if err != nil {
		return nil, internal.NewInternalError("lecture des services impossible", err)
	}
	return items, nil
}

func (m *Manager) UpdateService(id string, dto ServiceUpdateDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return nil
	}
	rows, err := m.repo.UpdateService(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrServiceNameTaken
		}
		return internal.NewInternalError("mise à jour du service impossible", err)
	}
	if rows == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (m *Manager) DeleteService(id string) error {
	rows, err := m.repo.DeleteService(id)
	if err != nil {
		return internal.NewInternalError("suppression du service impossible", err)
	}
	if rows == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (m *Manager) CreateSpeciality(dto SpecialityDTO) (*Speciality, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := m.repo.SpecialityNameExists(dto.Name)
	if err != nil {
		return nil, internal.NewInternalError("vérification du nom impossible", err)
	}
	if taken {
		return nil, ErrSpecialityNameTaken
	}

	mat, err := matricule.Generate(matricule.ShapeSpeciality, m.repo.SpecialityMatriculeExists)
	if err != nil {
		return nil, internal.NewInternalError("génération du matricule impossible", err)
	}

	sp := &Speciality{
		Name:        dto.Name,
		Description: dto.Description,
		Matricule:   mat,
	}
	if err := m.repo.CreateSpeciality(sp); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSpecialityNameTaken
		}
		return nil, internal.NewInternalError("enregistrement de la spécialité impossible", err)
	}

	m.logger.Info("speciality created", "speciality_id", sp.ID, "matricule", sp.Matricule)
	return sp, nil
}

func (m *Manager) GetSpeciality(id string) (*Speciality, error) {
	sp, err := m.repo.GetSpeciality(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture de la spécialité impossible", err)
	}
	if sp == nil {
		return nil, ErrSpecialityNotFound
	}
	return sp, nil
}

func (m *Manager) ListSpecialities() ([]Speciality, error) {
	items, err := m.repo.ListSpecialities()
	if err != nil {
		return nil, internal.NewInternalError("lecture des spécialités impossible", err)
	}
	return items, nil
}

func (m *Manager) UpdateSpeciality(id string, dto SpecialityUpdateDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return nil
	}
	rows, err := m.repo.UpdateSpeciality(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSpecialityNameTaken
		}
		return internal.NewInternalError("mise à jour de la spécialité impossible", err)
	}
	if rows == 0 {
		return ErrSpecialityNotFound
	}
	return nil
}

func (m *Manager) DeleteSpeciality(id string) error {
	rows, err := m.repo.DeleteSpeciality(id)
	if err != nil {
		return internal.NewInternalError("suppression de la spécialité impossible", err)
	}
	if rows == 0 {
		return ErrSpecialityNotFound
	}
	return nil
}

func (m *Manager) CreatePole(dto PoleDTO) (*Pole, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	taken, err := m.repo.PoleNameExists(dto.Name)
	if err != nil {
		return nil, internal.NewInternalError("vérification du nom impossible", err)
	}
	if taken {
		return nil, ErrPoleNameTaken
	}

	mat, err := matricule.Generate(matricule.ShapePole, m.repo.PoleMatriculeExists)
	if err != nil {
		return nil, internal.NewInternalError("génération du matricule impossible", err)
	}

	p := &Pole{
		Name:          dto.Name,
		Description:   dto.Description,
		HeadID:        dto.HeadID,
		SpecialityIDs: dto.SpecialityIDs,
		Matricule:     mat,
	}
	if err := m.repo.CreatePole(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPoleNameTaken
		}
		return nil, internal.NewInternalError("enregistrement du pôle impossible", err)
	}

	m.logger.Info("pole created", "pole_id", p.ID, "matricule", p.Matricule)
	return p, nil
}

func (m *Manager) GetPole(id string) (*Pole, error) {
	p, err := m.repo.GetPole(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture du pôle impossible", err)
	}
	if p == nil {
		return nil, ErrPoleNotFound
	}
	return p, nil
}

func (m *Manager) ListPoles() ([]Pole, error) {
	items, err := m.repo.ListPoles()
	if err != nil {
		return nil, internal.NewInternalError("lecture des pôles impossible", err)
	}
	return items, nil
}

func (m *Manager) UpdatePole(id string, dto PoleUpdateDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}
	fields := dto.Fields()
	if len(fields) == 0 {
		return nil
	}
	rows, err := m.repo.UpdatePole(id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPoleNameTaken
		}
		return internal.NewInternalError("mise à jour du pôle impossible", err)
	}
	if rows == 0 {
		return ErrPoleNotFound
	}
	return nil
}

func (m *Manager) DeletePole(id string) error {
	rows, err := m.repo.DeletePole(id)
	if err != nil {
		return internal.NewInternalError("suppression du pôle impossible", err)
	}
	if rows == 0 {
		return ErrPoleNotFound
	}
	return nil
}

// UploadSpecialities ingests a spreadsheet whose header row carries at least
// a "name" column (optional "description"). Rows are committed one by one:
// a bad row is reported and skipped, earlier inserts stay.
func (m *Manager) UploadSpecialities(file io.Reader) (*spreadsheet.Report, error) {
	rows, err := spreadsheet.Rows(file)
	if err != nil {
		return nil, internal.NewValidationError(fmt.Sprintf("fichier illisible: %v", err), internal.ErrCodeValidationFailed)
	}

	report := &spreadsheet.Report{BatchID: uuid.NewString(), Errors: []spreadsheet.RowError{}}
	for i, row := range rows {
		rowNum := i + 2 // header is row 1
		dto := SpecialityDTO{Name: row["name"]}
		if desc := row["description"]; desc != "" {
			dto.Description = &desc
		}
		if _, err := m.CreateSpeciality(dto); err != nil {
			report.Errors = append(report.Errors, spreadsheet.RowError{Row: rowNum, Detail: errDetail(err)})
			continue
		}
		report.Inserted++
	}

	m.logger.Info("speciality upload processed",
		"batch_id", report.BatchID, "inserted", report.Inserted, "rejected", len(report.Errors))
	return report, nil
}

// UploadPoles ingests poles the same way; columns: name, description, head_id.
func (m *Manager) UploadPoles(file io.Reader) (*spreadsheet.Report, error) {
	rows, err := spreadsheet.Rows(file)
	if err != nil {
		return nil, internal.NewValidationError(fmt.Sprintf("fichier illisible: %v", err), internal.ErrCodeValidationFailed)
	}

	report := &spreadsheet.Report{BatchID: uuid.NewString(), Errors: []spreadsheet.RowError{}}
	for i, row := range rows {
		rowNum := i + 2
		dto := PoleDTO{Name: row["name"]}
		if desc := row["description"]; desc != "" {
			dto.Description = &desc
		}
		if head := row["head_id"]; head != "" {
			dto.HeadID = &head
		}
		if _, err := m.CreatePole(dto); err != nil {
			report.Errors = append(report.Errors, spreadsheet.RowError{Row: rowNum, Detail: errDetail(err)})
			continue
		}
		report.Inserted++
	}

	m.logger.Info("pole upload processed",
		"batch_id", report.BatchID, "inserted", report.Inserted, "rejected", len(report.Errors))
	return report, nil
}

func errDetail(err error) string {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
