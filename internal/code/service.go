package code

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/duvalivy/planrh/internal"
	"github.com/duvalivy/planrh/pkg/matricule"
	"github.com/duvalivy/planrh/pkg/spreadsheet"
)

type Repository interface {
	Create(c *Code) error
	GetByID(id string) (*Code, error)
	List() ([]Code, error)
	UpdateFields(id string, fields map[string]any) (int64, error)
	Delete(id string) (int64, error)
	MatriculeExists(candidate string) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto CreateDTO) (*Code, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	mat, err := matricule.Generate(matricule.ShapeCode, s.repo.MatriculeExists)
	if err != nil {
		return nil, internal.NewInternalError("génération du matricule impossible", err)
	}

	c := &Code{
		Name:      dto.Name,
		ShortName: dto.ShortName,
		Grouping:  dto.Grouping,
		Indicator: dto.Indicator,
		BeginDate: dto.BeginDate,
		EndDate:   dto.EndDate,
		Matricule: mat,
	}
	if err := s.repo.Create(c); err != nil {
		return nil, internal.NewInternalError("enregistrement du code impossible", err)
	}

	s.logger.Info("code created", "code_id", c.ID, "matricule", c.Matricule)
	return c, nil
}

func (s *Service) GetByID(id string) (*Code, error) {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("lecture du code impossible", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) List() ([]Code, error) {
	items, err := s.repo.List()
	if err != nil {
		return nil, internal.NewInternalError("lecture des codes impossible", err)
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
		return internal.NewInternalError("mise à jour du code impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(id string) error {
	rows, err := s.repo.Delete(id)
	if err != nil {
		return internal.NewInternalError("suppression du code impossible", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Upload ingests a spreadsheet of codes; expected columns: name, short_name,
// grouping, indicator, begin_date, end_date. Committed rows stay committed,
// failures are reported per row.
func (s *Service) Upload(file io.Reader) (*spreadsheet.Report, error) {
	rows, err := spreadsheet.Rows(file)
	if err != nil {
		return nil, internal.NewValidationError(fmt.Sprintf("fichier illisible: %v", err), internal.ErrCodeValidationFailed)
	}

	report := &spreadsheet.Report{BatchID: uuid.NewString(), Errors: []spreadsheet.RowError{}}
	for i, row := range rows {
		rowNum := i + 2
		dto := CreateDTO{
			Name:      row["name"],
			ShortName: row["short_name"],
			Grouping:  row["grouping"],
			Indicator: row["indicator"],
		}
		if v := row["begin_date"]; v != "" {
			dto.BeginDate = &v
		}
		if v := row["end_date"]; v != "" {
			dto.EndDate = &v
		}
		if _, err := s.Create(dto); err != nil {
			report.Errors = append(report.Errors, spreadsheet.RowError{Row: rowNum, Detail: errDetail(err)})
			continue
		}
		report.Inserted++
	}

	s.logger.Info("code upload processed",
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
