package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/absence"
	"github.com/duvalivy/planrh/pkg/docid"
)

type AbsenceRepository struct {
	db *gorm.DB
}

func NewAbsenceRepository(db *gorm.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

func (r *AbsenceRepository) Create(a *absence.Absence) error {
	if a.ID == "" {
		a.ID = docid.New()
	}
	return r.db.Create(a).Error
}

func (r *AbsenceRepository) GetByID(id string) (*absence.Absence, error) {
	var a absence.Absence
	err := r.db.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AbsenceRepository) List() ([]absence.Absence, error) {
	var items []absence.Absence
	err := r.db.Order("start_date desc, created_at desc").Find(&items).Error
	return items, err
}

func (r *AbsenceRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&absence.Absence{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *AbsenceRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&absence.Absence{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *AbsenceRepository) MatriculeExists(candidate string) (bool, error) {
	var count int64
	err := r.db.Model(&absence.Absence{}).Where("matricule = ?", candidate).Count(&count).Error
	return count > 0, err
}
