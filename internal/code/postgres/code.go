package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/code"
	"github.com/duvalivy/planrh/pkg/docid"
)

type CodeRepository struct {
	db *gorm.DB
}

func NewCodeRepository(db *gorm.DB) *CodeRepository {
	return &CodeRepository{db: db}
}

func (r *CodeRepository) Create(c *code.Code) error {
	if c.ID == "" {
		c.ID = docid.New()
	}
	return r.db.Create(c).Error
}

func (r *CodeRepository) GetByID(id string) (*code.Code, error) {
	var c code.Code
	err := r.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CodeRepository) List() ([]code.Code, error) {
	var items []code.Code
	err := r.db.Order("name").Find(&items).Error
	return items, err
}

func (r *CodeRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&code.Code{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *CodeRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&code.Code{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *CodeRepository) MatriculeExists(candidate string) (bool, error) {
	var count int64
	err := r.db.Model(&code.Code{}).Where("matricule = ?", candidate).Count(&count).Error
	return count > 0, err
}
