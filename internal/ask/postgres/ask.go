package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/ask"
	"github.com/duvalivy/planrh/pkg/docid"
)

type AskRepository struct {
	db *gorm.DB
}

func NewAskRepository(db *gorm.DB) *AskRepository {
	return &AskRepository{db: db}
}

func (r *AskRepository) Create(a *ask.Ask) error {
	if a.ID == "" {
		a.ID = docid.New()
	}
	return r.db.Create(a).Error
}

func (r *AskRepository) GetByID(id string) (*ask.Ask, error) {
	var a ask.Ask
	err := r.db.First(&a, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AskRepository) List() ([]ask.Ask, error) {
	var items []ask.Ask
	err := r.db.Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *AskRepository) ListByColleague(colleagueID string) ([]ask.Ask, error) {
	var items []ask.Ask
	err := r.db.Where("colleague_id = ?", colleagueID).Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *AskRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&ask.Ask{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *AskRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&ask.Ask{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
