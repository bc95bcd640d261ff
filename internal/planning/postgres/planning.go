package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/planning"
	"github.com/duvalivy/planrh/pkg/docid"
)

type PlanningRepository struct {
	db *gorm.DB
}

func NewPlanningRepository(db *gorm.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

func (r *PlanningRepository) Create(p *planning.Planning) error {
	if p.ID == "" {
		p.ID = docid.New()
	}
	return r.db.Create(p).Error
}

func (r *PlanningRepository) GetByID(id string) (*planning.Planning, error) {
	var p planning.Planning
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanningRepository) List(userIDs []string, date, activityCode, userID string) ([]planning.Planning, error) {
	q := r.db.Order("date, time_range")
	if len(userIDs) > 0 {
		q = q.Where("user_id IN ?", userIDs)
	}
	if userID != "" {
		q = q.Where("user_id = ?", userID)
	}
	if date != "" {
		q = q.Where("date = ?", date)
	}
	if activityCode != "" {
		q = q.Where("activity_code = ?", activityCode)
	}

	var items []planning.Planning
	err := q.Find(&items).Error
	return items, err
}

func (r *PlanningRepository) SlotExists(userID, date, timeRange string) (bool, error) {
	var count int64
	err := r.db.Model(&planning.Planning{}).
		Where("user_id = ? AND date = ? AND time_range = ?", userID, date, timeRange).
		Count(&count).Error
	return count > 0, err
}

func (r *PlanningRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&planning.Planning{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *PlanningRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&planning.Planning{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
