package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/availability"
	"github.com/duvalivy/planrh/pkg/docid"
)

type AvailabilityRepository struct {
	db *gorm.DB
}

func NewAvailabilityRepository(db *gorm.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

func (r *AvailabilityRepository) Create(av *availability.Availability) error {
	if av.ID == "" {
		av.ID = docid.New()
	}
	return r.db.Create(av).Error
}

func (r *AvailabilityRepository) GetByID(id string) (*availability.Availability, error) {
	var av availability.Availability
	err := r.db.First(&av, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *AvailabilityRepository) List() ([]availability.Availability, error) {
	var items []availability.Availability
	err := r.db.Order("date, start_time").Find(&items).Error
	return items, err
}

func (r *AvailabilityRepository) ListByUser(userID string) ([]availability.Availability, error) {
	var items []availability.Availability
	err := r.db.Where("user_id = ?", userID).Order("date, start_time").Find(&items).Error
	return items, err
}

func (r *AvailabilityRepository) ListByDate(date string) ([]availability.Availability, error) {
	var items []availability.Availability
	err := r.db.Where("date = ?", date).Order("start_time").Find(&items).Error
	return items, err
}

func (r *AvailabilityRepository) ListByStatus(status string) ([]availability.Availability, error) {
	var items []availability.Availability
	err := r.db.Where("status = ?", status).Order("date, start_time").Find(&items).Error
	return items, err
}

// FindOverlap implements the half-open interval intersection test in SQL:
// existing.start < new.end AND existing.end > new.start. HH:MM strings are
// zero padded so string comparison is safe.
func (r *AvailabilityRepository) FindOverlap(userID, date, start, end, excludeID string) (*availability.Availability, error) {
	q := r.db.
		Where("user_id = ? AND date = ?", userID, date).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var av availability.Availability
	err := q.First(&av).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &av, nil
}

func (r *AvailabilityRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&availability.Availability{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *AvailabilityRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&availability.Availability{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
