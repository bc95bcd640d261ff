package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/feed"
	"github.com/duvalivy/planrh/pkg/docid"
)

// FeedRepository persists one feed collection. The table is fixed at
// construction so the same implementation backs alerts, anomalies, events
// and notifications.
type FeedRepository struct {
	db    *gorm.DB
	table string
}

func NewFeedRepository(db *gorm.DB, kind feed.Kind) *FeedRepository {
	return &FeedRepository{db: db, table: kind.Table}
}

func (r *FeedRepository) Create(e *feed.Entry) error {
	if e.ID == "" {
		e.ID = docid.New()
	}
	return r.db.Table(r.table).Create(e).Error
}

func (r *FeedRepository) GetByID(id string) (*feed.Entry, error) {
	var e feed.Entry
	err := r.db.Table(r.table).Where("id = ?", id).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *FeedRepository) List() ([]feed.Entry, error) {
	var items []feed.Entry
	err := r.db.Table(r.table).Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *FeedRepository) ListByUser(userID string) ([]feed.Entry, error) {
	var items []feed.Entry
	err := r.db.Table(r.table).Where("user_id = ?", userID).Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *FeedRepository) ListByService(serviceID string) ([]feed.Entry, error) {
	var items []feed.Entry
	err := r.db.Table(r.table).Where("service_id = ?", serviceID).Order("created_at desc").Find(&items).Error
	return items, err
}

func (r *FeedRepository) ListDueFrom(date string) ([]feed.Entry, error) {
	var items []feed.Entry
	err := r.db.Table(r.table).Where("due_date >= ?", date).Order("due_date").Find(&items).Error
	return items, err
}

func (r *FeedRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Table(r.table).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *FeedRepository) UpdateStatusByUser(userID, status string) (int64, error) {
	res := r.db.Table(r.table).Where("user_id = ? AND status <> ?", userID, status).Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *FeedRepository) Delete(id string) (int64, error) {
	res := r.db.Table(r.table).Where("id = ?", id).Delete(&feed.Entry{})
	return res.RowsAffected, res.Error
}
