package postgres

import (
	"errors"

	"github.com/duvalivy/planrh/internal/user"
	"github.com/duvalivy/planrh/pkg/docid"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	if u.ID == "" {
		u.ID = docid.New()
	}
	return r.db.Create(u).Error
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) List() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(role string) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("role = ?", role).Order("last_name ASC").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByService(serviceID string) ([]*user.User, error) {
	var users []*user.User
	err := r.db.Where("service_id = ?", serviceID).Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&user.User{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *UserRepository) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&user.User{})
	return res.RowsAffected, res.Error
}

func (r *UserRepository) MatriculeExists(candidate string) (bool, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("matricule = ?", candidate).Count(&count).Error
	return count > 0, err
}
