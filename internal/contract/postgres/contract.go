package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/contract"
	"github.com/duvalivy/planrh/pkg/docid"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(c *contract.Contract) error {
	if c.ID == "" {
		c.ID = docid.New()
	}
	return r.db.Create(c).Error
}

func (r *ContractRepository) GetByID(id string) (*contract.Contract, error) {
	var c contract.Contract
	err := r.db.First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) ListByUser(userID string) ([]contract.Contract, error) {
	var items []contract.Contract
	err := r.db.Where("user_id = ?", userID).Order("start_date desc").Find(&items).Error
	return items, err
}

func (r *ContractRepository) UpdateFields(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&contract.Contract{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *ContractRepository) Delete(id string) (int64, error) {
	res := r.db.Delete(&contract.Contract{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
