package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/duvalivy/planrh/internal/organization"
	"github.com/duvalivy/planrh/pkg/docid"
)

type OrganizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

func (r *OrganizationRepository) CreateService(s *organization.Service) error {
	if s.ID == "" {
		s.ID = docid.New()
	}
	return r.db.Create(s).Error
}

func (r *OrganizationRepository) GetService(id string) (*organization.Service, error) {
	var svc organization.Service
	err := r.db.First(&svc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *OrganizationRepository) ServiceNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&organization.Service{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *OrganizationRepository) ServiceMatriculeExists(candidate string) (bool, error) {
	var count int64
	err := r.db.Model(&organization.Service{}).Where("matricule = ?", candidate).Count(&count).Error
	return count > 0, err
}

func (r *OrganizationRepository) ListServices() ([]organization.Service, error) {
	var items []organization.Service
	err := r.db.Order("name").Find(&items).Error
	return items, err
}

func (r *OrganizationRepository) UpdateService(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&organization.Service{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *OrganizationRepository) DeleteService(id string) (int64, error) {
	res := r.db.Delete(&organization.Service{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *OrganizationRepository) CreateSpeciality(s *organization.Speciality) error {
	if s.ID == "" {
		s.ID = docid.New()
	}
	return r.db.Create(s).Error
}

func (r *OrganizationRepository) GetSpeciality(id string) (*organization.Speciality, error) {
	var sp organization.Speciality
	err := r.db.First(&sp, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *OrganizationRepository) SpecialityNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&organization.Speciality{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *OrganizationRepository) SpecialityMatriculeExists(candidate string) (bool, error) {
	var count int64
	err := r.db.Model(&organization.Speciality{}).Where("matricule = ?", candidate).Count(&count).Error
	return count > 0, err
}

func (r *OrganizationRepository) ListSpecialities() ([]organization.Speciality, error) {
	var items []organization.Speciality
	err := r.db.Order("name").Find(&items).Error
	return items, err
}

func (r *OrganizationRepository) UpdateSpeciality(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&organization.Speciality{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *OrganizationRepository) DeleteSpeciality(id string) (int64, error) {
	res := r.db.Delete(&organization.Speciality{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *OrganizationRepository) CreatePole(p *organization.Pole) error {
	if p.ID == "" {
		p.ID = docid.New()
	}
	return r.db.Create(p).Error
}

func (r *OrganizationRepository) GetPole(id string) (*organization.Pole, error) {
	var p organization.Pole
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *OrganizationRepository) PoleNameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&organization.Pole{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (r *OrganizationRepository) PoleMatriculeExists(candidate string) (bool, error) {
	var count int64
	err := r.db.Model(&organization.Pole{}).Where("matricule = ?", candidate).Count(&count).Error
	return count > 0, err
}

func (r *OrganizationRepository) ListPoles() ([]organization.Pole, error) {
	var items []organization.Pole
	err := r.db.Order("name").Find(&items).Error
	return items, err
}

func (r *OrganizationRepository) UpdatePole(id string, fields map[string]any) (int64, error) {
	res := r.db.Model(&organization.Pole{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *OrganizationRepository) DeletePole(id string) (int64, error) {
	res := r.db.Delete(&organization.Pole{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
