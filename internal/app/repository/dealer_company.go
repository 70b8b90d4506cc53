package repository

import (
	"servicetrack/internal/app/ds"
)

// Методы для справочника компаний-дилеров

func (r *Repository) GetAllCompanies() ([]ds.DealerCompany, error) {
	var companies []ds.DealerCompany
	err := r.db.Where("is_active = ?", true).Order("name").Find(&companies).Error
	return companies, err
}

func (r *Repository) GetCompanyByID(id uint) (*ds.DealerCompany, error) {
	var company ds.DealerCompany
	err := r.db.First(&company, id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *Repository) CompanyExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.DealerCompany{}).Where("id = ? AND is_active = ?", id, true).Count(&count).Error
	return count > 0, err
}

func (r *Repository) CreateCompany(company *ds.DealerCompany) error {
	return r.db.Create(company).Error
}
