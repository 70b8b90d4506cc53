package repository

import (
	"time"

	"servicetrack/internal/app/ds"
)

// Методы для работы с пакетами. Состав пакета фиксируется при создании
// (package_id в заявке ставится один раз и никогда не переназначается).

// PackageFilter задает условия выборки пакетов
type PackageFilter struct {
	Status          string
	DealerCompanyID *uint
	CreatedFrom     *time.Time // "созданные сегодня/за неделю" в списках
}

// CreatePackage сохраняет новый пакет
func (r *Repository) CreatePackage(pkg *ds.Package) error {
	return r.db.Create(pkg).Error
}

// SavePackage перезаписывает пакет
func (r *Repository) SavePackage(pkg *ds.Package) error {
	return r.db.Save(pkg).Error
}

// GetPackageByID возвращает пакет по ID
func (r *Repository) GetPackageByID(id uint) (*ds.Package, error) {
	var pkg ds.Package
	err := r.db.First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// ListPackages возвращает пакеты по фильтру, последние сверху
func (r *Repository) ListPackages(filter PackageFilter) ([]ds.Package, error) {
	query := r.db.Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.DealerCompanyID != nil {
		query = query.Where("dealer_company_id = ?", *filter.DealerCompanyID)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}

	var packages []ds.Package
	err := query.Find(&packages).Error
	return packages, err
}

// GetPackageRequests возвращает заявки, входящие в пакет
func (r *Repository) GetPackageRequests(packageID uint) ([]ds.RepairRequest, error) {
	var requests []ds.RepairRequest
	err := r.db.Preload("Product").
		Where("package_id = ?", packageID).
		Order("id ASC").
		Find(&requests).Error
	return requests, err
}

// GetPackageRequestIDs возвращает зафиксированный состав пакета
func (r *Repository) GetPackageRequestIDs(packageID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.RepairRequest{}).
		Where("package_id = ?", packageID).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

// GetPackageRequestCount возвращает количество заявок в пакете
func (r *Repository) GetPackageRequestCount(packageID uint) (int, error) {
	var count int64
	err := r.db.Model(&ds.RepairRequest{}).Where("package_id = ?", packageID).Count(&count).Error
	return int(count), err
}

// IsPackageFullyAccepted — true, если у каждой заявки пакета статус приемки
func (r *Repository) IsPackageFullyAccepted(packageID uint) (bool, error) {
	total, err := r.GetPackageRequestCount(packageID)
	if err != nil {
		return false, err
	}
	if total == 0 {
		return false, nil
	}

	var accepted int64
	err = r.db.Model(&ds.RepairRequest{}).
		Where("package_id = ? AND status = ?", packageID, ds.StatusAcceptedByDealer).
		Count(&accepted).Error
	if err != nil {
		return false, err
	}
	return int(accepted) == total, nil
}
