package repository

import (
	"errors"
	"time"

	"servicetrack/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с заявками на ремонт

// RequestFilter задает условия выборки заявок
type RequestFilter struct {
	Status          string     // фильтр по одному статусу
	Statuses        []string   // либо по набору статусов
	DealerCompanyID *uint      // nil — без ограничения по компании
	DateFrom        *time.Time // по created_at
	DateTo          *time.Time
}

// CreateRequest сохраняет новую заявку
func (r *Repository) CreateRequest(request *ds.RepairRequest) error {
	return r.db.Create(request).Error
}

// SaveRequest перезаписывает заявку целиком
func (r *Repository) SaveRequest(request *ds.RepairRequest) error {
	return r.db.Save(request).Error
}

// GetRequestByID возвращает заявку по ID
func (r *Repository) GetRequestByID(id uint) (*ds.RepairRequest, error) {
	var request ds.RepairRequest
	err := r.db.Preload("Product").First(&request, id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// GetRequestBySerial ищет заявку по серийному номеру (точное совпадение
// без учета регистра). Если заявок несколько — берем последнюю.
func (r *Repository) GetRequestBySerial(serial string) (*ds.RepairRequest, error) {
	var request ds.RepairRequest
	err := r.db.Preload("Product").
		Where("LOWER(serial_number) = LOWER(?)", serial).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// ListRequests возвращает заявки по фильтру, последние сверху
func (r *Repository) ListRequests(filter RequestFilter) ([]ds.RepairRequest, error) {
	query := r.db.Preload("Product").Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	} else if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DealerCompanyID != nil {
		query = query.Where("dealer_company_id = ?", *filter.DealerCompanyID)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	var requests []ds.RepairRequest
	err := query.Find(&requests).Error
	return requests, err
}

// GetRequestsByIDs загружает заявки по списку ID
func (r *Repository) GetRequestsByIDs(ids []uint) ([]ds.RepairRequest, error) {
	var requests []ds.RepairRequest
	err := r.db.Where("id IN ?", ids).Find(&requests).Error
	return requests, err
}

// RequestExists проверяет наличие заявки
func (r *Repository) RequestExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.RepairRequest{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// IsNotFound сообщает, что запись не найдена в базе
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
