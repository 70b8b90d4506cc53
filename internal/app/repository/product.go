package repository

import (
	"errors"

	"servicetrack/internal/app/ds"

	"gorm.io/gorm"
)

// Методы для работы с каталогом товаров

// ErrProductReferenced возвращается при попытке удалить товар,
// на который ссылаются заявки
var ErrProductReferenced = errors.New("товар используется в заявках и не может быть удален")

// GetAllProducts возвращает активные товары
func (r *Repository) GetAllProducts() ([]ds.Product, error) {
	var products []ds.Product
	err := r.db.Where("is_active = ?", true).
		Order("brand, name").
		Find(&products).Error
	return products, err
}

// SearchProductsByName ищет активные товары по названию
func (r *Repository) SearchProductsByName(name string) ([]ds.Product, error) {
	var products []ds.Product
	err := r.db.Where("name ILIKE ? AND is_active = ?", "%"+name+"%", true).
		Order("brand, name").
		Find(&products).Error
	return products, err
}

// GetProductByID возвращает товар по ID
func (r *Repository) GetProductByID(id uint) (*ds.Product, error) {
	var product ds.Product
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductExists проверяет наличие активного товара
func (r *Repository) ProductExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Product{}).Where("id = ? AND is_active = ?", id, true).Count(&count).Error
	return count > 0, err
}

// CreateProduct сохраняет новый товар
func (r *Repository) CreateProduct(product *ds.Product) error {
	return r.db.Create(product).Error
}

// UpdateProduct обновляет непустые поля товара
func (r *Repository) UpdateProduct(id uint, updates map[string]interface{}) error {
	return r.db.Model(&ds.Product{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteProduct логически удаляет товар. Товар, на который ссылается
// хотя бы одна заявка, удалить нельзя — ссылочная целостность истории.
func (r *Repository) DeleteProduct(id uint) error {
	var refs int64
	err := r.db.Model(&ds.RepairRequest{}).Where("product_id = ?", id).Count(&refs).Error
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrProductReferenced
	}

	result := r.db.Model(&ds.Product{}).Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpsertProductByName создает товар или обновляет существующий по имени
// (используется командой импорта каталога). Возвращает true, если создан.
func (r *Repository) UpsertProductByName(product *ds.Product) (bool, error) {
	var existing ds.Product
	err := r.db.Where("name = ?", product.Name).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return true, r.db.Create(product).Error
		}
		return false, err
	}

	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	product.IsActive = existing.IsActive
	return false, r.db.Save(product).Error
}
