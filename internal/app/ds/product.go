package ds

import (
	"strings"
	"time"
)

// Категории товаров
const (
	CategorySubwoofer = "subwoofer"
	CategoryAmplifier = "amplifier"
	CategorySpeaker   = "speaker"
	CategoryComponent = "component"
	CategoryCoaxial   = "coaxial"
	CategoryMidrange  = "midrange"
	CategoryTweeter   = "tweeter"
	CategoryAccessory = "accessory"
)

var ProductCategoryDisplay = map[string]string{
	CategorySubwoofer: "Сабвуфер",
	CategoryAmplifier: "Усилитель",
	CategorySpeaker:   "Динамик",
	CategoryComponent: "Компонентная акустика",
	CategoryCoaxial:   "Коаксиальная акустика",
	CategoryMidrange:  "Мидрейндж",
	CategoryTweeter:   "Твитер",
	CategoryAccessory: "Аксессуар",
}

// IsValidProductCategory проверяет категорию товара
func IsValidProductCategory(category string) bool {
	_, ok := ProductCategoryDisplay[category]
	return ok
}

// 4. Таблица товаров - ТОЛЬКО справочная информация
type Product struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(200);unique;not null"` // название модели
	Brand       *string   `gorm:"type:varchar(100)"`
	Series      *string   `gorm:"type:varchar(100)"`
	Category    string    `gorm:"type:varchar(50);not null;default:'subwoofer'"`
	Size        *string   `gorm:"type:varchar(50)"`
	PowerRMS    *string   `gorm:"type:varchar(50)"`
	PowerMax    *string   `gorm:"type:varchar(50)"`
	ExternalID  *string   `gorm:"type:varchar(50)"`
	ExternalURL *string   `gorm:"type:varchar(255)"`
	IsActive    bool      `gorm:"type:boolean;default:true;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// DisplayName собирает отображаемое имя для выпадающих списков
func (p Product) DisplayName() string {
	parts := make([]string, 0, 4)
	if p.Brand != nil && *p.Brand != "" {
		parts = append(parts, *p.Brand)
	}
	parts = append(parts, p.Name)
	if p.Size != nil && *p.Size != "" {
		parts = append(parts, "("+*p.Size+")")
	}
	if p.PowerRMS != nil && *p.PowerRMS != "" {
		parts = append(parts, *p.PowerRMS+" RMS")
	}
	return strings.Join(parts, " ")
}
