package ds

import "servicetrack/internal/app/role"

// 6. Таблица пользователей
type User struct {
	ID              uint      `gorm:"primaryKey"`
	Login           string    `gorm:"type:varchar(50);unique;not null"`
	Password        string    `gorm:"type:varchar(255);not null"`
	Role            role.Role `gorm:"type:int;default:0;not null"` // дилер или сервисный центр
	Email           string    `gorm:"type:varchar(100)"`
	FullName        string    `gorm:"type:varchar(100)"`
	DealerCompanyID *uint     `gorm:"default:null"`

	DealerCompany *DealerCompany `gorm:"foreignKey:DealerCompanyID"`
}
