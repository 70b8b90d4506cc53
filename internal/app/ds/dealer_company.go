package ds

// 5. Таблица компаний-дилеров
type DealerCompany struct {
	ID           uint    `gorm:"primaryKey"`
	Code         string  `gorm:"type:varchar(50);unique;not null"`
	Name         string  `gorm:"type:varchar(255);not null"`
	INN          *string `gorm:"type:varchar(20)"`
	FullName     *string `gorm:"type:varchar(255)"`
	RelationType *string `gorm:"type:varchar(50)"` // Покупатель / Поставщик
	Region       *string `gorm:"type:varchar(100)"`
	IsActive     bool    `gorm:"type:boolean;default:true;not null"`
}
