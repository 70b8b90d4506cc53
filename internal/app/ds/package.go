package ds

import "time"

// Статусы пакета
const (
	PackageSent       = "sent"       // отправлен производителю
	PackageAccepted   = "accepted"   // принят производителем
	PackageReturned   = "returned"   // возвращен дилеру
	PackageProcessing = "processing" // в обработке у производителя
)

var PackageStatusDisplay = map[string]string{
	PackageSent:       "Отправлен производителю",
	PackageAccepted:   "Принят производителем",
	PackageReturned:   "Возвращен дилеру",
	PackageProcessing: "В обработке у производителя",
}

// IsValidPackageStatus проверяет статус пакета
func IsValidPackageStatus(status string) bool {
	_, ok := PackageStatusDisplay[status]
	return ok
}

// 2. Таблица пакетов (партия заявок, отправляемая дилером в сервисный центр).
// Состав пакета фиксируется при создании и больше не меняется.
type Package struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'sent'"`

	DealerCompanyID *uint `gorm:"index"`
	CreatedByID     *uint `gorm:"default:null"`

	ReturnedAt   *time.Time `gorm:"default:null"` // дата возврата
	ReturnReason *string    `gorm:"type:text"`    // причина возврата

	DealerCompany *DealerCompany `gorm:"foreignKey:DealerCompanyID"`
	CreatedBy     *User          `gorm:"foreignKey:CreatedByID"`
}
