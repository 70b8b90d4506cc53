package ds

import "time"

// Статусы заявки
const (
	StatusAcceptedByDealer = "accepted_by_dealer" // товар принят дилером
	StatusWaiting          = "waiting"            // ожидает отправки
	StatusSentToService    = "sent_to_service"    // отправлено в сервисный центр
	StatusClosed           = "closed"             // закрыта
	StatusRejected         = "rejected"           // отклонена
)

// Статусы гарантии
const (
	WarrantyRepair      = "warranty"    // на гарантию
	WarrantyPaidRepair  = "paid_repair" // на платный ремонт
	WarrantyDiagnostics = "diagnostics" // на диагностику/ремонт
)

// Решения сервисного центра по заявке
const (
	DecisionRepair         = "repair"
	DecisionReplace        = "replace"
	DecisionRejectWarranty = "reject_warranty"
)

// Человекочитаемые названия статусов (для трекинга и списков)
var RequestStatusDisplay = map[string]string{
	StatusAcceptedByDealer: "Товар принят дилером",
	StatusWaiting:          "Ожидает",
	StatusSentToService:    "Отправлено в сервисный центр",
	StatusClosed:           "Закрыта",
	StatusRejected:         "Отклонена",
}

// IsValidRequestStatus проверяет, что статус входит в перечень
func IsValidRequestStatus(status string) bool {
	_, ok := RequestStatusDisplay[status]
	return ok
}

// IsValidWarrantyStatus проверяет статус гарантии
func IsValidWarrantyStatus(status string) bool {
	switch status {
	case WarrantyRepair, WarrantyPaidRepair, WarrantyDiagnostics:
		return true
	}
	return false
}

// 1. Таблица заявок на ремонт
type RepairRequest struct {
	ID     uint   `gorm:"primaryKey"`
	Status string `gorm:"type:varchar(20);not null;default:'accepted_by_dealer'"`

	// Поля по предметной области
	SerialNumber       string    `gorm:"type:varchar(50);not null;index"`
	ProductID          uint      `gorm:"not null"` // удаление товара с заявками запрещено
	PurchaseDate       time.Time `gorm:"type:date;not null"`
	WarrantyStatus     string    `gorm:"type:varchar(20);not null"` // warranty, paid_repair, diagnostics
	ProblemDescription string    `gorm:"type:text;not null"`

	// Данные покупателя (обязательны только при создании)
	CustomerName  *string `gorm:"type:varchar(150)"`
	CustomerPhone *string `gorm:"type:varchar(30)"`
	CustomerEmail *string `gorm:"type:varchar(100)"`

	AdditionalNotes *string   `gorm:"type:text"`
	CreatedAt       time.Time `gorm:"not null"`

	DealerCompanyID *uint `gorm:"index"`
	CreatedByID     *uint `gorm:"default:null"`

	// SentAt заполняется одновременно с привязкой к пакету
	SentAt    *time.Time `gorm:"default:null"`
	PackageID *uint      `gorm:"default:null;index"`

	// Поля диагностики/ремонта (заполняет сервисный центр)
	DiagnosticDate       *time.Time `gorm:"default:null"`
	DiagnosticEmployee   *string    `gorm:"type:varchar(150)"`
	DiagnosticConclusion *string    `gorm:"type:text"`
	Decision             *string    `gorm:"type:varchar(30)"` // repair, replace, reject_warranty
	RepairType           *string    `gorm:"type:varchar(50)"`
	RepairSubtype        *string    `gorm:"type:varchar(50)"`
	RepairCost           *float64   `gorm:"type:decimal(12,2)"`
	PartsCost            *float64   `gorm:"type:decimal(12,2)"`

	Product       Product        `gorm:"foreignKey:ProductID"`
	DealerCompany *DealerCompany `gorm:"foreignKey:DealerCompanyID"`
	CreatedBy     *User          `gorm:"foreignKey:CreatedByID"`
	Package       *Package       `gorm:"foreignKey:PackageID"`
}
