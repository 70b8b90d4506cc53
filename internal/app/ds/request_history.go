package ds

import "time"

// 3. Таблица истории заявки. Записи только добавляются: последовательность
// new_status в порядке changed_at восстанавливает весь жизненный цикл заявки.
type RequestHistory struct {
	ID              uint      `gorm:"primaryKey"`
	RepairRequestID uint      `gorm:"not null;index"`
	ChangedByID     *uint     `gorm:"default:null"`
	OldStatus       *string   `gorm:"type:varchar(50)"` // NULL только у записи о создании
	NewStatus       string    `gorm:"type:varchar(50);not null"`
	Comment         *string   `gorm:"type:text"`
	ChangedAt       time.Time `gorm:"not null;autoCreateTime"`

	RepairRequest RepairRequest `gorm:"foreignKey:RepairRequestID"`
	ChangedBy     *User         `gorm:"foreignKey:ChangedByID"`
}
