package ds

// 7. Вложения к заявке. Храним только имя объекта в MinIO,
// сами файлы ядро никогда не читает.
type RepairRequestPhoto struct {
	ID              uint   `gorm:"primaryKey"`
	RepairRequestID uint   `gorm:"not null;index"`
	ObjectName      string `gorm:"type:varchar(255);not null"`

	RepairRequest RepairRequest `gorm:"foreignKey:RepairRequestID"`
}

type RepairRequestVideo struct {
	ID              uint   `gorm:"primaryKey"`
	RepairRequestID uint   `gorm:"not null;index"`
	ObjectName      string `gorm:"type:varchar(255);not null"`

	RepairRequest RepairRequest `gorm:"foreignKey:RepairRequestID"`
}
