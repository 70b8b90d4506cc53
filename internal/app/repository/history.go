package repository

import (
	"servicetrack/internal/app/ds"
)

// Методы для журнала истории заявок. Записи только добавляются,
// обновление и удаление не предусмотрены.

// AppendHistory добавляет запись в историю заявки
func (r *Repository) AppendHistory(entry *ds.RequestHistory) error {
	return r.db.Create(entry).Error
}

// GetRequestHistory возвращает всю историю заявки по возрастанию времени,
// включая записи без смены статуса (только с комментарием)
func (r *Repository) GetRequestHistory(requestID uint) ([]ds.RequestHistory, error) {
	var history []ds.RequestHistory
	err := r.db.Where("repair_request_id = ?", requestID).
		Order("changed_at ASC, id ASC").
		Find(&history).Error
	return history, err
}

// GetRequestTransitions возвращает только записи со сменой статуса
// (запись о создании с old_status = NULL тоже считается сменой) —
// это представление для публичного трекинга
func (r *Repository) GetRequestTransitions(requestID uint) ([]ds.RequestHistory, error) {
	var history []ds.RequestHistory
	err := r.db.Where("repair_request_id = ?", requestID).
		Where("old_status IS NULL OR old_status <> new_status").
		Order("changed_at ASC, id ASC").
		Find(&history).Error
	return history, err
}
