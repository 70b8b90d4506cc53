package repository

import (
	"servicetrack/internal/app/ds"
)

// Методы для вложений заявки (ссылки на объекты в MinIO)

func (r *Repository) AddRequestPhoto(requestID uint, objectName string) error {
	return r.db.Create(&ds.RepairRequestPhoto{
		RepairRequestID: requestID,
		ObjectName:      objectName,
	}).Error
}

func (r *Repository) AddRequestVideo(requestID uint, objectName string) error {
	return r.db.Create(&ds.RepairRequestVideo{
		RepairRequestID: requestID,
		ObjectName:      objectName,
	}).Error
}

func (r *Repository) GetRequestPhotos(requestID uint) ([]ds.RepairRequestPhoto, error) {
	var photos []ds.RepairRequestPhoto
	err := r.db.Where("repair_request_id = ?", requestID).Order("id ASC").Find(&photos).Error
	return photos, err
}

func (r *Repository) GetRequestVideos(requestID uint) ([]ds.RepairRequestVideo, error) {
	var videos []ds.RepairRequestVideo
	err := r.db.Where("repair_request_id = ?", requestID).Order("id ASC").Find(&videos).Error
	return videos, err
}
