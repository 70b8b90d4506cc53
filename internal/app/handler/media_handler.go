package handler

import (
	"io"
	"net/http"

	"servicetrack/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Ограничение на размер загружаемого файла
const maxUploadSize = 50 << 20 // 50 МБ

func (h *APIHandler) readUploadedFile(c *gin.Context) ([]byte, string, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не передан")
		return nil, "", false
	}
	if fileHeader.Size > maxUploadSize {
		h.errorResponse(c, http.StatusBadRequest, "Файл слишком большой")
		return nil, "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.Error("Error opening uploaded file: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return nil, "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logrus.Error("Error reading uploaded file: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return nil, "", false
	}
	return data, fileHeader.Filename, true
}

func (h *APIHandler) checkRequestExists(c *gin.Context, id uint) bool {
	exists, err := h.Repository.RequestExists(id)
	if err != nil {
		logrus.Error("Error checking request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки заявки")
		return false
	}
	if !exists {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return false
	}
	return true
}

// UploadRequestPhoto godoc
// @Summary Загрузить фото к заявке
// @Description Загружает фото неисправного товара в хранилище и привязывает к заявке
// @Tags Вложения
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID заявки"
// @Param file formData file true "Файл изображения"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id}/photo [post]
func (h *APIHandler) UploadRequestPhoto(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}
	if !h.checkRequestExists(c, id) {
		return
	}

	data, filename, ok := h.readUploadedFile(c)
	if !ok {
		return
	}

	objectName, err := h.MinIOClient.UploadPhoto(data, filename)
	if err != nil {
		logrus.Error("Error uploading photo: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки фото")
		return
	}

	if err := h.Repository.AddRequestPhoto(id, objectName); err != nil {
		logrus.Error("Error saving photo reference: ", err)
		// файл в хранилище уже есть, убираем чтобы не копить мусор
		if delErr := h.MinIOClient.DeleteFile(objectName); delErr != nil {
			logrus.Error("Error cleaning up orphan photo: ", delErr)
		}
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения фото")
		return
	}

	h.successResponse(c, http.StatusCreated, "Фото загружено", gin.H{"object_name": objectName})
}

// UploadRequestVideo godoc
// @Summary Загрузить видео к заявке
// @Description Принимаются форматы mp4, avi, mov, wmv
// @Tags Вложения
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID заявки"
// @Param file formData file true "Видеофайл"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id}/video [post]
func (h *APIHandler) UploadRequestVideo(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}
	if !h.checkRequestExists(c, id) {
		return
	}

	data, filename, ok := h.readUploadedFile(c)
	if !ok {
		return
	}
	if !storage.IsAllowedVideo(filename) {
		h.errorResponse(c, http.StatusBadRequest, "Недопустимый формат видео, принимаются mp4, avi, mov, wmv")
		return
	}

	objectName, err := h.MinIOClient.UploadVideo(data, filename)
	if err != nil {
		logrus.Error("Error uploading video: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки видео")
		return
	}

	if err := h.Repository.AddRequestVideo(id, objectName); err != nil {
		logrus.Error("Error saving video reference: ", err)
		if delErr := h.MinIOClient.DeleteFile(objectName); delErr != nil {
			logrus.Error("Error cleaning up orphan video: ", delErr)
		}
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения видео")
		return
	}

	h.successResponse(c, http.StatusCreated, "Видео загружено", gin.H{"object_name": objectName})
}

// GetRequestMedia godoc
// @Summary Вложения заявки
// @Description Возвращает временные ссылки на фото и видео заявки
// @Tags Вложения
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id}/media [get]
func (h *APIHandler) GetRequestMedia(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}
	if !h.checkRequestExists(c, id) {
		return
	}

	photos, err := h.Repository.GetRequestPhotos(id)
	if err != nil {
		logrus.Error("Error getting photos: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения вложений")
		return
	}
	videos, err := h.Repository.GetRequestVideos(id)
	if err != nil {
		logrus.Error("Error getting videos: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения вложений")
		return
	}

	photoURLs := make([]string, 0, len(photos))
	for _, p := range photos {
		url, err := h.MinIOClient.GetFileURL(p.ObjectName)
		if err != nil {
			logrus.Error("Error generating photo URL: ", err)
			continue
		}
		photoURLs = append(photoURLs, url)
	}

	videoURLs := make([]string, 0, len(videos))
	for _, v := range videos {
		url, err := h.MinIOClient.GetFileURL(v.ObjectName)
		if err != nil {
			logrus.Error("Error generating video URL: ", err)
			continue
		}
		videoURLs = append(videoURLs, url)
	}

	h.successResponse(c, http.StatusOK, "", gin.H{
		"photos": photoURLs,
		"videos": videoURLs,
	})
}
