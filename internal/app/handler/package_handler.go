package handler

import (
	"net/http"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dto"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BatchSendRequests godoc
// @Summary Отправить заявки в сервисный центр
// @Description Формирует пакет из выбранных заявок и переводит их в статус "Ожидание отправки в СЦ выполнено". Операция атомарна
// @Tags Пакеты
// @Accept json
// @Produce json
// @Param request body dto.BatchSendRequest true "ID заявок"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/packages/send [post]
func (h *APIHandler) BatchSendRequests(c *gin.Context) {
	var req dto.BatchSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	pkg, sent, err := h.Engine.BatchAndSend(req.RequestIDs, actor)
	if err != nil {
		h.workflowError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, "Заявки отправлены в сервисный центр", dto.BatchSendResponse{
		PackageID: pkg.ID,
		SentCount: sent,
	})
}

// GetPackages godoc
// @Summary Список пакетов
// @Description Возвращает пакеты с фильтрами. Дилер видит только пакеты своей компании
// @Tags Пакеты
// @Produce json
// @Param status query string false "Фильтр по статусу пакета"
// @Param created_from query string false "Созданные начиная с даты (ГГГГ-ММ-ДД)"
// @Success 200 {object} dto.PackageListResponse
// @Security BearerAuth
// @Router /api/packages [get]
func (h *APIHandler) GetPackages(c *gin.Context) {
	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	filter := repository.PackageFilter{
		Status: c.Query("status"),
	}
	if filter.Status != "" && !ds.IsValidPackageStatus(filter.Status) {
		h.errorResponse(c, http.StatusBadRequest, "Неверный статус пакета")
		return
	}
	if from := c.Query("created_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат created_from")
			return
		}
		filter.CreatedFrom = &t
	}
	if actor.Role == role.Dealer {
		if actor.CompanyID == nil {
			h.errorResponse(c, http.StatusForbidden, "Дилер не привязан к компании")
			return
		}
		filter.DealerCompanyID = actor.CompanyID
	}

	packages, err := h.Repository.ListPackages(filter)
	if err != nil {
		logrus.Error("Error listing packages: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения пакетов")
		return
	}

	response := dto.PackageListResponse{
		Packages: make([]dto.PackageResponse, len(packages)),
		Total:    len(packages),
	}
	for i, p := range packages {
		response.Packages[i] = h.toPackageResponse(p)
	}

	c.JSON(http.StatusOK, response)
}

// GetPackage godoc
// @Summary Пакет по ID
// @Description Возвращает пакет вместе с входящими в него заявками
// @Tags Пакеты
// @Produce json
// @Param id path int true "ID пакета"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/packages/{id} [get]
func (h *APIHandler) GetPackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пакета")
		return
	}

	pkg, err := h.Repository.GetPackageByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			h.errorResponse(c, http.StatusNotFound, "Пакет не найден")
			return
		}
		logrus.Error("Error getting package: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения пакета")
		return
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}
	if actor.Role == role.Dealer {
		if pkg.DealerCompanyID == nil || actor.CompanyID == nil || *pkg.DealerCompanyID != *actor.CompanyID {
			h.errorResponse(c, http.StatusNotFound, "Пакет не найден")
			return
		}
	}

	requests, err := h.Repository.GetPackageRequests(id)
	if err != nil {
		logrus.Error("Error getting package requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок пакета")
		return
	}

	response := h.toPackageResponse(*pkg)
	response.Requests = make([]dto.RepairRequestResponse, len(requests))
	for i, r := range requests {
		response.Requests[i] = toRequestResponse(r)
	}

	h.successResponse(c, http.StatusOK, "", response)
}

// AcceptPackage godoc
// @Summary Принять пакет в сервисном центре
// @Description Принимает пакет целиком: выбранные заявки должны совпадать с составом пакета
// @Tags Пакеты
// @Accept json
// @Produce json
// @Param id path int true "ID пакета"
// @Param request body dto.AcceptPackageRequest true "Выбранные заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/packages/{id}/accept [post]
func (h *APIHandler) AcceptPackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пакета")
		return
	}

	var req dto.AcceptPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.Engine.AcceptPackage(id, req.SelectedIDs, actor); err != nil {
		h.workflowError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Пакет принят в сервисном центре", nil)
}

// ReturnPackage godoc
// @Summary Вернуть пакет дилеру
// @Description Помечает пакет возвращенным с указанием причины
// @Tags Пакеты
// @Accept json
// @Produce json
// @Param id path int true "ID пакета"
// @Param request body dto.ReturnPackageRequest true "Причина возврата"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/packages/{id}/return [post]
func (h *APIHandler) ReturnPackage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID пакета")
		return
	}

	var req dto.ReturnPackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.Engine.ReturnPackage(id, req.Reason, actor); err != nil {
		h.workflowError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Пакет возвращен дилеру", nil)
}
