package handler

import (
	"net/http"
	"time"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dto"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/role"
	"servicetrack/internal/app/workflow"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CreateRequest godoc
// @Summary Создать заявку на ремонт
// @Description Создает заявку со статусом "Принято у покупателя" и первой записью истории
// @Tags Заявки
// @Accept json
// @Produce json
// @Param request body dto.CreateRepairRequest true "Данные заявки"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests [post]
func (h *APIHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	purchaseDate, err := time.Parse("2006-01-02", req.PurchaseDate)
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты покупки, ожидается ГГГГ-ММ-ДД")
		return
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	request, err := h.Engine.CreateRequest(workflow.CreateRequestInput{
		SerialNumber:       req.SerialNumber,
		ProductID:          req.ProductID,
		PurchaseDate:       purchaseDate,
		WarrantyStatus:     req.WarrantyStatus,
		ProblemDescription: req.ProblemDescription,
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		CustomerEmail:      req.CustomerEmail,
		AdditionalNotes:    req.AdditionalNotes,
	}, actor)
	if err != nil {
		h.workflowError(c, err)
		return
	}

	// перечитываем с товаром для ответа
	created, err := h.Repository.GetRequestByID(request.ID)
	if err != nil {
		logrus.Error("Error reloading created request: ", err)
		created = request
	}

	h.successResponse(c, http.StatusCreated, "Заявка создана", toRequestResponse(*created))
}

// GetRequests godoc
// @Summary Список заявок
// @Description Возвращает заявки с фильтрами. Дилер видит только заявки своей компании
// @Tags Заявки
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param date_from query string false "Дата создания с (ГГГГ-ММ-ДД)"
// @Param date_to query string false "Дата создания по (ГГГГ-ММ-ДД)"
// @Success 200 {object} dto.RepairRequestListResponse
// @Security BearerAuth
// @Router /api/requests [get]
func (h *APIHandler) GetRequests(c *gin.Context) {
	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	filter := repository.RequestFilter{
		Status: c.Query("status"),
	}
	if filter.Status != "" && !ds.IsValidRequestStatus(filter.Status) {
		h.errorResponse(c, http.StatusBadRequest, "Неверный статус заявки")
		return
	}
	if from := c.Query("date_from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат date_from")
			return
		}
		filter.DateFrom = &t
	}
	if to := c.Query("date_to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат date_to")
			return
		}
		// включительно до конца дня
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &t
	}

	// дилер видит только заявки своей компании
	if actor.Role == role.Dealer {
		if actor.CompanyID == nil {
			h.errorResponse(c, http.StatusForbidden, "Дилер не привязан к компании")
			return
		}
		filter.DealerCompanyID = actor.CompanyID
	}

	requests, err := h.Repository.ListRequests(filter)
	if err != nil {
		logrus.Error("Error listing requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявок")
		return
	}

	response := dto.RepairRequestListResponse{
		Requests: make([]dto.RepairRequestResponse, len(requests)),
		Total:    len(requests),
	}
	for i, r := range requests {
		response.Requests[i] = toRequestResponse(r)
	}

	c.JSON(http.StatusOK, response)
}

// GetRequest godoc
// @Summary Заявка по ID
// @Description Возвращает заявку с полной историей изменений
// @Tags Заявки
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id} [get]
func (h *APIHandler) GetRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	request, err := h.Repository.GetRequestByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
			return
		}
		logrus.Error("Error getting request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заявки")
		return
	}

	// дилер не видит чужие заявки
	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}
	if actor.Role == role.Dealer {
		if request.DealerCompanyID == nil || actor.CompanyID == nil || *request.DealerCompanyID != *actor.CompanyID {
			h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
			return
		}
	}

	history, err := h.Repository.GetRequestHistory(id)
	if err != nil {
		logrus.Error("Error getting request history: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения истории")
		return
	}

	h.successResponse(c, http.StatusOK, "", gin.H{
		"request": toRequestResponse(*request),
		"history": toHistoryResponse(history),
	})
}

// UpdateRequestStatus godoc
// @Summary Изменить статус заявки
// @Description Переводит заявку в новый статус с записью в историю
// @Tags Заявки
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param request body dto.UpdateStatusRequest true "Новый статус и комментарий"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id}/status [put]
func (h *APIHandler) UpdateRequestStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.Engine.UpdateStatus(id, req.Status, req.Comment, actor); err != nil {
		h.workflowError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Статус заявки обновлен", nil)
}

// EditRequestDetails godoc
// @Summary Редактировать данные заявки
// @Description Обновляет поля диагностики и ремонта с одной записью в историю
// @Tags Заявки
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param request body dto.EditDetailsRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id}/details [put]
func (h *APIHandler) EditRequestDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	var req dto.EditDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	input := workflow.EditDetailsInput{
		Status:               req.Status,
		CustomerName:         req.CustomerName,
		CustomerPhone:        req.CustomerPhone,
		CustomerEmail:        req.CustomerEmail,
		AdditionalNotes:      req.AdditionalNotes,
		DiagnosticEmployee:   req.DiagnosticEmployee,
		DiagnosticConclusion: req.DiagnosticConclusion,
		Decision:             req.Decision,
		RepairType:           req.RepairType,
		RepairSubtype:        req.RepairSubtype,
		RepairCost:           req.RepairCost,
		PartsCost:            req.PartsCost,
	}
	if req.DiagnosticDate != nil {
		t, err := time.Parse("2006-01-02", *req.DiagnosticDate)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверный формат даты диагностики")
			return
		}
		input.DiagnosticDate = &t
	}

	actor, err := h.getActor(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	if err := h.Engine.EditDetails(id, input, actor); err != nil {
		h.workflowError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Данные заявки обновлены", nil)
}

// GetRequestHistory godoc
// @Summary История заявки
// @Description Возвращает все записи истории заявки в хронологическом порядке
// @Tags Заявки
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/requests/{id}/history [get]
func (h *APIHandler) GetRequestHistory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID заявки")
		return
	}

	exists, err := h.Repository.RequestExists(id)
	if err != nil {
		logrus.Error("Error checking request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения истории")
		return
	}
	if !exists {
		h.errorResponse(c, http.StatusNotFound, "Заявка не найдена")
		return
	}

	history, err := h.Repository.GetRequestHistory(id)
	if err != nil {
		logrus.Error("Error getting request history: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения истории")
		return
	}

	h.successResponse(c, http.StatusOK, "", toHistoryResponse(history))
}

// TrackBySerial godoc
// @Summary Трекинг по серийному номеру
// @Description Публичный статус ремонта: текущий статус и переходы. Без данных покупателя
// @Tags Трекинг
// @Produce json
// @Param serial path string true "Серийный номер товара"
// @Success 200 {object} dto.TrackingResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/tracking/{serial} [get]
func (h *APIHandler) TrackBySerial(c *gin.Context) {
	serial := c.Param("serial")
	if serial == "" {
		h.errorResponse(c, http.StatusBadRequest, "Не указан серийный номер")
		return
	}

	request, transitions, err := h.Engine.TrackBySerial(serial)
	if err != nil {
		if err == workflow.ErrNotFound {
			h.errorResponse(c, http.StatusNotFound, "Заявка с таким серийным номером не найдена")
			return
		}
		logrus.Error("Error tracking by serial: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка трекинга")
		return
	}

	c.JSON(http.StatusOK, dto.TrackingResponse{
		SerialNumber:  request.SerialNumber,
		Product:       request.Product.DisplayName(),
		Status:        request.Status,
		StatusDisplay: ds.RequestStatusDisplay[request.Status],
		Transitions:   toHistoryResponse(transitions),
	})
}
