package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dto"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/storage"
	"servicetrack/internal/app/workflow"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	Engine      *workflow.Engine
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
}

func NewAPIHandler(r *repository.Repository, engine *workflow.Engine, minioClient *storage.MinIOClient, authHandler *AuthHandler) *APIHandler {
	return &APIHandler{
		Repository:  r,
		Engine:      engine,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
	}
}

// getActor собирает идентичность вызывающего из контекста и БД.
// Авторизация уже выполнена middleware — ядро получает готового актора.
func (h *APIHandler) getActor(c *gin.Context) (workflow.Actor, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return workflow.Actor{}, fmt.Errorf("user not authenticated")
	}

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getActor: invalid userID type: %T", userID)
		return workflow.Actor{}, fmt.Errorf("invalid user ID")
	}

	user, err := h.Repository.GetUserByID(id)
	if err != nil {
		return workflow.Actor{}, fmt.Errorf("user not found")
	}

	return workflow.Actor{
		UserID:    user.ID,
		Role:      user.Role,
		CompanyID: user.DealerCompanyID,
	}, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// workflowError транслирует ошибки ядра в HTTP-статусы
func (h *APIHandler) workflowError(c *gin.Context, err error) {
	switch {
	case workflow.IsValidation(err):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, workflow.ErrNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	default:
		logrus.Error("workflow error: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ============ Преобразование в DTO ============

func toRequestResponse(r ds.RepairRequest) dto.RepairRequestResponse {
	resp := dto.RepairRequestResponse{
		ID:                 r.ID,
		Status:             r.Status,
		StatusDisplay:      ds.RequestStatusDisplay[r.Status],
		SerialNumber:       r.SerialNumber,
		Product:            r.Product.DisplayName(),
		PurchaseDate:       r.PurchaseDate.Format("2006-01-02"),
		WarrantyStatus:     r.WarrantyStatus,
		ProblemDescription: r.ProblemDescription,
		CreatedAt:          r.CreatedAt,
		SentAt:             r.SentAt,
		PackageID:          r.PackageID,
		DiagnosticDate:     r.DiagnosticDate,
		RepairCost:         r.RepairCost,
		PartsCost:          r.PartsCost,
	}
	resp.CustomerName = deref(r.CustomerName)
	resp.CustomerPhone = deref(r.CustomerPhone)
	resp.CustomerEmail = deref(r.CustomerEmail)
	resp.AdditionalNotes = deref(r.AdditionalNotes)
	resp.DiagnosticEmployee = deref(r.DiagnosticEmployee)
	resp.DiagnosticConclusion = deref(r.DiagnosticConclusion)
	resp.Decision = deref(r.Decision)
	resp.RepairType = deref(r.RepairType)
	resp.RepairSubtype = deref(r.RepairSubtype)
	return resp
}

func toHistoryResponse(entries []ds.RequestHistory) []dto.HistoryEntryResponse {
	result := make([]dto.HistoryEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = dto.HistoryEntryResponse{
			OldStatus: deref(e.OldStatus),
			NewStatus: e.NewStatus,
			Display:   ds.RequestStatusDisplay[e.NewStatus],
			Comment:   deref(e.Comment),
			ChangedAt: e.ChangedAt,
		}
	}
	return result
}

func (h *APIHandler) toPackageResponse(p ds.Package) dto.PackageResponse {
	count, err := h.Repository.GetPackageRequestCount(p.ID)
	if err != nil {
		logrus.Error("Error counting package requests: ", err)
	}
	return dto.PackageResponse{
		ID:            p.ID,
		Status:        p.Status,
		StatusDisplay: ds.PackageStatusDisplay[p.Status],
		CreatedAt:     p.CreatedAt,
		RequestCount:  count,
		ReturnedAt:    p.ReturnedAt,
		ReturnReason:  deref(p.ReturnReason),
	}
}

func toProductResponse(p ds.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: p.DisplayName(),
		Brand:       deref(p.Brand),
		Series:      deref(p.Series),
		Category:    p.Category,
		Size:        deref(p.Size),
		PowerRMS:    deref(p.PowerRMS),
		PowerMax:    deref(p.PowerMax),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}