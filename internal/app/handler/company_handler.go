package handler

import (
	"net/http"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetCompanies godoc
// @Summary Справочник компаний-дилеров
// @Tags Компании
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Security BearerAuth
// @Router /api/companies [get]
func (h *APIHandler) GetCompanies(c *gin.Context) {
	companies, err := h.Repository.GetAllCompanies()
	if err != nil {
		logrus.Error("Error listing companies: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения компаний")
		return
	}

	response := make([]dto.CompanyResponse, len(companies))
	for i, company := range companies {
		response[i] = dto.CompanyResponse{
			ID:     company.ID,
			Code:   company.Code,
			Name:   company.Name,
			Region: deref(company.Region),
		}
	}

	h.successResponse(c, http.StatusOK, "", response)
}

// CreateCompany godoc
// @Summary Добавить компанию-дилера
// @Tags Компании
// @Accept json
// @Produce json
// @Param request body dto.CreateCompanyRequest true "Данные компании"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/companies [post]
func (h *APIHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	company := ds.DealerCompany{
		Code:         req.Code,
		Name:         req.Name,
		INN:          optionalString(req.INN),
		FullName:     optionalString(req.FullName),
		RelationType: optionalString(req.RelationType),
		Region:       optionalString(req.Region),
		IsActive:     true,
	}

	if err := h.Repository.CreateCompany(&company); err != nil {
		logrus.Error("Error creating company: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания компании")
		return
	}

	h.successResponse(c, http.StatusCreated, "Компания добавлена", dto.CompanyResponse{
		ID:     company.ID,
		Code:   company.Code,
		Name:   company.Name,
		Region: deref(company.Region),
	})
}
