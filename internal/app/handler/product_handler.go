package handler

import (
	"errors"
	"net/http"

	"servicetrack/internal/app/ds"
	"servicetrack/internal/app/dto"
	"servicetrack/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetProducts godoc
// @Summary Каталог товаров
// @Description Возвращает активные товары, опционально с поиском по названию
// @Tags Товары
// @Produce json
// @Param search query string false "Поиск по названию"
// @Success 200 {object} dto.ProductListResponse
// @Router /api/products [get]
func (h *APIHandler) GetProducts(c *gin.Context) {
	search := c.Query("search")

	var products []ds.Product
	var err error
	if search != "" {
		products, err = h.Repository.SearchProductsByName(search)
	} else {
		products, err = h.Repository.GetAllProducts()
	}
	if err != nil {
		logrus.Error("Error getting products: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения товаров")
		return
	}

	response := dto.ProductListResponse{
		Products: make([]dto.ProductResponse, len(products)),
		Total:    len(products),
	}
	for i, p := range products {
		response.Products[i] = toProductResponse(p)
	}

	c.JSON(http.StatusOK, response)
}

// GetProduct godoc
// @Summary Товар по ID
// @Tags Товары
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/products/{id} [get]
func (h *APIHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID товара")
		return
	}

	product, err := h.Repository.GetProductByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			h.errorResponse(c, http.StatusNotFound, "Товар не найден")
			return
		}
		logrus.Error("Error getting product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения товара")
		return
	}

	h.successResponse(c, http.StatusOK, "", toProductResponse(*product))
}

// CreateProduct godoc
// @Summary Добавить товар в каталог
// @Tags Товары
// @Accept json
// @Produce json
// @Param request body dto.CreateProductRequest true "Данные товара"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products [post]
func (h *APIHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	product := ds.Product{
		Name:     req.Name,
		Brand:    optionalString(req.Brand),
		Series:   optionalString(req.Series),
		Category: req.Category,
		Size:     optionalString(req.Size),
		PowerRMS: optionalString(req.PowerRMS),
		PowerMax: optionalString(req.PowerMax),
		IsActive: true,
	}

	if err := h.Repository.CreateProduct(&product); err != nil {
		logrus.Error("Error creating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания товара")
		return
	}

	h.successResponse(c, http.StatusCreated, "Товар добавлен", toProductResponse(product))
}

// UpdateProduct godoc
// @Summary Обновить товар
// @Description Обновляет только переданные непустые поля
// @Tags Товары
// @Accept json
// @Produce json
// @Param id path int true "ID товара"
// @Param request body dto.UpdateProductRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/{id} [put]
func (h *APIHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID товара")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат данных: "+err.Error())
		return
	}

	exists, err := h.Repository.ProductExists(id)
	if err != nil {
		logrus.Error("Error checking product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления товара")
		return
	}
	if !exists {
		h.errorResponse(c, http.StatusNotFound, "Товар не найден")
		return
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Series != "" {
		updates["series"] = req.Series
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Size != "" {
		updates["size"] = req.Size
	}
	if req.PowerRMS != "" {
		updates["power_rms"] = req.PowerRMS
	}
	if req.PowerMax != "" {
		updates["power_max"] = req.PowerMax
	}
	if len(updates) == 0 {
		h.errorResponse(c, http.StatusBadRequest, "Нет полей для обновления")
		return
	}

	if err := h.Repository.UpdateProduct(id, updates); err != nil {
		logrus.Error("Error updating product: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления товара")
		return
	}

	h.successResponse(c, http.StatusOK, "Товар обновлен", nil)
}

// DeleteProduct godoc
// @Summary Удалить товар
// @Description Логическое удаление. Товар, используемый в заявках, удалить нельзя
// @Tags Товары
// @Produce json
// @Param id path int true "ID товара"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /api/products/{id} [delete]
func (h *APIHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		h.errorResponse(c, http.StatusBadRequest, "Неверный ID товара")
		return
	}

	err := h.Repository.DeleteProduct(id)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductReferenced):
			h.errorResponse(c, http.StatusBadRequest, err.Error())
		case repository.IsNotFound(err):
			h.errorResponse(c, http.StatusNotFound, "Товар не найден")
		default:
			logrus.Error("Error deleting product: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка удаления товара")
		}
		return
	}

	h.successResponse(c, http.StatusOK, "Товар удален", nil)
}
