package handler

import (
	"servicetrack/internal/app/middleware"
	"servicetrack/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// ============ Товары (Products) ============
	products := api.Group("/products")
	{
		// Публичные эндпоинты (каталог доступен без авторизации)
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)

		// Управление каталогом — только сервисный центр
		products.POST("", authMiddleware.WithAuthCheck(role.ServiceCenter), h.CreateProduct)
		products.PUT("/:id", authMiddleware.WithAuthCheck(role.ServiceCenter), h.UpdateProduct)
		products.DELETE("/:id", authMiddleware.WithAuthCheck(role.ServiceCenter), h.DeleteProduct)
	}

	// ============ Заявки (Repair Requests) ============
	requests := api.Group("/requests")
	{
		// Создание заявки — прием товара у покупателя делает дилер
		requests.POST("", authMiddleware.WithAuthCheck(role.Dealer), h.CreateRequest)

		// Просмотр доступен обеим ролям, дилер видит только свои
		requests.GET("", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetRequests)
		requests.GET("/:id", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetRequest)
		requests.GET("/:id/history", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetRequestHistory)

		// Смена статуса и данные диагностики — только сервисный центр
		requests.PUT("/:id/status", authMiddleware.WithAuthCheck(role.ServiceCenter), h.UpdateRequestStatus)
		requests.PUT("/:id/details", authMiddleware.WithAuthCheck(role.ServiceCenter), h.EditRequestDetails)

		// Вложения
		requests.POST("/:id/photo", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.UploadRequestPhoto)
		requests.POST("/:id/video", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.UploadRequestVideo)
		requests.GET("/:id/media", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetRequestMedia)
	}

	// ============ Пакеты (Packages) ============
	packages := api.Group("/packages")
	{
		// Отправка пакета в сервисный центр — дилер
		packages.POST("/send", authMiddleware.WithAuthCheck(role.Dealer), h.BatchSendRequests)

		packages.GET("", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetPackages)
		packages.GET("/:id", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetPackage)

		// Приемка и возврат — сервисный центр
		packages.POST("/:id/accept", authMiddleware.WithAuthCheck(role.ServiceCenter), h.AcceptPackage)
		packages.POST("/:id/return", authMiddleware.WithAuthCheck(role.ServiceCenter), h.ReturnPackage)
	}

	// ============ Компании (Dealer Companies) ============
	companies := api.Group("/companies")
	{
		companies.GET("", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.GetCompanies)
		companies.POST("", authMiddleware.WithAuthCheck(role.ServiceCenter), h.CreateCompany)
	}

	// ============ Трекинг (публичный, для покупателя) ============
	api.GET("/tracking/:serial", h.TrackBySerial)

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.RegisterUser)
		auth.POST("/login", h.AuthHandler.LoginUser)

		auth.GET("/profile", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.AuthHandler.GetUserProfile)
		auth.PUT("/profile", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.AuthHandler.UpdateProfile)
		auth.POST("/logout", authMiddleware.WithAuthCheck(role.Dealer, role.ServiceCenter), h.AuthHandler.LogoutUser)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
