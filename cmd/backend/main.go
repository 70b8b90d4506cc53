package main

import (
	"context"

	"servicetrack/internal/app/config"
	"servicetrack/internal/app/dsn"
	"servicetrack/internal/app/handler"
	"servicetrack/internal/app/middleware"
	"servicetrack/internal/app/redis"
	"servicetrack/internal/app/repository"
	"servicetrack/internal/app/storage"
	"servicetrack/internal/app/workflow"
	"servicetrack/internal/pkg"

	_ "servicetrack/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title ServiceTrack API
// @version 1.0
// @description Система учета заявок на гарантийный ремонт: дилеры, сервисный центр, пакеты отправки
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.Info("App start")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal("error loading config: ", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatal("error connecting to database: ", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatal("error connecting to redis: ", err)
	}

	minioClient, err := storage.NewMinIOClient(
		cfg.Minio.Endpoint,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.Bucket,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		logrus.Fatal("error connecting to minio: ", err)
	}

	engine := workflow.New(repo)
	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, engine, minioClient, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	router := gin.Default()

	app := pkg.NewApp(cfg, router, apiHandler, authMiddleware)
	app.RunApp()

	logrus.Info("App terminated")
}
