package app

import (
	"emp-portal/internal/auth"
	"emp-portal/internal/employee"
	"emp-portal/internal/messaging/kafka"
	"emp-portal/internal/middleware"
	"emp-portal/internal/shared/counter"
	"emp-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	uploads storage.Uploader,
) error {
	logger := zap.L()

	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())

	// --- Repositories ---
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, uploads, outboxRepo, rdb)
	authService := auth.NewService(authRepo)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	authHandler := auth.NewHandler(authService)

	// --- Routes ---
	api := router.Group("/api")
	{
		auth.RegisterRoutes(api, authHandler)
		employee.RegisterRoutes(api, employeeHandler, logger)
	}

	return nil
}
