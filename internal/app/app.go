package app

import (
	"context"
	"os"

	"emp-portal/internal/auth"
	"emp-portal/internal/employee"
	"emp-portal/internal/messaging/kafka"
	"emp-portal/internal/shared/connection"
	"emp-portal/internal/shared/counter"
	"emp-portal/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	// Same-host admin UI plus local dev; the portal has no cookie auth,
	// so a permissive CORS policy matches the original surface.
	router.Use(cors.Default())

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&auth.Credential{},
		&counter.SequenceCounter{},
	); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	if err := kafka.MigrateOutbox(context.Background(), sqlDB); err != nil {
		return err
	}

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb, err = connection.ConnectRedisWithRetry(addr, 5)
		if err != nil {
			return err
		}
		logger.Info("redis connection established")
	} else {
		logger.Warn("REDIS_ADDR not set, list cache disabled")
	}

	var uploads storage.Uploader
	if cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloudName != "" {
		uploads, err = storage.NewCloudinaryUploader(
			cloudName,
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
			"portal-employees",
		)
		if err != nil {
			return err
		}
		logger.Info("cloudinary storage configured")
	} else {
		logger.Warn("CLOUDINARY_CLOUD_NAME not set, image uploads will fail")
	}

	return registerModules(router, gormDB, rdb, uploads)
}
