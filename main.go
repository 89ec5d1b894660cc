package main

import (
	"log"
	"time"

	"classroom-app/config"
	"classroom-app/database"
	routes "classroom-app/internal/app/http"
	"classroom-app/internal/infra/storage"
	"classroom-app/internal/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	logger := logging.NewLogger(config.ENVIRONMENT)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	database.InitDB()

	if err := storage.Init(config.UPLOAD_DIR); err != nil {
		log.Fatal("Failed to prepare upload dir:", err)
	}

	if config.ENVIRONMENT == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	logger.Info("starting server", zap.String("port", config.PORT))
	r.Run(":" + config.PORT)
}
