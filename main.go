package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"tshirt-store/config"
	_ "tshirt-store/docs"
	"tshirt-store/middleware"
	"tshirt-store/models"
	"tshirt-store/notify"
	"tshirt-store/routes"
)

// @title T-Shirt Store API
// @version 1.0
// @description Storefront and admin back-office with real-time order notifications
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitDB()
	defer models.CloseDB()

	models.InitRedis()
	defer models.CloseRedis()

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	hub := notify.NewHub()

	mailer, err := models.NewEmailService()
	if err != nil {
		log.Println("Order confirmation mail disabled:", err)
		mailer = nil
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.PrometheusMiddleware())
	routes.SetupRoutes(router, hub, mailer)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
