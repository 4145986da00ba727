package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tshirt-store/config"
	"tshirt-store/controllers"
	"tshirt-store/middleware"
	"tshirt-store/models"
	"tshirt-store/notify"
)

func SetupRoutes(router *gin.Engine, hub *notify.Hub, mailer *models.EmailService) {
	publisher := notify.NewPublisher(hub)

	authCtrl := &controllers.AuthController{}
	orderCtrl := &controllers.OrderController{Publisher: publisher, Mailer: mailer}
	productCtrl := &controllers.ProductController{}
	contentCtrl := &controllers.ContentController{}
	dashboardCtrl := &controllers.DashboardController{}
	streamCtrl := &controllers.StreamController{Hub: hub}

	orderLimiter := middleware.NewRateLimiter(config.AppConfig.RateLimit, time.Minute)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public storefront.
	router.POST("/orders", orderLimiter.Middleware(), orderCtrl.CreateOrder)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/hero", contentCtrl.GetHero)
	router.GET("/delivery", contentCtrl.GetDelivery)
	router.GET("/selected-product", contentCtrl.GetSelectedProduct)

	router.POST("/admin/auth/login", authCtrl.Login)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/auth/verify", authCtrl.Verify)
		admin.GET("/dashboard", dashboardCtrl.GetDashboard)

		admin.GET("/events", streamCtrl.Subscribe)

		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.GET("/orders/:id", orderCtrl.GetOrderByID)
		admin.PUT("/orders/:id", orderCtrl.UpdateOrder)
		admin.DELETE("/orders/:id", orderCtrl.DeleteOrder)

		admin.POST("/products", productCtrl.CreateProduct)
		admin.PATCH("/products/:id", productCtrl.UpdateProduct)
		admin.DELETE("/products/:id", productCtrl.DeleteProduct)
		admin.POST("/products/upload", productCtrl.UploadImage)

		admin.PUT("/hero", contentCtrl.UpdateHero)
		admin.PUT("/delivery", contentCtrl.UpdateDelivery)
		admin.PUT("/selected-product", contentCtrl.SetSelectedProduct)
	}

	router.Static("/uploads", "./uploads")
}
