package api

import (
	"github.com/Saimongu007/Breez/config"
	_ "github.com/Saimongu007/Breez/docs"
	"github.com/Saimongu007/Breez/internal/api/test"
	achievementRoutes "github.com/Saimongu007/Breez/internal/api/v1/achievement"
	adminAchievement "github.com/Saimongu007/Breez/internal/api/v1/admin/achievement"
	adminResource "github.com/Saimongu007/Breez/internal/api/v1/admin/resource"
	adminTransaction "github.com/Saimongu007/Breez/internal/api/v1/admin/transaction"
	adminUser "github.com/Saimongu007/Breez/internal/api/v1/admin/user"
	"github.com/Saimongu007/Breez/internal/api/v1/auth"
	"github.com/Saimongu007/Breez/internal/api/v1/common/upload"
	leaderboardRoutes "github.com/Saimongu007/Breez/internal/api/v1/leaderboard"
	resourceRoutes "github.com/Saimongu007/Breez/internal/api/v1/resource"
	transactionRoutes "github.com/Saimongu007/Breez/internal/api/v1/transaction"
	userRoutes "github.com/Saimongu007/Breez/internal/api/v1/user"
	"github.com/Saimongu007/Breez/internal/database"
	"github.com/Saimongu007/Breez/internal/middleware"
	"github.com/Saimongu007/Breez/pkg/monitor"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter() (*gin.Engine, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	_, err = database.Connect(cfg.DSN())
	if err != nil {
		return nil, err
	}

	err = database.ConnectRedis(cfg)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(monitor.PrometheusMiddleware())

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8080"}, // Allow frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)
		v1.GET("/ping", test.PingHandler)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			resourceRoutes.RegisterRoutes(authorized)
			transactionRoutes.RegisterRoutes(authorized)
			leaderboardRoutes.RegisterRoutes(authorized)
			achievementRoutes.RegisterRoutes(authorized)
			upload.RegisterRoutes(authorized)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware())
		{
			adminUser.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminResource.RegisterRoutes(admin)
			adminAchievement.RegisterRoutes(admin)
		}
	}

	return router, nil
}
