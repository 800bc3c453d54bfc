package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"motodealer-api/auth"
	"motodealer-api/config"
	"motodealer-api/controllers"
	"motodealer-api/middleware"
	"motodealer-api/services"
)

// SetupRoutes registers the middleware chain and every /api/v1 endpoint on r. The
// auth limiter is passed in so its cleanup job can share it.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, mailer services.Mailer, authLimiter *middleware.RateLimiter) {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	guard := middleware.NewGuard(tokens)

	accounts := services.NewAccountService(db, tokens, mailer)

	// Controllers
	authController := controllers.NewAuthController(accounts)
	userController := controllers.NewUserController(accounts)
	motorcycleController := controllers.NewMotorcycleController(services.NewInventoryService(db))
	saleController := controllers.NewSaleController(services.NewSaleService(db, mailer))
	dashboardController := controllers.NewDashboardController(services.NewDashboardService(db))

	r.Use(
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
		middleware.SecurityHeaders(),
		middleware.CORS(cfg.CORSAllowedOrigin),
		middleware.ValidateJSON(),
	)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	v1 := r.Group("/api/v1")

	authenticated := guard.Authenticated()
	admin := guard.Administrator()

	// Per-id mutations only need a signed-in caller unless strict mode is on
	mutation := authenticated
	if cfg.StrictAdminMutations {
		mutation = admin
	}

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", authLimiter.Middleware(), authController.Register)
		authGroup.POST("/login", authLimiter.Middleware(), authController.Login)
		authGroup.GET("/me", authenticated, authController.Me)
	}

	motorcycles := v1.Group("/motorcycles")
	{
		motorcycles.GET("", admin, motorcycleController.GetMotorcycles)
		motorcycles.GET("/public", authenticated, motorcycleController.GetPublicMotorcycles)
		motorcycles.GET("/:id", authenticated, motorcycleController.GetMotorcycle)
		motorcycles.POST("", admin, motorcycleController.CreateMotorcycle)
		motorcycles.PUT("/:id", mutation, motorcycleController.UpdateMotorcycle)
		motorcycles.DELETE("/:id", mutation, motorcycleController.DeleteMotorcycle)
	}

	sales := v1.Group("/sales")
	{
		sales.GET("", admin, saleController.GetSales)
		sales.GET("/:id", admin, saleController.GetSale)
		sales.POST("", admin, saleController.CreateSale)
		sales.PUT("/:id", mutation, saleController.UpdateSale)
		sales.DELETE("/:id", mutation, saleController.DeleteSale)
	}

	users := v1.Group("/users")
	{
		users.GET("", admin, userController.GetUsers)
		users.POST("", admin, userController.CreateUser)
		users.PUT("/:id", mutation, userController.UpdateUser)
		users.DELETE("/:id", mutation, userController.DeleteUser)
	}

	v1.GET("/dashboard/stats", admin, dashboardController.GetStats)
}
