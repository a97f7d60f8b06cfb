package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/adgenius/adgenius-backend/internal/handlers"
  "github.com/adgenius/adgenius-backend/internal/middleware"
  "github.com/adgenius/adgenius-backend/internal/types"
)

type RouterConfig struct {
  AuthHandler          *handlers.AuthHandler
  AuthMiddleware       *middleware.AuthMiddleware
  UserHandler          *handlers.UserHandler
  ProductHandler       *handlers.ProductHandler
  PromptHandler        *handlers.PromptHandler
  ProductPromptHandler *handlers.ProductPromptHandler
  AdsHandler           *handlers.AdsHandler
  DashboardHandler     *handlers.DashboardHandler
  AllowOrigins         []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("adgenius-backend"))

  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{
      "http://localhost:3000",
      "http://localhost:5173",
    }
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // ===============
  // || Public    ||
  // ===============
  router.GET("/health", handlers.HealthCheck)
  api := router.Group("/api")
  {
    api.POST("/auth/register", cfg.AuthHandler.Register)
    api.POST("/auth/login", cfg.AuthHandler.Login)
  }

  // ===============
  // || Protected ||
  // ===============
  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())

  // Auth
  protected.GET("/auth/me", cfg.AuthHandler.Me)
  protected.POST("/auth/logout", cfg.AuthHandler.Logout)

  // Products
  protected.GET("/products", cfg.ProductHandler.List)
  protected.POST("/products", cfg.ProductHandler.Create)
  protected.GET("/products/:id", cfg.ProductHandler.Get)
  protected.PUT("/products/:id", cfg.ProductHandler.Update)
  protected.DELETE("/products/:id", cfg.ProductHandler.Delete)

  // Prompts
  protected.GET("/prompts", cfg.PromptHandler.List)
  protected.GET("/prompts/:id", cfg.PromptHandler.Get)
  protected.DELETE("/prompts/:id", cfg.PromptHandler.Delete)

  // Product-prompt links
  protected.GET("/product-prompts/product/:productId", cfg.ProductPromptHandler.ListByProduct)
  protected.DELETE("/product-prompts/:id", cfg.ProductPromptHandler.Delete)

  // Ad generation pipeline
  protected.POST("/ads/generate", cfg.AdsHandler.Generate)
  protected.POST("/ads/regenerate-image", cfg.AdsHandler.RegenerateImage)
  protected.POST("/ads/analyze-website", cfg.AdsHandler.AnalyzeWebsite)

  // Dashboard
  protected.GET("/dashboard/stats", cfg.DashboardHandler.Stats)
  protected.GET("/dashboard/products", cfg.DashboardHandler.Products)

  // User administration: MANAGER may read, writes stay ADMIN-only.
  users := protected.Group("/users")
  users.GET("", cfg.AuthMiddleware.RequireRoles(types.RoleAdmin, types.RoleManager), cfg.UserHandler.List)
  users.GET("/:id", cfg.AuthMiddleware.RequireRoles(types.RoleAdmin, types.RoleManager), cfg.UserHandler.Get)
  users.POST("", cfg.AuthMiddleware.RequireRoles(types.RoleAdmin), cfg.UserHandler.Create)
  users.PUT("/:id", cfg.AuthMiddleware.RequireRoles(types.RoleAdmin), cfg.UserHandler.Update)
  users.DELETE("/:id", cfg.AuthMiddleware.RequireRoles(types.RoleAdmin), cfg.UserHandler.Delete)

  return router
}
