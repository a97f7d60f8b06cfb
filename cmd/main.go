package main

import (
  "context"
  "fmt"
  "os"
  "strings"
  "time"

  "github.com/joho/godotenv"
  goredis "github.com/redis/go-redis/v9"

  "github.com/adgenius/adgenius-backend/internal/db"
  "github.com/adgenius/adgenius-backend/internal/handlers"
  "github.com/adgenius/adgenius-backend/internal/logger"
  "github.com/adgenius/adgenius-backend/internal/middleware"
  "github.com/adgenius/adgenius-backend/internal/observability"
  "github.com/adgenius/adgenius-backend/internal/repos"
  "github.com/adgenius/adgenius-backend/internal/server"
  "github.com/adgenius/adgenius-backend/internal/services"
  "github.com/adgenius/adgenius-backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET", "", log)
  if jwtSecretKey == "" {
    log.Fatal("JWT_SECRET is required")
  }
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 604800, log)
  port := utils.GetEnv("PORT", "3005", log)

  // Tracing (optional, gated by OTEL_ENABLED)
  otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "adgenius-backend",
    Environment: os.Getenv("APP_ENV"),
    Version:     os.Getenv("APP_VERSION"),
  })
  if otelShutdown != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      _ = otelShutdown(ctx)
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional, dashboard cache only)
  var rdb *goredis.Client
  if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
    rdb = goredis.NewClient(&goredis.Options{
      Addr:     redisAddr,
      Password: os.Getenv("REDIS_PASSWORD"),
    })
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  productRepo := repos.NewProductRepo(thePG, log)
  promptRepo := repos.NewPromptRepo(thePG, log)
  productPromptRepo := repos.NewProductPromptRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  openaiClient, err := services.NewOpenAIClient(log)
  if err != nil {
    log.Error("Could not init OpenAIClient", "error", err)
    os.Exit(1)
  }
  brandAnalyzer := services.NewBrandAnalyzer(log, openaiClient)
  creativeGenerator := services.NewCreativePromptGenerator(log, openaiClient)
  imageGenerator := services.NewImageGenerator(log, openaiClient)
  adGenerationService := services.NewAdGenerationService(
    log,
    productRepo,
    promptRepo,
    productPromptRepo,
    brandAnalyzer,
    creativeGenerator,
    imageGenerator,
  )
  authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  productService := services.NewProductService(thePG, log, productRepo)
  promptService := services.NewPromptService(thePG, log, promptRepo, productPromptRepo)
  productPromptService := services.NewProductPromptService(thePG, log, productRepo, productPromptRepo)
  dashboardService := services.NewDashboardService(thePG, log, productRepo, productPromptRepo, rdb)

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  productHandler := handlers.NewProductHandler(productService)
  promptHandler := handlers.NewPromptHandler(promptService)
  productPromptHandler := handlers.NewProductPromptHandler(productPromptService)
  adsHandler := handlers.NewAdsHandler(adGenerationService)
  dashboardHandler := handlers.NewDashboardHandler(dashboardService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  var allowOrigins []string
  if rawOrigins := os.Getenv("CORS_ALLOW_ORIGINS"); rawOrigins != "" {
    allowOrigins = strings.Split(rawOrigins, ",")
  }
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:          authHandler,
    AuthMiddleware:       authMiddleware,
    UserHandler:          userHandler,
    ProductHandler:       productHandler,
    PromptHandler:        promptHandler,
    ProductPromptHandler: productPromptHandler,
    AdsHandler:           adsHandler,
    DashboardHandler:     dashboardHandler,
    AllowOrigins:         allowOrigins,
  })

  log.Info("Starting server", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server exited", "error", err)
  }
}
