package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/oppabier/cardapio-server/src/config"
	"github.com/oppabier/cardapio-server/src/database"
	"github.com/oppabier/cardapio-server/src/handlers"
	"github.com/oppabier/cardapio-server/src/logging"
	"github.com/oppabier/cardapio-server/src/middleware"
	"github.com/oppabier/cardapio-server/src/services"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logging
	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	// Prices serialize as JSON numbers, matching what the storefront expects
	decimal.MarshalJSONWithoutQuotes = true

	// Restaurant branding file is optional
	restaurant, err := config.LoadRestaurant(cfg.RestaurantFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load restaurant file")
	}

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	// Initialize JWT secret in middleware
	if err := middleware.SetJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize JWT secret")
	}

	// Initialize services
	userService := services.NewUserService(db.GetPool())
	categoryService := services.NewCategoryService(db.GetPool())
	productService := services.NewProductService(db.GetPool())
	configService := services.NewConfigService(db.GetPool())
	imageService := services.NewImageService(cfg.UploadDir)

	// Auto-seed the admin account and the well-known settings on first run
	if err := userService.Seed(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Error().Err(err).Msg("failed to seed admin account")
	}
	if err := configService.Seed(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to seed settings")
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(cors.New(buildCORSConfig(cfg.AllowedOrigins)))

	// Setup routes
	setupRoutes(router, db, restaurant, userService, categoryService, productService, configService, imageService, cfg)

	// Create HTTP server with timeouts (protect from Slowloris attack)
	srv := &http.Server{
		Addr:              ":" + formatPort(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

// buildCORSConfig allows the configured origins, or any origin when none is
// configured (the admin panel is served from this same process)
func buildCORSConfig(allowedOrigins string) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if allowedOrigins == "" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
		return corsConfig
	}

	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	corsConfig.AllowOrigins = origins
	return corsConfig
}

func setupRoutes(router *gin.Engine, db *database.Database, restaurant *config.Restaurant, userService *services.UserService, categoryService *services.CategoryService, productService *services.ProductService, configService *services.ConfigService, imageService *services.ImageService, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, restaurant)
	authHandler := handlers.NewAuthHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	productHandler := handlers.NewProductHandler(productService, imageService)
	configHandler := handlers.NewConfigHandler(configService)

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)
	router.GET("/info", healthHandler.HandleInfo)

	api := router.Group("/api")

	// Public storefront endpoints
	api.GET("/categorias", categoryHandler.HandleList)
	api.GET("/produtos", productHandler.HandleList)
	api.GET("/configuracoes", configHandler.HandleGet)
	api.GET("/cardapio-completo", productHandler.HandleFullMenu)

	// Login with per-IP rate limiting
	api.POST("/login", middleware.LoginRateLimitMiddleware(), authHandler.HandleLogin)

	// Admin endpoints (all require a bearer token)
	admin := api.Group("")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/auth/verify", authHandler.HandleVerify)
		admin.PUT("/usuario", authHandler.HandleUpdateUser)

		admin.GET("/categorias/todas", categoryHandler.HandleListAll)
		admin.POST("/categorias", categoryHandler.HandleCreate)
		admin.PUT("/categorias/:id", categoryHandler.HandleUpdate)
		admin.DELETE("/categorias/:id", categoryHandler.HandleDelete)

		admin.GET("/produtos/todos", productHandler.HandleListAll)
		admin.POST("/produtos", productHandler.HandleCreate)
		admin.PUT("/produtos/:id", productHandler.HandleUpdate)
		admin.DELETE("/produtos/:id", productHandler.HandleDelete)

		admin.GET("/configuracoes/todas", configHandler.HandleListAll)
		admin.PUT("/configuracoes", configHandler.HandleUpdate)

		admin.GET("/stats", productHandler.HandleStats)
	}

	// Static assets: storefront, admin panel and uploaded product images
	router.Static("/uploads", cfg.UploadDir)
	router.StaticFile("/", cfg.PublicDir+"/index.html")
	router.StaticFile("/admin", cfg.PublicDir+"/admin.html")
}

func formatPort(port int) string {
	return fmt.Sprintf("%d", port)
}
