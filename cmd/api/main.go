package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_catalog/internal/cache"
	"github.com/GTDGit/gtd_catalog/internal/config"
	"github.com/GTDGit/gtd_catalog/internal/handler"
	"github.com/GTDGit/gtd_catalog/internal/middleware"
	"github.com/GTDGit/gtd_catalog/internal/service"
	"github.com/GTDGit/gtd_catalog/internal/sse"
	"github.com/GTDGit/gtd_catalog/internal/utils"
	"github.com/GTDGit/gtd_catalog/internal/worker"
	"github.com/GTDGit/gtd_catalog/pkg/fakestore"
)

// main is the application entrypoint for the catalog admin dashboard.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting catalog dashboard")

	// 3. Select cache backend
	var (
		store       cache.Store
		redisClient *cache.RedisClient
	)
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		store = redisClient
		log.Info().Msg("redis connected successfully")
	default:
		store = cache.NewMemoryStore()
		log.Info().Msg("using in-memory cache")
	}

	catalogCache := cache.NewCatalogCache(store, cfg.Cache.TTL)
	sessionStore := cache.NewSessionStore(store)

	// 4. Initialize catalog client
	catalogClient := fakestore.NewClient(fakestore.Config{
		BaseURL: cfg.Catalog.BaseURL,
		Timeout: cfg.Catalog.Timeout,
		Debug:   !cfg.IsProduction(),
	})

	// 5. Initialize services
	hub := sse.NewHub()
	authSvc, err := service.NewAuthService(sessionStore, utils.NewTokenSigner(cfg.JWTSecret), service.AuthOptions{
		LoginDelay:  cfg.Auth.LoginDelay,
		LogoutDelay: cfg.Auth.LogoutDelay,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("auth service initialization failed")
	}
	catalogSvc := service.NewCatalogService(catalogClient, catalogCache, sse.NewHubNotifier(hub), cfg.Catalog.WriteDelay)

	// 6. Initialize handlers
	handlers := &handler.Handlers{
		Health:    handler.NewHealthHandler(catalogClient, redisClient),
		Auth:      handler.NewAuthHandler(authSvc, cfg.CookieSecure),
		Product:   handler.NewProductHandler(catalogSvc),
		Dashboard: handler.NewDashboardHandler(catalogSvc),
		Page:      handler.NewPageHandler(authSvc, catalogSvc, cfg.CookieSecure),
		SSE:       handler.NewSSEHandler(hub),
	}

	// 7. Initialize middleware
	authMw := middleware.NewAuthMiddleware(authSvc)

	// 8. Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handler.NewRouter(handlers, authMw, cfg.CORSHosts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	// 9. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 10. Start workers
	go worker.NewCacheWarmWorker(catalogSvc, cfg.Worker.CacheWarmInterval).Start(ctx)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("catalog", catalogClient.BaseURL()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop workers
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
