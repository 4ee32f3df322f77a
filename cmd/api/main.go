package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wizerservices/tripz-api/internal/ai"
	"github.com/wizerservices/tripz-api/internal/config"
	"github.com/wizerservices/tripz-api/internal/logger"
	"github.com/wizerservices/tripz-api/internal/router"
	"github.com/wizerservices/tripz-api/internal/service"
	"go.uber.org/zap"
)

// init is called before the main function.
func init() {
	// Initialize structured logger (dev mode if GIN_MODE != release)
	isDev := os.Getenv("GIN_MODE") != "release"
	logger.Init(isDev)

	// Configure the runtime
	ConfigureRuntime()
}

// Entry point for the API.
func main() {
	defer logger.Sync()

	// A .env file is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Get().Fatal("failed to read .env", zap.Error(err))
	}

	// Load the config
	var cfg *config.Config
	if c, err := config.LoadConfig(); err != nil {
		logger.Get().Fatal("failed to load config", zap.Error(err))
	} else {
		cfg = c
	}

	// Check that all ENV variables are set
	if err := cfg.CheckConfigEnvFields(); err != nil {
		logger.Get().Fatal("missing required config fields", zap.Error(err))
	}

	// Load prompts from YAML, falling back to the embedded set
	prompts, err := loadPrompts(cfg.EnvVars.PromptsPath)
	if err != nil {
		logger.Get().Fatal("failed to load prompts", zap.Error(err))
	}
	cfg.Prompts = prompts

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build the provider clients
	model, err := ai.NewLanguageModel(ctx, cfg)
	if err != nil {
		logger.Get().Fatal("failed to create language model", zap.Error(err))
	}
	if closer, ok := model.(io.Closer); ok {
		defer closer.Close()
	}

	searchProvider, err := ai.NewSearchProvider(cfg)
	if err != nil {
		logger.Get().Fatal("failed to create search provider", zap.Error(err))
	}

	recommendationService, err := service.NewRecommendationService(cfg, searchProvider, model)
	if err != nil {
		logger.Get().Fatal("failed to create recommendation service", zap.Error(err))
	}

	// Create a new gin router
	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRouter(ctx, cfg, recommendationService)

	// Run the server
	logger.Get().Info("starting server",
		zap.String("port", cfg.EnvVars.Port),
		zap.String("llm_provider", cfg.EnvVars.LLMProvider),
		zap.String("search_provider", cfg.EnvVars.SearchProvider),
	)
	srv := &http.Server{
		Addr:    ":" + cfg.EnvVars.Port,
		Handler: r,
	}
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Get().Error("server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Get().Fatal("server failed", zap.Error(err))
	}
	// Wait for in-flight requests to drain
	<-shutdownDone
	logger.Get().Info("server stopped")
}

func loadPrompts(path string) (*config.Prompts, error) {
	if path == "" {
		return config.DefaultPrompts()
	}
	return config.LoadPrompts(path)
}

// ConfigureRuntime sets the number of operating system threads.
func ConfigureRuntime() {
	nuCPU := runtime.NumCPU()
	runtime.GOMAXPROCS(nuCPU)
	logger.Get().Info("runtime configured", zap.Int("cpus", nuCPU))
}
