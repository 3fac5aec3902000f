package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cryptohunter/core/internal/config"
	"github.com/cryptohunter/core/internal/middleware"
	"github.com/cryptohunter/core/internal/modules/ai"
	"github.com/cryptohunter/core/internal/modules/puzzle"
	"github.com/cryptohunter/core/internal/modules/storage/ipfs"
	"github.com/cryptohunter/core/internal/modules/treasure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App holds all application dependencies.
type App struct {
	cfg      *config.AppConfig
	router   *gin.Engine
	logger   *zap.Logger
	puzzles  *puzzle.Service
	storage  *ipfs.Service
	treasure *treasure.Service
}

// New wires providers, services and routes. Missing AI credentials are not
// fatal: the affected endpoints report the problem per request.
func New(logger *zap.Logger, cfg *config.AppConfig) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	completer, err := ai.NewCompleter(cfg.AI)
	if err != nil {
		logger.Warn("text generation unavailable", zap.String("provider", cfg.AI.Provider), zap.Error(err))
		completer = nil
	}
	images, err := ai.NewImageGenerator(cfg.AI)
	if err != nil {
		logger.Warn("image generation unavailable", zap.Error(err))
		images = nil
	}

	puzzles := puzzle.NewService(completer, images, logger.Named("puzzle"))
	storage := ipfs.NewService(cfg.Storage, logger.Named("ipfs"))
	maps := treasure.NewService(puzzles, storage, logger.Named("treasure"))
	logger.Info("services ready",
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("openai_configured", cfg.OpenAIConfigured()),
		zap.String("storage_provider", storage.ActiveProvider()),
	)

	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg)))

	app := &App{
		cfg:      cfg,
		router:   router,
		logger:   logger,
		puzzles:  puzzles,
		storage:  storage,
		treasure: maps,
	}
	app.registerRoutes()
	return app, nil
}

// Addr returns the listen address.
func (a *App) Addr() string { return fmt.Sprintf(":%d", a.cfg.Port) }

// Router returns the HTTP handler.
func (a *App) Router() http.Handler { return a.router }
