package app

import (
	"github.com/cryptohunter/core/internal/modules/puzzle"
	"github.com/cryptohunter/core/internal/modules/storage/ipfs"
	"github.com/cryptohunter/core/internal/modules/system/health"
	"github.com/cryptohunter/core/internal/modules/treasure"
	"github.com/cryptohunter/core/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes() {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	health.RegisterRoutes(r, a.cfg.OpenAIConfigured(), a.storage)

	api := r.Group("/api")
	puzzle.NewHandler(a.puzzles).RegisterRoutes(api)
	ipfs.NewHandler(a.storage).RegisterRoutes(api)
	treasure.NewHandler(a.treasure).RegisterRoutes(api)
}
