package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	serviceName = "CryptoHunter API"
	Version     = "1.0.0"
)

// StorageReporter names the pinning backend currently in use.
type StorageReporter interface {
	ActiveProvider() string
}

func RegisterRoutes(r gin.IRoutes, openAIConfigured bool, storage StorageReporter) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})

	r.GET("/health", func(c *gin.Context) {
		provider := "none"
		if storage != nil {
			provider = storage.ActiveProvider()
		}
		c.JSON(http.StatusOK, gin.H{
			"status":            "healthy",
			"openai_configured": openAIConfigured,
			"storage_provider":  provider,
			"version":           Version,
		})
	})
}
