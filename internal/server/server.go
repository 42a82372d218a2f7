// Package server exposes the expense tracker over HTTP.
package server

import (
	"net/http"
	"time"

	"fjacquet/expense-ledger/internal/logging"
	"fjacquet/expense-ledger/internal/tracker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Options configures the router.
type Options struct {
	AllowedOrigins []string
}

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(svc *tracker.Service, logger logging.Logger, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(AccessLog(logger))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	h := &handler{svc: svc, logger: logger}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/categories", h.listCategories)
		v1.POST("/classify", h.classify)
		v1.POST("/expenses", h.addExpense)
		v1.GET("/expenses", h.listExpenses)
		v1.GET("/summary", h.summary)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": Version,
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
