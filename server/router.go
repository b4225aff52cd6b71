// Package server exposes the verification center to a host over HTTP.
package server

import (
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/tinfoilsh/verification-center/bridge"
	"github.com/tinfoilsh/verification-center/config"
)

// NewRouter creates and configures the Gin router with all routes.
func NewRouter(center *bridge.Center, cfg *config.Config, logger *log.Logger) *gin.Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = log.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(CORS(cfg.CORSOrigins))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "ok")
	})

	v1 := r.Group("/v1")
	{
		v1.POST("/messages", HandleMessage(center))

		v1.GET("/status", HandleStatus(center))
		v1.GET("/badge", HandleBadge(center))
		v1.GET("/steps", HandleSteps(center, cfg))
		v1.GET("/initial", HandleInitial(center, cfg))
		v1.GET("/document", HandleDocument(center))
	}

	return r
}
