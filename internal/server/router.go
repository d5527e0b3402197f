package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Endpoints lists the public routes, returned with every 404.
var Endpoints = []string{
	"GET /",
	"GET /puzzle",
	"GET /puzzle/{date}",
	"GET /stats",
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(requestMetrics())
	router.Use(requestLogger(s.logger))
	router.Use(s.corsMiddleware())

	router.GET("/", s.getCurrent)
	router.GET("/puzzle", s.getCurrent)
	router.GET("/puzzle/:date", s.getByDate)
	router.GET("/stats", s.getStats)
	// Preflight without an Origin header never reaches the cors handler's abort.
	router.OPTIONS("/*path", preflight)

	router.NoRoute(notFound)
	return router
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.cfg.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.AllowedOrigins
	}
	handler := cors.New(cfg)
	if !cfg.AllowAllOrigins {
		return handler
	}
	return func(c *gin.Context) {
		if c.GetHeader("Origin") == "" {
			c.Header("Access-Control-Allow-Origin", "*")
		}
		handler(c)
	}
}
