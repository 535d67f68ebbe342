// Package httpserver assembles the gin engine, middleware chain and routes.
package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"converse-server/internal/config"
	"converse-server/internal/infrastructure/database"
	middleware "converse-server/internal/interfaces/httpserver/middlewares"
	"converse-server/internal/interfaces/httpserver/routes/auth"
	v1 "converse-server/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine    *gin.Engine
	v1Route   *v1.V1Route
	authRoute *auth.AuthRoute
	db        *gorm.DB
	config    *config.Config
}

func NewHTTPServer(
	v1Route *v1.V1Route,
	authRoute *auth.AuthRoute,
	db *gorm.DB,
	cfg *config.Config,
	logger zerolog.Logger,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		engine:    gin.New(),
		v1Route:   v1Route,
		authRoute: authRoute,
		db:        db,
		config:    cfg,
	}
	server.engine.Use(gin.Recovery())
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness requires a live database connection.
	server.engine.GET("/readyz", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), server.db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	return &server
}

// Engine exposes the router for tests.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

func (s *HTTPServer) Run() error {
	root := s.engine.Group("/")
	s.authRoute.RegisterRouter(root)
	s.v1Route.RegisterRouter(root)

	return s.engine.Run(fmt.Sprintf(":%d", s.config.HTTPPort))
}
