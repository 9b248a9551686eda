// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"time"

	"jobswipe-api/internal/auth"
	"jobswipe-api/internal/common/config"
	"jobswipe-api/internal/common/errors"
	"jobswipe-api/internal/common/logger"
	"jobswipe-api/internal/proximity"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server wires the HTTP surface over the domain services.
type Server struct {
	config     *config.Config
	logger     logger.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// New builds the router with all middleware and routes registered.
func New(cfg *config.Config, log logger.Logger, proximitySvc *proximity.Service, authSvc *auth.Service) *Server {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(cors.New(corsConfig(cfg)))
	if cfg.RateLimit.Enabled {
		router.Use(RateLimit(cfg.RateLimit))
	}

	errs := errors.NewErrorHandler(log)
	jobsHandler := NewJobsHandler(proximitySvc, errs, log)
	authHandler := NewAuthHandler(authSvc, errs, log)

	router.GET("/health", HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		jobs := api.Group("/jobs")
		jobs.GET("/proximity", jobsHandler.GetProximity)
		jobs.POST("/proximity", OptionalAuth(authSvc), jobsHandler.PostProximity)
		jobs.GET("/locations", jobsHandler.ListLocations)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.GET("/me", RequireAuth(authSvc), authHandler.Me)
	}

	return &Server{
		config: cfg,
		logger: log,
		router: router,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr(),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		},
	}
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down", nil)
	return s.httpServer.Shutdown(ctx)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", headerRequestID}
	corsCfg.MaxAge = 12 * time.Hour

	if len(cfg.Server.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	return corsCfg
}
