package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/NavFS/internal/api/http"
	"github.com/GriffinCanCode/NavFS/internal/api/middleware"
	"github.com/GriffinCanCode/NavFS/internal/api/ws"
	"github.com/GriffinCanCode/NavFS/internal/backend"
	"github.com/GriffinCanCode/NavFS/internal/backend/dynlib"
	"github.com/GriffinCanCode/NavFS/internal/domain/session"
	"github.com/GriffinCanCode/NavFS/internal/domain/watch"
	"github.com/GriffinCanCode/NavFS/internal/fs/batch"
	fswatch "github.com/GriffinCanCode/NavFS/internal/fs/watch"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/config"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/NavFS/internal/providers/navigator"
	"github.com/GriffinCanCode/NavFS/internal/service"
	"github.com/GriffinCanCode/NavFS/internal/shared/paths"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	backends *backend.Registry
	sessions *session.Manager
	watches  *watch.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Development)

	logger.Info("Initializing NavFS server",
		zap.String("port", cfg.Server.Port),
		zap.String("root", cfg.Navigator.Root),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("navfs", logger.Logger)

	// Core components
	policy := paths.NewPolicy(cfg.Navigator.Root, cfg.Navigator.Denylist)
	engine := batch.New(cfg.Navigator.CopyBufferSize)
	backends := bindBackend(cfg, engine, logger)

	sessions := session.NewManager(policy.Root)
	watches := watch.NewManager(fswatch.Options{
		Backoff:      cfg.Watch.Backoff,
		PollInterval: cfg.Watch.PollInterval,
	}, cfg.Watch.EventBuffer, logger, metrics)

	// Command dispatch
	registry := service.NewRegistry()
	provider := navigator.NewProvider(&navigator.NavigatorOps{
		Policy:   policy,
		Sessions: sessions,
		Engine:   engine,
		Backends: backends,
		Watches:  watches,
		Metrics:  metrics,
	})
	if err := registry.Register(provider); err != nil {
		return nil, err
	}
	logger.Info("Navigator provider registered",
		zap.Int("tools", len(provider.Definition().Tools)))

	// Router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(registry, backends, sessions, watches, metrics)
	wsHandler := ws.NewHandler(watches, logger, metrics)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/services", handlers.ListServices)
	router.POST("/commands", handlers.ExecuteCommand)
	router.GET("/backend", handlers.Backend)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/metrics/json", handlers.MetricsJSON)

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		backends: backends,
		sessions: sessions,
		watches:  watches,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// bindBackend loads the dynamic backend when configured. A missing
// library is a logged warning plus native fallback, never fatal.
func bindBackend(cfg *config.Config, engine *batch.Engine, logger *logging.Logger) *backend.Registry {
	backends := backend.NewRegistry(backend.NewNative(engine))
	if cfg.Backend.Disabled {
		logger.Info("Dynamic backend disabled by configuration")
		return backends
	}

	adapter, err := dynlib.Open(cfg.Backend.Path)
	if err != nil {
		backends.Fallback(err)
		logger.Warn("Dynamic backend unavailable, using native",
			zap.Error(err))
		return backends
	}

	backends.Bind(adapter, adapter.Path())
	logger.Info("Dynamic backend loaded", zap.String("path", adapter.Path()))
	return backends
}

// Registry exposes the command registry, used by the one-shot mode.
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.watches.StopAll()
	if err := s.backends.Close(); err != nil {
		s.logger.Error("Failed to close backend", zap.Error(err))
	}

	s.logger.Sync()
	return nil
}
