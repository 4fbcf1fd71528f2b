package api

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/clipset/api/types"
	"github.com/killallgit/clipset/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	serverConfig       config.ServerConfig
	rateLimitConfig    config.RateLimitConfig
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Cancels every request context; see Shutdown
	cancelBase context.CancelFunc
	inFlight   sync.WaitGroup

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(serverConfig config.ServerConfig, rateLimitConfig config.RateLimitConfig) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	maxHeaderBytes := serverConfig.MaxHeaderBytes
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = 1 << 20 // 1 MB
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())

	return &Server{
		engine:          engine,
		serverConfig:    serverConfig,
		rateLimitConfig: rateLimitConfig,
		rateLimiters:    &sync.Map{},
		cleanupStop:     make(chan struct{}),
		cancelBase:      cancelBase,
		httpServer: &http.Server{
			Addr:           fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
			Handler:        engine,
			ReadTimeout:    serverConfig.ReadTimeout,
			WriteTimeout:   serverConfig.WriteTimeout,
			MaxHeaderBytes: maxHeaderBytes,
			BaseContext:    func(net.Listener) context.Context { return baseCtx },
		},
	}
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	s.setupMiddleware()
	return s.setupRoutes()
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(s.trackInFlight())
	s.engine.Use(gin.Logger())
	s.engine.Use(CORS())

	if s.serverConfig.MaxBodyBytes > 0 {
		s.engine.Use(RequestSizeLimitWithSize(s.serverConfig.MaxBodyBytes))
	} else {
		s.engine.Use(RequestSizeLimit())
	}
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	var limiter gin.HandlerFunc
	if s.rateLimitConfig.Enabled && s.rateLimitConfig.RequestsPerSecond > 0 {
		burst := s.rateLimitConfig.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = PerClientRateLimit(s.rateLimiters, s.cleanupStop, &s.cleanupInitialized, s.rateLimitConfig.RequestsPerSecond, burst)
	}
	return RegisterRoutes(s.engine, s.dependencies, limiter)
}

// trackInFlight counts running handlers so Shutdown can wait for them
func (s *Server) trackInFlight() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.inFlight.Add(1)
		defer s.inFlight.Done()
		c.Next()
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(listener)
}

// Serve accepts connections on listener
func (s *Server) Serve(listener net.Listener) error {
	return s.httpServer.Serve(listener)
}

// Shutdown gracefully shuts down the server. Handlers still running when ctx
// expires have their request contexts cancelled, and Shutdown returns only
// once every handler has finished.
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		log.Printf("[WARN] Shutdown deadline passed, cancelling in-flight requests")
	}
	s.cancelBase()
	s.inFlight.Wait()
	return err
}
