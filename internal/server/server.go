// file: internal/server/server.go
// version: 1.5.0
// guid: 7d2c9e4f-1a6b-4c8d-b3e5-9f4a0c7d2e8b

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shopkit/storefront/internal/auth"
	"github.com/shopkit/storefront/internal/cache"
	"github.com/shopkit/storefront/internal/config"
	"github.com/shopkit/storefront/internal/metrics"
	"github.com/shopkit/storefront/internal/server/middleware"
	"github.com/shopkit/storefront/internal/store"
)

// Version is the API version reported by the root endpoint.
const Version = "1.0.0"

const serviceName = "storefront-backend"

// Document collections used by the route handlers.
const (
	collectionUsers    = "users"
	collectionProducts = "products"
	collectionCarts    = "carts"
	collectionOrders   = "orders"
)

// Cache key prefixes for the per-user response cache.
const (
	cachePrefixCart   = "cart"
	cachePrefixOrders = "orders"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	store      store.Store
	verifier   auth.Verifier
	cache      *cache.ResponseCache
	cfg        config.Config
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// GetDefaultServerConfig returns the default listen configuration.
func GetDefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Host:         "0.0.0.0",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new server instance with its dependencies injected.
// The cache is passed in rather than created here so tests can drive it with
// a fake clock.
func NewServer(cfg config.Config, st store.Store, verifier auth.Verifier, respCache *cache.ResponseCache) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(cfg.LogLevel))
	router.Use(corsMiddleware(cfg.CORSOrigins))
	router.Use(middleware.NewClientRateLimiter(600, 60).Middleware())
	router.Use(middleware.MaxRequestBodySize(1 << 20))

	// Register metrics (idempotent)
	metrics.Register()

	server := &Server{
		router:   router,
		store:    st,
		verifier: verifier,
		cache:    respCache,
		cfg:      cfg,
	}

	server.setupRoutes()

	return server
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start starts the HTTP server and blocks until SIGINT/SIGTERM, then shuts
// down gracefully.
func (s *Server) Start(cfg ServerConfig) error {
	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	go func() {
		log.Printf("[INFO] Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[INFO] Shutting down server...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[INFO] Server exited")
	return nil
}

// setupRoutes configures all the routes
func (s *Server) setupRoutes() {
	// Prometheus metrics endpoint (standard path)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/ready", s.readinessCheck)
	s.router.GET("/", s.root)

	requireAuth := middleware.RequireAuth(s.verifier)

	// Profile
	s.router.GET("/auth/me", requireAuth, s.getProfile)
	s.router.POST("/auth/profile", requireAuth, s.upsertProfile)

	// Products are public and never cached: there is no per-user key for
	// them, and a global cache key is deliberately not implemented.
	s.router.GET("/products", s.listProducts)
	s.router.GET("/products/:id", s.getProduct)

	// Cart
	s.router.GET("/cart", requireAuth, s.getCart)
	s.router.POST("/cart/add", requireAuth, s.addToCart)
	s.router.POST("/cart/remove", requireAuth, s.removeFromCart)
	s.router.POST("/cart/update", requireAuth, s.updateCart)

	// Orders
	s.router.POST("/orders", requireAuth, s.placeOrder)
	s.router.GET("/orders", requireAuth, s.listOrders)
}

// corsMiddleware echoes only configured origins.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Header("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
			c.Header("Access-Control-Max-Age", "3600")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// logLevelRank orders log levels for the minimum-level gate. Unknown levels
// rank as INFO.
func logLevelRank(level string) int {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return 0
	case "WARN":
		return 2
	case "ERROR":
		return 3
	default:
		return 1
	}
}

// requestLogger logs every request with timing and records HTTP metrics.
// Lines below minLevel are suppressed; metrics are always recorded.
func requestLogger(minLevel string) gin.HandlerFunc {
	threshold := logLevelRank(minLevel)
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		duration := time.Since(start)
		userID := "anonymous"
		if identity, ok := middleware.CurrentIdentity(c); ok {
			userID = identity.UID
		}

		// Metric path label uses the route pattern to bound cardinality.
		routePath := c.FullPath()
		if routePath == "" {
			routePath = "unmatched"
		}
		metrics.IncHTTPRequest(method, routePath, fmt.Sprintf("%d", status))
		metrics.ObserveHTTPDuration(routePath, duration)

		level := "INFO"
		if status >= 500 {
			level = "ERROR"
		} else if status >= 400 {
			level = "WARN"
		}
		if logLevelRank(level) >= threshold {
			log.Printf("[%s] %s %s %d %.2fms user=%s", level, method, path, status,
				float64(duration.Microseconds())/1000.0, userID)
		}
	}
}

// Handler functions for health and root endpoints

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"service":     serviceName,
		"environment": s.cfg.Environment,
	})
}

func (s *Server) readinessCheck(c *gin.Context) {
	// A cheap store round-trip; the document does not need to exist.
	if _, err := s.store.DocumentExists(collectionProducts, "readiness-probe"); err != nil {
		log.Printf("[ERROR] Readiness check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "not ready",
			"service": serviceName,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": serviceName,
	})
}

func (s *Server) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Storefront Backend API",
		"version":     Version,
		"environment": s.cfg.Environment,
	})
}
