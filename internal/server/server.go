package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"github.com/five82/dreamline/internal/config"
	"github.com/five82/dreamline/internal/symbols"
)

const shutdownTimeout = 5 * time.Second

// The request collectors live in the default registry, so every router in the
// process shares one set.
var (
	requestMetricsOnce sync.Once
	requestMetrics     *ginprometheus.Prometheus
)

func sharedRequestMetrics() *ginprometheus.Prometheus {
	requestMetricsOnce.Do(func() {
		requestMetrics = ginprometheus.NewPrometheus("gin")
	})
	return requestMetrics
}

// Options configure the interpretation service.
type Options struct {
	Config  config.Server
	Catalog *symbols.Catalog
	Logger  *zap.Logger
}

// NewRouter assembles the gin engine: recovery, request logging, CORS,
// Prometheus metrics, the API routes, and the optional static site.
func NewRouter(opts Options) (*gin.Engine, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(gin.Recovery())
	router.Use(requestLogger(logger))
	router.Use(cors.New(corsConfig(opts.Config.CORSOrigins, logger)))

	sharedRequestMetrics().Use(router)

	NewHandler(opts.Catalog, logger).RegisterRoutes(router)

	if dir := strings.TrimSpace(opts.Config.StaticDir); dir != "" {
		files := http.FileServer(http.Dir(dir))
		router.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			files.ServeHTTP(c.Writer, c.Request)
		})
		logger.Info("Serving static files", zap.String("dir", dir))
	}

	return router, nil
}

func corsConfig(origins []string, logger *zap.Logger) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodHead, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept", "User-Agent", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	cfg.MaxAge = 12 * time.Hour

	var allowed []string
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		switch {
		case origin == "*":
			cfg.AllowAllOrigins = true
			return cfg
		case strings.HasPrefix(origin, "http://"), strings.HasPrefix(origin, "https://"):
			allowed = append(allowed, origin)
		case origin != "":
			logger.Warn("Ignoring CORS origin without scheme", zap.String("origin", origin))
		}
	}
	if len(allowed) == 0 {
		allowed = []string{"http://localhost:3000"}
		logger.Info("No usable CORS origins configured, allowing default", zap.String("origin", allowed[0]))
	}
	cfg.AllowOrigins = allowed
	return cfg
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	if opts.Config.Development() {
		gin.SetMode(gin.DebugMode)
	}

	router, err := NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         opts.Config.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("listen", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}
