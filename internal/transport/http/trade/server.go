// Package tradehttp serves the order-entry HTTP API.
package tradehttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tradedesk/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

const defaultAddr = ":5000"

// Server wraps the gin engine behind /execute_trade and /healthz.
type Server struct {
	addr    string
	router  *gin.Engine
	handler http.Handler
}

type ServerConfig struct {
	Addr        string
	CORSOrigins []string
	Executor    TradeExecutor
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Executor == nil {
		return nil, errors.New("trade http server requires an executor")
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	router, err := NewRouter(cfg.Executor)
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Register(engine.Group("/"))

	var handler http.Handler = engine
	if len(cfg.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler(engine)
		logger.Infof("[http] CORS enabled for %v", cfg.CORSOrigins)
	}
	return &Server{addr: cfg.Addr, router: engine, handler: handler}, nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		client := c.ClientIP()
		c.Next()
		logger.Debugf("[http] %s %s status=%d ip=%s dur=%s", method, path, c.Writer.Status(), client, time.Since(start))
	}
}

func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Handler exposes the full handler chain, CORS included, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.handler, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Infof("[http] listening on %s", s.addr)

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
