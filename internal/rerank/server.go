// Package rerank serves relevance reranking over HTTP. The service owns its
// scorer instance explicitly and reports readiness through /health instead
// of relying on shared global state.
package rerank

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

const DefaultTopK = 5

// Config holds service configuration.
type Config struct {
	Addr string // listen address, e.g. ":5001"

	// ModelName is reported by the info endpoint.
	ModelName string
}

// Service is the HTTP reranking service.
type Service struct {
	config  Config
	scorer  Scorer
	ready   atomic.Bool
	baseCtx context.Context
	cancel  context.CancelFunc
	httpSrv *http.Server
	logger  *log.Logger
}

// New creates a Service around an owned scorer instance. The service is not
// ready until Warmup (or SetReady) has run.
func New(cfg Config, scorer Scorer) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		config:  cfg,
		scorer:  scorer,
		baseCtx: ctx,
		cancel:  cancel,
		logger:  log.New(os.Stderr, "[stitch-rerank] ", log.LstdFlags),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /rerank", s.handleRerank)
	mux.HandleFunc("GET /{$}", s.handleInfo)

	s.httpSrv = &http.Server{
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}
	return s
}

// Warmup probes the scorer once and flips the readiness flag on success.
func (s *Service) Warmup(ctx context.Context) error {
	if _, err := s.scorer.Score(ctx, "warmup", []string{"warmup"}); err != nil {
		return err
	}
	s.ready.Store(true)
	return nil
}

// SetReady marks the service ready without a warmup probe.
func (s *Service) SetReady() {
	s.ready.Store(true)
}

// Ready reports whether the scorer has been warmed up.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// ListenAndServe starts the service and blocks until shutdown. The scorer
// is warmed up in the background so the listener comes up immediately;
// /rerank answers 503 until the warmup finishes.
func (s *Service) ListenAndServe() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		s.logger.Printf("received %s, shutting down...", sig)
		s.Shutdown()
	}()

	go func() {
		s.logger.Printf("warming up scorer...")
		if err := s.Warmup(s.baseCtx); err != nil {
			s.logger.Printf("scorer warmup failed: %v", err)
			return
		}
		s.logger.Printf("scorer ready")
	}()

	s.logger.Printf("listening on %s", s.config.Addr)
	s.httpSrv.Addr = s.config.Addr
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the service.
func (s *Service) Shutdown() {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	_ = s.httpSrv.Shutdown(shutdownCtx)
	s.cancel()
}

// Handler exposes the service mux, for tests.
func (s *Service) Handler() http.Handler {
	return s.httpSrv.Handler
}
