package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/RewanshChoudhary/OceanRepo/pkg/engine"
	"github.com/RewanshChoudhary/OceanRepo/pkg/metrics"
)

// Server holds the HTTP interface and the underlying matching Engine.
type Server struct {
	Engine *engine.Engine

	cfg        *Config
	httpServer *http.Server

	taskManager *TaskManager
	watcher     *CorpusWatcher
	authToken   string
}

// NewServer initializes the HTTP server around an existing Engine.
// The initial corpus load is the caller's responsibility (see
// ReloadCorpus); the server starts fine with an empty index.
func NewServer(eng *engine.Engine, cfg *Config) (*Server, error) {
	s := &Server{
		Engine:      eng,
		cfg:         cfg,
		taskManager: NewTaskManager(),
		authToken:   cfg.AuthToken,
	}

	mux := http.NewServeMux()
	s.registerHTTPHandlers(mux)

	// Chain middlewares: Recovery -> Logging -> Auth -> Mux.
	// Recovery must be outer-most to catch everything.
	var handler http.Handler = mux
	handler = s.authMiddleware(handler)
	handler = s.LoggingMiddleware(handler)
	handler = s.RecoveryMiddleware(handler)

	rootMux := http.NewServeMux()
	rootMux.HandleFunc("GET /healthz", s.handleHealthz)
	rootMux.Handle("GET /metrics", metricsHandler())
	rootMux.Handle("/", handler)

	s.httpServer = &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: rootMux,
	}

	if cfg.Corpus.Watch {
		watcher, err := NewCorpusWatcher(s, cfg.Corpus)
		if err != nil {
			return nil, err
		}
		s.watcher = watcher
	}

	return s, nil
}

// ReloadCorpus rebuilds the reference index from the configured corpus
// files and swaps it into the engine.
func (s *Server) ReloadCorpus() error {
	sequences, err := s.cfg.Corpus.SequenceSource()
	if err != nil {
		return err
	}
	taxonomy, err := s.cfg.Corpus.TaxonomySource()
	if err != nil {
		return err
	}

	start := time.Now()
	if err := s.Engine.Rebuild(sequences, taxonomy); err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := s.Engine.Stats()
	metrics.IndexedSpecies.Set(float64(stats.SpeciesCount))
	metrics.IndexRebuildDuration.Observe(elapsed.Seconds())

	slog.Info("Reference index rebuilt",
		"species", stats.SpeciesCount,
		"profiled_kmers", stats.ProfiledKmers,
		"k", stats.KmerSize,
		"duration", elapsed.String(),
	)
	return nil
}

// Run starts the corpus watcher (if configured) and the HTTP server, and
// blocks until the server stops.
func (s *Server) Run() error {
	if s.watcher != nil {
		s.watcher.Start()
	}

	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the watcher and drains the HTTP server.
func (s *Server) Shutdown() {
	if s.watcher != nil {
		s.watcher.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		slog.Error("HTTP shutdown error", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
