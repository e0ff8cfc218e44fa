package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	cache "github.com/RobsonDevCode/osvdesk/internal/caching"
	"github.com/RobsonDevCode/osvdesk/internal/clients"
	"github.com/RobsonDevCode/osvdesk/internal/configuration"
	previewrendererservice "github.com/RobsonDevCode/osvdesk/internal/services/previewRendererService"
	remoteloaderservice "github.com/RobsonDevCode/osvdesk/internal/services/remoteLoaderService"
	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

const shutdownGrace = 10 * time.Second

// Services are the collaborators behind the HTTP endpoints.
type Services struct {
	Blobs    clients.BlobReader
	Upstream clients.TriageClientService
	Renderer previewrendererservice.PreviewRendererService
	Loader   remoteloaderservice.RemoteLoaderService
	Fetcher  triageservice.FetcherService
}

type Server struct {
	settings configuration.ServerSettings
	columns  []string
	sources  map[string]configuration.ProxySource
	services Services
	cache    *cache.Cache
	logger   *zap.Logger
	now      func() time.Time
}

func NewServer(config *configuration.Config, services Services, cache *cache.Cache, logger *zap.Logger) *Server {
	return &Server{
		settings: config.ServerSettings,
		columns:  config.TriageSettings.Columns,
		sources:  proxySources(config.ServerSettings.ProxySources),
		services: services,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /triage/proxy", s.handleProxy)
	mux.HandleFunc("POST /api/render_preview", s.handleRenderPreview)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/download", s.handleDownload)
	mux.HandleFunc("GET /api/load", s.handleLoad)
	mux.HandleFunc("GET /api/triage", s.handleTriage)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return logRequests(s.logger, mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.settings.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	s.logger.Info("listening", zap.String("address", s.settings.Address))

	select {
	case err := <-errChan:
		return xerrors.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return xerrors.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
