package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	alertService "github.com/reshetovitsme/product-scout/internal/modules/alerts/service"
	analyticsService "github.com/reshetovitsme/product-scout/internal/modules/analytics/service"
	channelService "github.com/reshetovitsme/product-scout/internal/modules/channel/service"
	syncService "github.com/reshetovitsme/product-scout/internal/modules/channelsync/service"
	contactService "github.com/reshetovitsme/product-scout/internal/modules/contacts/service"
	favoriteService "github.com/reshetovitsme/product-scout/internal/modules/favorites/service"
	feedService "github.com/reshetovitsme/product-scout/internal/modules/feed/service"
	messageService "github.com/reshetovitsme/product-scout/internal/modules/message/service"
	noteService "github.com/reshetovitsme/product-scout/internal/modules/notes/service"
	productService "github.com/reshetovitsme/product-scout/internal/modules/product/service"
	savedSearchService "github.com/reshetovitsme/product-scout/internal/modules/savedsearch/service"
	taggingService "github.com/reshetovitsme/product-scout/internal/modules/tagging/service"
	"github.com/reshetovitsme/product-scout/internal/shared/config"
	"github.com/reshetovitsme/product-scout/internal/shared/errors"
	"github.com/samber/oops"
	sloghttp "github.com/samber/slog-http"
)

// Services are the modules exposed over HTTP.
type Services struct {
	Products      *productService.Service
	Channels      *channelService.Service
	Joined        *syncService.Service
	Messages      *messageService.Service
	Feed          *feedService.Service
	Notes         *noteService.Service
	Alerts        *alertService.Service
	Tagging       *taggingService.Service
	SavedSearches *savedSearchService.Service
	Favorites     *favoriteService.Service
	Contacts      *contactService.Service
	Analytics     *analyticsService.Service
}

// Server handles the JSON API and the RSS feeds
type Server struct {
	cfg    *config.Config
	svc    Services
	logger *slog.Logger
	server *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, svc Services, logger *slog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		svc:    svc,
		logger: logger,
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler builds the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /rss/{channelID}", s.handleFeed)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	s.registerProductRoutes(mux)
	s.registerChannelRoutes(mux)
	s.registerWorkspaceRoutes(mux)

	handler := sloghttp.Recovery(mux)
	return sloghttp.NewWithConfig(s.logger, sloghttp.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		WithRequestID:    true,
	})(handler)
}

// Start listens on the configured port until Shutdown is called. After
// Shutdown it returns nil without listening.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return oops.With("addr", s.server.Addr).Wrap(err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type envelope struct {
	Status  string `json:"status"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Error encoding response", "error", err)
	}
}

func (s *Server) ok(w http.ResponseWriter, data any) {
	s.writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data})
}

func (s *Server) created(w http.ResponseWriter, data any) {
	s.writeJSON(w, http.StatusCreated, envelope{Status: "success", Data: data})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, envelope{Status: "error", Message: err.Error()})
}

// statusFor maps the error taxonomy onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrInvalidInput), errors.Is(err, errors.ErrNothingSelected):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errors.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return oops.With("context", "decoding request body").Wrapf(errors.ErrInvalidInput, "%v", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	html := `<!DOCTYPE html>
<html>
<head>
    <title>Product Scout</title>
    <style>
        body { font-family: Arial, sans-serif; max-width: 800px; margin: 50px auto; padding: 20px; }
        h1 { color: #333; }
        .info { background: #f5f5f5; padding: 15px; border-radius: 5px; margin: 20px 0; }
        code { background: #e8e8e8; padding: 2px 6px; border-radius: 3px; }
    </style>
</head>
<body>
    <h1>Product Scout</h1>
    <div class="info">
        <p>Wholesale listings collected from Telegram channels.</p>
        <p>Search products: <code>/api/products/search?query=earbuds</code></p>
        <p>Channel feed: <code>/rss/{channelID}</code> (add <code>?format=atom</code> or <code>?format=json</code>)</p>
    </div>
    <p><a href="/health">Health Check</a></p>
</body>
</html>`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
