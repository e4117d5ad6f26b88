// Package server exposes the dashboard over HTTP: statement upload and
// analysis, AI narrative, and the session-scoped chat panel.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/finlens/finlens/internal/chat"
	"github.com/finlens/finlens/internal/config"
	"github.com/finlens/finlens/internal/narrative"
	"github.com/finlens/finlens/internal/statement"
)

// Server wires the domain services to the HTTP surface.
type Server struct {
	cfg       config.Config
	cache     *statement.Cache
	narrative *narrative.Service
	chats     *chat.Manager
	sessions  *sessionStore
	aiEnabled bool
}

// New builds a dashboard server. narrativeSvc always responds (it handles
// the disabled-provider case itself); aiEnabled only drives the UI hint.
func New(cfg config.Config, narrativeSvc *narrative.Service, chats *chat.Manager) *Server {
	ttl := time.Duration(cfg.Server.SessionTTLMins) * time.Minute
	store := newSessionStore(ttl)
	store.onExpire = chats.Drop

	return &Server{
		cfg:       cfg,
		cache:     statement.NewCache(),
		narrative: narrativeSvc,
		chats:     chats,
		sessions:  store,
		aiEnabled: chats.Enabled(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/statements", s.handleUpload)
		r.Post("/narrative", s.handleNarrative)
		r.Get("/chat", s.handleChatHistory)
		r.Post("/chat", s.handleChatSend)
		r.Post("/chat/reset", s.handleChatReset)
	})

	return r
}

// requestLogger logs one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
