package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tahcohcat/voicegen/internal/auth"
)

// RouterOptions holds the optional pieces of the HTTP surface.
type RouterOptions struct {
	Auth           *auth.Manager
	Feed           http.Handler
	AllowedOrigins []string
}

// NewRouter builds the backend's routes wrapped in CORS.
func NewRouter(h *SpeechHandler, opts RouterOptions) http.Handler {
	r := mux.NewRouter()

	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/personas", ListPersonas).Methods(http.MethodGet)
	if opts.Auth != nil {
		r.HandleFunc("/login", opts.Auth.LoginHandler).Methods(http.MethodPost)
		r.HandleFunc("/logout", opts.Auth.LogoutHandler).Methods(http.MethodPost)
	}

	// Session-guarded routes
	protected := r.NewRoute().Subrouter()
	if opts.Auth != nil {
		protected.Use(opts.Auth.Middleware)
	}
	protected.HandleFunc("/generate-audio", h.GenerateAudio).Methods(http.MethodPost)
	protected.HandleFunc("/api/v1/history", h.History).Methods(http.MethodGet)
	if opts.Feed != nil {
		protected.Handle("/ws", opts.Feed).Methods(http.MethodGet)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{CaptionHeader, RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
