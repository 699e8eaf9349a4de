package auth

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
)

const (
	sessionName      = "voicegen-session"
	authenticatedKey = "authenticated"
)

// Manager guards routes behind a single shared password. With no password
// hash configured every request is let through.
type Manager struct {
	store        *sessions.CookieStore
	passwordHash []byte
	logger       *logger.Log
}

func NewManager(cfg *config.AuthConfig) *Manager {
	log := logger.Named("auth")

	secret := cfg.SessionSecret
	if secret == "" {
		// sessions do not survive a restart
		secret = uuid.NewString() + uuid.NewString()
		if cfg.PasswordHash != "" {
			log.Warn("auth.session_secret not set, using a random per-process secret")
		}
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		store:        store,
		passwordHash: []byte(cfg.PasswordHash),
		logger:       log,
	}
}

func (m *Manager) Enabled() bool {
	return len(m.passwordHash) > 0
}

// HashPassword returns the bcrypt hash to put in auth.password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (m *Manager) Authenticated(r *http.Request) bool {
	if !m.Enabled() {
		return true
	}
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	ok, _ := session.Values[authenticatedKey].(bool)
	return ok
}

type loginRequest struct {
	Password string `json:"password"`
}

func (m *Manager) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if !m.Enabled() {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(m.passwordHash, []byte(req.Password)); err != nil {
		m.logger.Warn("Rejected login attempt")
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
		return
	}

	session, _ := m.store.Get(r, sessionName)
	session.Values[authenticatedKey] = true
	if err := session.Save(r, w); err != nil {
		m.logger.WithError(err).Error("Failed to save session")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to save session"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": true})
}

func (m *Manager) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := m.store.Get(r, sessionName)
	session.Values[authenticatedKey] = false
	session.Options.MaxAge = -1
	session.Save(r, w)
	writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
}

func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Authenticated(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Authentication required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
