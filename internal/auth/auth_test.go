package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/tahcohcat/voicegen/config"
)

func protected(m *Manager) http.Handler {
	return m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
}

func TestDisabledLetsEverythingThrough(t *testing.T) {
	m := NewManager(&config.AuthConfig{})
	if m.Enabled() {
		t.Fatal("expected auth disabled")
	}

	rec := httptest.NewRecorder()
	protected(m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestLoginFlow(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	m := NewManager(&config.AuthConfig{SessionSecret: "test-secret-test-secret", PasswordHash: string(hash)})

	rec := httptest.NewRecorder()
	protected(m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	m.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"wrong"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	m.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"password":"hunter2"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login set no cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	protected(m).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated status = %d", rec.Code)
	}
}

func TestLoginBadBody(t *testing.T) {
	m := NewManager(&config.AuthConfig{PasswordHash: "$2a$10$invalid"})
	rec := httptest.NewRecorder()
	m.LoginHandler(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("nope")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")) != nil {
		t.Fatal("hash does not match")
	}
}

func TestForgedCookieRejectedWithDefaultConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Auth.PasswordHash = string(hash)
	m := NewManager(&cfg.Auth)

	// a session signed with a guessable key must not pass
	for _, secret := range []string{"change-this-session-secret", "your-secret-key-change-this-in-production"} {
		forger := sessions.NewCookieStore([]byte(secret))
		forgeReq := httptest.NewRequest(http.MethodGet, "/", nil)
		forgeRec := httptest.NewRecorder()
		session, _ := forger.Get(forgeReq, sessionName)
		session.Values[authenticatedKey] = true
		if err := session.Save(forgeReq, forgeRec); err != nil {
			t.Fatal(err)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range forgeRec.Result().Cookies() {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		protected(m).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("cookie signed with %q: status = %d, want 401", secret, rec.Code)
		}
	}
}
