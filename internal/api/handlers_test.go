package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tahcohcat/voicegen/internal/history"
	"github.com/tahcohcat/voicegen/internal/persona"
	"github.com/tahcohcat/voicegen/internal/playback"
	"github.com/tahcohcat/voicegen/internal/speech"
	"github.com/tahcohcat/voicegen/internal/tts"
)

type fakeSentencer struct {
	sentence string
	err      error
}

func (f *fakeSentencer) Sentence(_ context.Context, keywords string, p persona.Persona) (string, error) {
	return f.sentence, f.err
}

type fakeTts struct {
	audio *tts.Audio
	err   error
	text  string
}

func (f *fakeTts) GenerateAudio(_ context.Context, text string, _ persona.Persona) (*tts.Audio, error) {
	f.text = text
	return f.audio, f.err
}

func (f *fakeTts) Name() string { return "fake" }

type memoryHistory struct {
	mu   sync.Mutex
	rows []history.Generation
}

func (m *memoryHistory) Record(_ context.Context, g *history.Generation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append([]history.Generation{*g}, m.rows...)
	return nil
}

func (m *memoryHistory) Recent(_ context.Context, limit int) ([]history.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.rows) {
		limit = len(m.rows)
	}
	return m.rows[:limit], nil
}

type recordingFeed struct {
	events []string
}

func (f *recordingFeed) Publish(eventType string, _ any) error {
	f.events = append(f.events, eventType)
	return nil
}

func newTestRouter(s Sentencer, engine tts.Tts, store HistoryStore, feed Publisher) http.Handler {
	h := NewSpeechHandler(s, engine, store, feed, 5*time.Second)
	return NewRouter(h, RouterOptions{AllowedOrigins: []string{"http://localhost:5173"}})
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate-audio", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerateAudio(t *testing.T) {
	engine := &fakeTts{audio: &tts.Audio{Data: []byte("mp3"), ContentType: "audio/mpeg"}}
	store := &memoryHistory{}
	feed := &recordingFeed{}
	h := newTestRouter(&fakeSentencer{sentence: "Oh joy,\na Monday."}, engine, store, feed)

	rec := post(t, h, `{"keywords":"monday coffee","persona":"Sarcastic"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if rec.Body.String() != "mp3" {
		t.Errorf("body = %q", rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get(CaptionHeader); got != "Oh joy, a Monday." {
		t.Errorf("caption = %q", got)
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("missing request id")
	}
	if engine.text != "Oh joy,\na Monday." {
		t.Errorf("tts text = %q", engine.text)
	}
	if len(store.rows) != 1 || store.rows[0].Persona != persona.Sarcastic || store.rows[0].Engine != "fake" {
		t.Errorf("history = %+v", store.rows)
	}
	if len(feed.events) != 1 || feed.events[0] != GenerationEvent {
		t.Errorf("feed = %v", feed.events)
	}
}

func TestGenerateAudioValidation(t *testing.T) {
	h := newTestRouter(&fakeSentencer{sentence: "x"}, &fakeTts{audio: &tts.Audio{Data: []byte("a")}}, nil, nil)

	tests := []struct {
		name, body string
	}{
		{"blank keywords", `{"keywords":"   ","persona":"Polite"}`},
		{"unknown persona", `{"keywords":"hi","persona":"Grumpy"}`},
		{"not json", `keywords=hi`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := post(t, h, tt.body); rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", rec.Code)
			}
		})
	}
}

func TestGenerateAudioUpstreamFailures(t *testing.T) {
	boom := errors.New("upstream down")

	h := newTestRouter(&fakeSentencer{err: boom}, &fakeTts{}, nil, nil)
	if rec := post(t, h, `{"keywords":"hi","persona":"Polite"}`); rec.Code != http.StatusBadGateway {
		t.Fatalf("llm failure status = %d", rec.Code)
	}

	h = newTestRouter(&fakeSentencer{sentence: "Hi."}, &fakeTts{err: boom}, nil, nil)
	if rec := post(t, h, `{"keywords":"hi","persona":"Polite"}`); rec.Code != http.StatusBadGateway {
		t.Fatalf("tts failure status = %d", rec.Code)
	}
}

func TestCORSExposesCaption(t *testing.T) {
	h := newTestRouter(&fakeSentencer{sentence: "Hi."}, &fakeTts{audio: &tts.Audio{Data: []byte("a"), ContentType: "audio/mpeg"}}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/generate-audio", strings.NewReader(`{"keywords":"hi","persona":"Polite"}`))
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, CaptionHeader) {
		t.Errorf("expose headers = %q", got)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	store := &memoryHistory{}
	for _, kw := range []string{"a", "b", "c"} {
		store.Record(context.Background(), &history.Generation{Keywords: kw, Persona: persona.Polite})
	}
	h := newTestRouter(&fakeSentencer{}, &fakeTts{}, store, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=2", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Generations []history.Generation `json:"generations"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Generations) != 2 || resp.Generations[0].Keywords != "c" {
		t.Fatalf("generations = %+v", resp.Generations)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/history?limit=lots", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad limit status = %d", rec.Code)
	}
}

func TestListPersonas(t *testing.T) {
	h := newTestRouter(&fakeSentencer{}, &fakeTts{}, nil, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/personas", nil))

	var resp struct {
		Personas []persona.Info `json:"personas"`
		Default  string         `json:"default"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Personas) != 3 || resp.Default != "Polite" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestHeaderSafe(t *testing.T) {
	tests := map[string]string{
		"plain":                "plain",
		"two\nlines":           "two lines",
		"  tabs\tand\r\nmore ": "tabs and more",
		"bell\x07":             "bell",
		"“curly” café":         "“curly” café",
	}
	for in, want := range tests {
		if got := HeaderSafe(in); got != want {
			t.Errorf("HeaderSafe(%q) = %q, want %q", in, got, want)
		}
	}
}

// The client controller talking to the real router.
func TestControllerAgainstBackend(t *testing.T) {
	h := newTestRouter(&fakeSentencer{sentence: "Good afternoon, and thank you."}, &fakeTts{audio: &tts.Audio{Data: []byte("mp3"), ContentType: "audio/mpeg"}}, nil, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	var played []playback.Clip
	ctrl := speech.NewController(speech.NewClient(srv.URL, srv.Client()), speech.PlayerFunc(func(c playback.Clip) error {
		played = append(played, c)
		return nil
	}))

	if err := ctrl.Submit(context.Background(), "afternoon thanks", persona.Professional); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if ctrl.Caption() != "Good afternoon, and thank you." {
		t.Errorf("caption = %q", ctrl.Caption())
	}
	if len(played) != 1 || string(played[0].Data) != "mp3" {
		t.Errorf("played = %+v", played)
	}

	err := ctrl.Submit(context.Background(), "x", persona.Persona("Grumpy"))
	if err == nil {
		t.Fatal("expected error for unknown persona")
	}
}
