package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/tahcohcat/voicegen/internal/history"
	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
	"github.com/tahcohcat/voicegen/internal/tts"
)

const (
	CaptionHeader   = "X-Generated-Text"
	RequestIDHeader = "X-Request-ID"

	GenerationEvent = "generation"
)

// Sentencer turns keywords into a sentence.
type Sentencer interface {
	Sentence(ctx context.Context, keywords string, p persona.Persona) (string, error)
}

// HistoryStore persists successful generations.
type HistoryStore interface {
	Record(ctx context.Context, g *history.Generation) error
	Recent(ctx context.Context, limit int) ([]history.Generation, error)
}

// Publisher fans events out to live subscribers.
type Publisher interface {
	Publish(eventType string, data any) error
}

type GenerateRequest struct {
	Keywords string `json:"keywords"`
	Persona  string `json:"persona"`
}

type SpeechHandler struct {
	sentences Sentencer
	engine    tts.Tts
	history   HistoryStore
	feed      Publisher
	timeout   time.Duration
	logger    *logger.Log
}

// NewSpeechHandler wires the generation pipeline. history and feed may be nil.
func NewSpeechHandler(sentences Sentencer, engine tts.Tts, store HistoryStore, feed Publisher, timeout time.Duration) *SpeechHandler {
	return &SpeechHandler{
		sentences: sentences,
		engine:    engine,
		history:   store,
		feed:      feed,
		timeout:   timeout,
		logger:    logger.Named("api"),
	}
}

// POST /generate-audio - keywords and persona in, spoken sentence out
func (h *SpeechHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	w.Header().Set(RequestIDHeader, requestID)

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	keywords := strings.TrimSpace(req.Keywords)
	if keywords == "" {
		writeError(w, http.StatusBadRequest, "Keywords are required")
		return
	}
	p, err := persona.Parse(req.Persona)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	log := h.logger.Named(requestID[:8])
	log.Info(fmt.Sprintf("Generating [persona:%s, keywords:%q]", p, keywords))

	sentence, err := h.sentences.Sentence(ctx, keywords, p)
	if err != nil {
		log.WithError(err).Error("Sentence generation failed")
		writeError(w, http.StatusBadGateway, "Sentence generation failed")
		return
	}

	audio, err := h.engine.GenerateAudio(ctx, sentence, p)
	if err != nil {
		log.WithError(err).Error("Speech synthesis failed")
		writeError(w, http.StatusBadGateway, "Speech synthesis failed")
		return
	}

	h.recordGeneration(ctx, log, &history.Generation{
		ID:         requestID,
		Keywords:   keywords,
		Persona:    p,
		Sentence:   sentence,
		Engine:     h.engine.Name(),
		AudioBytes: len(audio.Data),
	})

	contentType := audio.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set(CaptionHeader, HeaderSafe(sentence))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(audio.Data); err != nil {
		log.WithError(err).Warn("Failed to stream audio")
	}
}

// recordGeneration stores and broadcasts g. Failures only get logged.
func (h *SpeechHandler) recordGeneration(ctx context.Context, log *logger.Log, g *history.Generation) {
	if h.history != nil {
		if err := h.history.Record(context.WithoutCancel(ctx), g); err != nil {
			log.WithError(err).Warn("Failed to record history")
		}
	}
	if h.feed != nil {
		if err := h.feed.Publish(GenerationEvent, g); err != nil {
			log.WithError(err).Warn("Failed to publish generation")
		}
	}
}

// GET /api/v1/history?limit=n - recent generations, newest first
func (h *SpeechHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{"generations": []history.Generation{}})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = n
	}

	generations, err := h.history.Recent(r.Context(), history.ClampLimit(limit))
	if err != nil {
		h.logger.WithError(err).Error("Failed to load history")
		writeError(w, http.StatusInternalServerError, "Failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"generations": generations})
}

// GET /api/v1/personas
func ListPersonas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"personas": persona.Catalog(),
		"default":  persona.Default,
	})
}

// GET /healthz
func (h *SpeechHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "tts": h.engine.Name()})
}

// HeaderSafe flattens s onto one line and drops control characters so it
// can travel in a response header.
func HeaderSafe(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
