package tts

import (
	"context"
	"fmt"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/persona"
)

// Audio is synthesized speech ready to be sent to a browser.
type Audio struct {
	Data        []byte
	ContentType string
}

type Tts interface {
	// GenerateAudio synthesizes text in the persona's delivery.
	GenerateAudio(ctx context.Context, text string, p persona.Persona) (*Audio, error)
	Name() string
}

// New creates the engine selected by tts.type.
func New(ctx context.Context, cfg *config.Config) (Tts, error) {
	switch cfg.Tts.Type {
	case "elevenlabs":
		return NewElevenLabs(&cfg.ElevenLabs)
	case "google":
		return NewWebGoogleTTSClient(ctx, &cfg.GoogleTTS)
	case "openai":
		return NewOpenAITTS(&cfg.OpenAI)
	case "dummy", "":
		return NewDummyTts(), nil
	default:
		return nil, fmt.Errorf("unsupported tts type: %s", cfg.Tts.Type)
	}
}
