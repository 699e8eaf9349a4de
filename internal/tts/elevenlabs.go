package tts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haguro/elevenlabs-go"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
)

const elevenLabsTimeout = 60 * time.Second

// speechSynthesizer is the part of the ElevenLabs client used here.
type speechSynthesizer interface {
	TextToSpeech(voiceID string, req elevenlabs.TextToSpeechRequest, queries ...elevenlabs.QueryFunc) ([]byte, error)
}

type ElevenLabs struct {
	apiKey       string
	voiceID      string
	model        string
	outputFormat string
	// newClient binds a client to the request context.
	newClient func(ctx context.Context) speechSynthesizer
	logger    *logger.Log
}

func NewElevenLabs(cfg *config.ElevenLabsConfig) (*ElevenLabs, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("ElevenLabs API key is required")
	}
	if cfg.VoiceID == "" {
		return nil, fmt.Errorf("ElevenLabs voice id is required")
	}

	e := &ElevenLabs{
		apiKey:       cfg.APIKey,
		voiceID:      cfg.VoiceID,
		model:        cfg.Model,
		outputFormat: cfg.OutputFormat,
		logger:       logger.Named("elevenlabs"),
	}
	e.newClient = func(ctx context.Context) speechSynthesizer {
		return elevenlabs.NewClient(ctx, e.apiKey, elevenLabsTimeout)
	}
	return e, nil
}

// voiceSettings shapes delivery per persona. Lower stability reads as
// more expressive.
func voiceSettings(p persona.Persona) *elevenlabs.VoiceSettings {
	settings := &elevenlabs.VoiceSettings{Stability: 0.5, SimilarityBoost: 0.75}
	switch p {
	case persona.Sarcastic:
		settings.Stability = 0.3
	case persona.Professional:
		settings.Stability = 0.75
	}
	return settings
}

// contentType maps an output_format such as "mp3_44100_128" to a MIME type.
func (e *ElevenLabs) contentType() string {
	switch {
	case strings.HasPrefix(e.outputFormat, "pcm"), strings.HasPrefix(e.outputFormat, "wav"):
		return "audio/wav"
	case strings.HasPrefix(e.outputFormat, "opus"):
		return "audio/ogg"
	default:
		return "audio/mpeg"
	}
}

func (e *ElevenLabs) GenerateAudio(ctx context.Context, text string, p persona.Persona) (*Audio, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	var queries []elevenlabs.QueryFunc
	if e.outputFormat != "" {
		queries = append(queries, elevenlabs.OutputFormat(e.outputFormat))
	}

	e.logger.Debug(fmt.Sprintf("Requesting ElevenLabs audio [voice:%s, model:%s, persona:%s]", e.voiceID, e.model, p))

	data, err := e.newClient(ctx).TextToSpeech(e.voiceID, elevenlabs.TextToSpeechRequest{
		Text:          text,
		ModelID:       e.model,
		VoiceSettings: voiceSettings(p),
	}, queries...)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio content received from ElevenLabs")
	}

	e.logger.Debug(fmt.Sprintf("Generated %d bytes of audio", len(data)))
	return &Audio{Data: data, ContentType: e.contentType()}, nil
}

func (e *ElevenLabs) Name() string {
	return "elevenlabs"
}
