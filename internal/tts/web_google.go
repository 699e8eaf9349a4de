package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	ttspb "cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
	"google.golang.org/api/option"
)

type WebGoogleTTS struct {
	client *texttospeech.Client
	voice  string
	logger *logger.Log
}

func NewWebGoogleTTSClient(ctx context.Context, cfg *config.GoogleTTSConfig) (*WebGoogleTTS, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := texttospeech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google TTS client: %w", err)
	}

	return &WebGoogleTTS{
		client: client,
		voice:  cfg.Voice,
		logger: logger.Named("google-tts"),
	}, nil
}

// Extract language code from voice name (e.g., "en-US-Chirp-HD-F" -> "en-US")
func extractLanguageCode(voice string) string {
	parts := strings.Split(voice, "-")
	if len(parts) >= 2 {
		return fmt.Sprintf("%s-%s", parts[0], parts[1])
	}
	// Fallback to en-US if we can't parse
	return "en-US"
}

// synthesisRequest builds the request for text spoken by persona p.
func (g *WebGoogleTTS) synthesisRequest(text string, p persona.Persona) *ttspb.SynthesizeSpeechRequest {
	mod := p.Modulation()
	return &ttspb.SynthesizeSpeechRequest{
		Input: &ttspb.SynthesisInput{
			InputSource: &ttspb.SynthesisInput_Text{Text: text},
		},
		Voice: &ttspb.VoiceSelectionParams{
			LanguageCode: extractLanguageCode(g.voice),
			Name:         g.voice,
		},
		AudioConfig: &ttspb.AudioConfig{
			AudioEncoding:   ttspb.AudioEncoding_MP3,
			SpeakingRate:    mod.SpeakingRate,
			Pitch:           mod.Pitch,
			SampleRateHertz: 22050,
		},
	}
}

func (g *WebGoogleTTS) GenerateAudio(ctx context.Context, text string, p persona.Persona) (*Audio, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	g.logger.Debug(fmt.Sprintf("Generating Google TTS audio with voice: %s, persona: %s", g.voice, p))

	resp, err := g.client.SynthesizeSpeech(ctx, g.synthesisRequest(text, p))
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}

	if len(resp.AudioContent) == 0 {
		return nil, fmt.Errorf("empty audio content received from Google TTS")
	}

	g.logger.Debug(fmt.Sprintf("Generated %d bytes of MP3 audio", len(resp.AudioContent)))
	return &Audio{Data: resp.AudioContent, ContentType: "audio/mpeg"}, nil
}

func (g *WebGoogleTTS) Name() string {
	return "google"
}

func (g *WebGoogleTTS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
