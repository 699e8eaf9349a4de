package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
)

type OpenAITTS struct {
	client *openai.Client
	model  string
	voice  string
	logger *logger.Log
}

func NewOpenAITTS(cfg *config.OpenAIConfig) (*OpenAITTS, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model, voice := cfg.TTSModel, cfg.TTSVoice
	if model == "" {
		model = string(openai.TTSModel1)
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}

	return &OpenAITTS{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		voice:  voice,
		logger: logger.Named("openai-tts"),
	}, nil
}

func (o *OpenAITTS) GenerateAudio(ctx context.Context, text string, p persona.Persona) (*Audio, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	o.logger.Debug(fmt.Sprintf("Requesting OpenAI speech [model:%s, voice:%s, persona:%s]", o.model, o.voice, p))

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          p.Modulation().SpeakingRate,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech failed: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio content received from OpenAI")
	}
	return &Audio{Data: data, ContentType: "audio/mpeg"}, nil
}

func (o *OpenAITTS) Name() string {
	return "openai"
}
