package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Client     ClientConfig     `mapstructure:"client"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Ollama     OllamaConfig     `mapstructure:"ollama"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Tts        TtsConfig        `mapstructure:"tts"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	GoogleTTS  GoogleTTSConfig  `mapstructure:"google_tts"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig configures the audio generation backend.
type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"` // seconds
}

// ClientConfig configures the voicegen command line client.
type ClientConfig struct {
	BackendURL string `mapstructure:"backend_url"`
	Timeout    int    `mapstructure:"timeout"` // seconds, 0 keeps the transport default
	Player     string `mapstructure:"player"`  // command line, empty uses the OS opener
	SpoolDir   string `mapstructure:"spool_dir"`
}

// LLM provider selection
type LLMConfig struct {
	Provider string `mapstructure:"provider"` // "gemini", "ollama", "openai" or "anthropic"
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"` // Optional, defaults to the Gemini API
}

type OllamaConfig struct {
	Host    string `mapstructure:"host"`
	Model   string `mapstructure:"model"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

type OpenAIConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BaseURL   string `mapstructure:"base_url"` // Optional, defaults to OpenAI API
	MaxTokens int    `mapstructure:"max_tokens"`
	TTSModel  string `mapstructure:"tts_model"`
	TTSVoice  string `mapstructure:"tts_voice"`
}

type AnthropicConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

type TtsConfig struct {
	Type string `mapstructure:"type"` // "elevenlabs", "google", "openai" or "dummy"
}

type ElevenLabsConfig struct {
	APIKey       string `mapstructure:"api_key"`
	VoiceID      string `mapstructure:"voice_id"`
	Model        string `mapstructure:"model"`
	OutputFormat string `mapstructure:"output_format"`
}

type GoogleTTSConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	Voice           string `mapstructure:"voice"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
	PasswordHash  string `mapstructure:"password_hash"` // bcrypt, empty disables auth
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// TimeoutDuration returns the client transport timeout.
func (c ClientConfig) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Provider credentials under their usual names
	v.BindEnv("gemini.api_key", "VOICEGEN_GEMINI_API_KEY", "GEMINI_API_KEY")
	v.BindEnv("elevenlabs.api_key", "VOICEGEN_ELEVENLABS_API_KEY", "ELEVENLABS_API_KEY")
	v.BindEnv("openai.api_key", "VOICEGEN_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("anthropic.api_key", "VOICEGEN_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	v.BindEnv("google_tts.credentials_file", "VOICEGEN_GOOGLE_TTS_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")
	v.BindEnv("server.port", "VOICEGEN_SERVER_PORT", "PORT")

	setDefaults(v)

	// Allow environment variables
	v.SetEnvPrefix("VOICEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("server.request_timeout", 60)

	v.SetDefault("client.backend_url", "http://127.0.0.1:8000")
	v.SetDefault("client.timeout", 0)
	v.SetDefault("client.spool_dir", "")

	v.SetDefault("llm.provider", "gemini")

	v.SetDefault("gemini.model", "gemini-2.5-pro")

	v.SetDefault("ollama.host", "http://localhost:11434")
	v.SetDefault("ollama.model", "llama3.2")
	v.SetDefault("ollama.timeout", 30)

	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 200)
	v.SetDefault("openai.tts_model", "tts-1")
	v.SetDefault("openai.tts_voice", "alloy")

	v.SetDefault("anthropic.model", "claude-3-5-haiku-latest")
	v.SetDefault("anthropic.max_tokens", 200)

	v.SetDefault("tts.type", "elevenlabs")

	v.SetDefault("elevenlabs.voice_id", "6MoEUz34rbRrmmyxgRm4")
	v.SetDefault("elevenlabs.model", "eleven_flash_v2_5")
	v.SetDefault("elevenlabs.output_format", "mp3_44100_128")

	v.SetDefault("google_tts.voice", "en-US-Chirp-HD-F")

	v.SetDefault("database.path", "./voicegen.db")

	// empty secret makes the server pick a random one per process
	v.SetDefault("auth.session_secret", "")
	v.SetDefault("auth.password_hash", "")

	v.SetDefault("log.level", "info")
}
