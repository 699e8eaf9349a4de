package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tahcohcat/voicegen/config"
	"github.com/tahcohcat/voicegen/internal/persona"
)

type fakeLLM struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeLLM) GenerateResponse(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

func (f *fakeLLM) IsModelAvailable(context.Context) error { return nil }

func TestPrompt(t *testing.T) {
	p := Prompt("coffee, monday", persona.Sarcastic)
	if !strings.Contains(p, "natural sarcastic sentence") {
		t.Errorf("prompt missing persona: %q", p)
	}
	if !strings.Contains(p, "Keywords: coffee, monday") {
		t.Errorf("prompt missing keywords: %q", p)
	}
	if !strings.HasSuffix(p, "Output only the final sentence. No explanation.") {
		t.Errorf("prompt missing instruction: %q", p)
	}
}

func TestCleanSentence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello there.", "Hello there."},
		{"  \n\"Oh great, another Monday.\"\n", "Oh great, another Monday."},
		{"Sentence: Good morning to you.", "Good morning to you."},
		{"“Kindly review the report.”", "Kindly review the report."},
		{"First line.\nSecond line.", "First line."},
		{"Note: this stays", "Note: this stays"},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := CleanSentence(tt.in); got != tt.want {
			t.Errorf("CleanSentence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSentence(t *testing.T) {
	f := &fakeLLM{reply: "\"Well, hello world. How are you?\""}
	g := NewSentenceGenerator(f)

	got, err := g.Sentence(context.Background(), "hello world", persona.Polite)
	if err != nil {
		t.Fatalf("Sentence: %v", err)
	}
	if got != "Well, hello world. How are you?" {
		t.Fatalf("sentence = %q", got)
	}
	if !strings.Contains(f.prompt, "natural polite sentence") {
		t.Errorf("prompt = %q", f.prompt)
	}
}

func TestSentenceEmpty(t *testing.T) {
	g := NewSentenceGenerator(&fakeLLM{reply: "\n\n"})
	if _, err := g.Sentence(context.Background(), "x", persona.Polite); !errors.Is(err, ErrEmptySentence) {
		t.Fatalf("error = %v, want ErrEmptySentence", err)
	}
}

func TestSentencePropagatesError(t *testing.T) {
	boom := errors.New("quota exceeded")
	g := NewSentenceGenerator(&fakeLLM{err: boom})
	if _, err := g.Sentence(context.Background(), "x", persona.Polite); !errors.Is(err, boom) {
		t.Fatalf("error = %v", err)
	}
}

func TestNewLLMClient(t *testing.T) {
	cfg := &config.Config{}

	cfg.LLM.Provider = "telepathy"
	if _, err := NewLLMClient(context.Background(), cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	cfg.LLM.Provider = "openai"
	if _, err := NewLLMClient(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing OpenAI key")
	}

	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.Model = "gpt-4o-mini"
	if _, err := NewLLMClient(context.Background(), cfg); err != nil {
		t.Fatalf("openai client: %v", err)
	}

	cfg.LLM.Provider = "ollama"
	cfg.Ollama.Host = "http://localhost:11434"
	cfg.Ollama.Model = "llama3.2"
	if _, err := NewLLMClient(context.Background(), cfg); err != nil {
		t.Fatalf("ollama client: %v", err)
	}

	cfg.LLM.Provider = "anthropic"
	if _, err := NewLLMClient(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing Anthropic key")
	}
}
