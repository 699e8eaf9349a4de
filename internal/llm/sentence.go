package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
)

// ErrEmptySentence is returned when the model produced nothing usable.
var ErrEmptySentence = errors.New("llm returned an empty sentence")

// SentenceGenerator turns keywords into one sentence in a persona's voice.
type SentenceGenerator struct {
	llm    LLM
	logger *logger.Log
}

func NewSentenceGenerator(model LLM) *SentenceGenerator {
	return &SentenceGenerator{llm: model, logger: logger.Named("sentence")}
}

// Prompt builds the instruction sent to the model.
func Prompt(keywords string, p persona.Persona) string {
	return fmt.Sprintf(`Convert these keywords into a natural %s sentence:

Keywords: %s

Output only the final sentence. No explanation.`, strings.ToLower(string(p)), keywords)
}

func (g *SentenceGenerator) Sentence(ctx context.Context, keywords string, p persona.Persona) (string, error) {
	raw, err := g.llm.GenerateResponse(ctx, Prompt(keywords, p))
	if err != nil {
		return "", err
	}

	sentence := CleanSentence(raw)
	if sentence == "" {
		g.logger.Warn(fmt.Sprintf("unusable model output [response:%q]", raw))
		return "", ErrEmptySentence
	}

	g.logger.Info(fmt.Sprintf("Generated sentence: %s", sentence))
	return sentence, nil
}

// CleanSentence keeps the first non-empty line of a model reply and strips
// a "Sentence:" style label and wrapping quotes.
func CleanSentence(raw string) string {
	var line string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}

	if i := strings.Index(line, ":"); i > 0 && i < 20 {
		label := strings.ToLower(line[:i])
		if strings.Contains(label, "sentence") || strings.Contains(label, "output") {
			line = strings.TrimSpace(line[i+1:])
		}
	}

	for _, q := range []string{`"`, "'", "“", "”", "`"} {
		line = strings.TrimPrefix(line, q)
		line = strings.TrimSuffix(line, q)
	}
	return strings.TrimSpace(line)
}
