// Package history keeps a log of generated sentences.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tahcohcat/voicegen/internal/database"
	"github.com/tahcohcat/voicegen/internal/persona"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Generation is one successful keywords to audio exchange.
type Generation struct {
	ID         string          `json:"id" db:"id"`
	Keywords   string          `json:"keywords" db:"keywords"`
	Persona    persona.Persona `json:"persona" db:"persona"`
	Sentence   string          `json:"sentence" db:"sentence"`
	Engine     string          `json:"engine" db:"engine"`
	AudioBytes int             `json:"audio_bytes" db:"audio_bytes"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

type Store struct {
	db  *database.DB
	now func() time.Time
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Record stores g, filling ID and CreatedAt when unset.
func (s *Store) Record(ctx context.Context, g *Generation) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = s.now().UTC()
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO generations (id, keywords, persona, sentence, engine, audio_bytes, created_at)
		VALUES (:id, :keywords, :persona, :sentence, :engine, :audio_bytes, :created_at)`, g)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// Recent returns up to limit generations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Generation, error) {
	limit = ClampLimit(limit)

	generations := []Generation{}
	err := s.db.SelectContext(ctx, &generations, `
		SELECT id, keywords, persona, sentence, engine, audio_bytes, created_at
		FROM generations
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return generations, nil
}

// ClampLimit maps non-positive values to DefaultLimit and caps at MaxLimit.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}
