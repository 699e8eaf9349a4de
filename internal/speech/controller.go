// Package speech drives one phrase-to-speech request at a time against a
// generation backend: validation, the POST exchange, playback of the
// returned audio and the caption shown to the user.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tahcohcat/voicegen/internal/logger"
	"github.com/tahcohcat/voicegen/internal/persona"
	"github.com/tahcohcat/voicegen/internal/playback"
)

// Player starts a clip and returns without waiting for it to finish.
type Player interface {
	Play(clip playback.Clip) error
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(clip playback.Clip) error

func (f PlayerFunc) Play(clip playback.Clip) error { return f(clip) }

// Controller owns the form state and request lifecycle. It is safe for
// concurrent use; at most one request is in flight at a time.
type Controller struct {
	client *Client
	player Player
	logger *logger.Log

	mu        sync.Mutex
	state     Snapshot
	observers map[int]func(Snapshot)
	nextID    int
}

func NewController(client *Client, player Player) *Controller {
	if player == nil {
		player = playback.Nop{}
	}
	return &Controller{
		client:    client,
		player:    player,
		logger:    logger.Named("speech"),
		state:     Snapshot{Phase: Idle, Persona: persona.Default},
		observers: make(map[int]func(Snapshot)),
	}
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Phase() Phase { return c.Snapshot().Phase }
func (c *Controller) Keywords() string { return c.Snapshot().Keywords }
func (c *Controller) Persona() persona.Persona { return c.Snapshot().Persona }
func (c *Controller) Loading() bool { return c.Snapshot().Loading() }
func (c *Controller) Caption() string { return c.Snapshot().Caption }
func (c *Controller) ErrorMessage() string { return c.Snapshot().Error }

func (c *Controller) SetKeywords(keywords string) {
	c.update(func(s *Snapshot) { s.Keywords = keywords })
}

func (c *Controller) SetPersona(p persona.Persona) error {
	if !p.Valid() {
		return fmt.Errorf("unknown persona %q", string(p))
	}
	c.update(func(s *Snapshot) { s.Persona = p })
	return nil
}

// Subscribe registers fn for every state change. fn runs on the goroutine
// that caused the change, outside the controller lock.
func (c *Controller) Subscribe(fn func(Snapshot)) (cancel func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.observers, id)
		c.mu.Unlock()
	}
}

// Dismiss clears a shown error without resubmitting.
func (c *Controller) Dismiss() {
	c.update(func(s *Snapshot) {
		if s.Phase != Failed {
			return
		}
		s.Error = ""
		if s.Caption != "" {
			s.Phase = Success
		} else {
			s.Phase = Idle
		}
	})
}

// Speak submits the current phrase and persona.
func (c *Controller) Speak(ctx context.Context) error {
	s := c.Snapshot()
	return c.Submit(ctx, s.Keywords, s.Persona)
}

// Submit validates the input and performs exactly one backend request.
// The returned error is one of *ValidationError, *ServerError,
// *NetworkError or ErrInFlight; the same outcome is reflected in the state.
func (c *Controller) Submit(ctx context.Context, keywords string, p persona.Persona) error {
	if err := c.begin(keywords, p); err != nil {
		return err
	}

	// Default covers a panic anywhere below: loading must still clear.
	outcome := func(s *Snapshot) {
		s.Phase = Failed
		s.Error = MsgNetwork
	}
	defer func() { c.update(outcome) }()

	caption, err := c.exchange(ctx, Request{Keywords: keywords, Persona: p})
	if err != nil {
		msg := err.Error()
		outcome = func(s *Snapshot) {
			s.Phase = Failed
			s.Error = msg
		}
		return err
	}

	outcome = func(s *Snapshot) {
		s.Phase = Success
		s.Caption = caption
	}
	return nil
}

// begin moves to Loading, or records why the submission was refused.
func (c *Controller) begin(keywords string, p persona.Persona) error {
	c.mu.Lock()
	if c.state.Phase == Loading {
		c.mu.Unlock()
		return ErrInFlight
	}

	var verr *ValidationError
	switch {
	case strings.TrimSpace(keywords) == "":
		verr = &ValidationError{Message: MsgEmptyKeywords}
	case !p.Valid():
		verr = &ValidationError{Message: fmt.Sprintf("Unknown persona %q.", string(p))}
	}

	if verr != nil {
		c.state.Phase = Failed
		c.state.Error = verr.Message
	} else {
		c.state.Phase = Loading
		c.state.Caption = ""
		c.state.Error = ""
	}
	snap, observers := c.state, c.observerList()
	c.mu.Unlock()

	notify(snap, observers)
	if verr != nil {
		return verr
	}
	return nil
}

func (c *Controller) exchange(ctx context.Context, req Request) (string, error) {
	c.logger.Debug(fmt.Sprintf("POST %s persona=%s", c.client.Endpoint(), req.Persona))

	reply, err := c.client.Generate(ctx, req)
	if err != nil {
		var netErr *NetworkError
		if errors.As(err, &netErr) {
			c.logger.WithError(netErr.Err).Error("Error generating speech")
		} else {
			c.logger.WithError(err).Warn("Backend rejected request")
		}
		return "", err
	}

	data, err := reply.Body.Bytes()
	if err != nil {
		c.logger.WithError(err).Error("Error reading audio")
		return "", &NetworkError{Err: err}
	}

	if err := c.player.Play(playback.Clip{Data: data, ContentType: reply.ContentType}); err != nil {
		c.logger.WithError(err).Warn("Audio playback did not start")
	}

	return reply.Caption, nil
}

func (c *Controller) update(fn func(s *Snapshot)) {
	c.mu.Lock()
	fn(&c.state)
	snap, observers := c.state, c.observerList()
	c.mu.Unlock()

	notify(snap, observers)
}

// observerList must be called with c.mu held.
func (c *Controller) observerList() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(c.observers))
	for _, fn := range c.observers {
		out = append(out, fn)
	}
	return out
}

func notify(s Snapshot, observers []func(Snapshot)) {
	for _, fn := range observers {
		fn(s)
	}
}
