package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/tahcohcat/voicegen/internal/persona"
)

const (
	GeneratePath  = "/generate-audio"
	CaptionHeader = "X-Generated-Text"
)

// Request is the JSON body sent to the backend.
type Request struct {
	Keywords string          `json:"keywords"`
	Persona  persona.Persona `json:"persona"`
}

// Doer performs HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs the audio generation exchange with one backend.
type Client struct {
	endpoint string
	doer     Doer
}

func NewClient(baseURL string, doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		endpoint: strings.TrimRight(baseURL, "/") + GeneratePath,
		doer:     doer,
	}
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Reply is a successful backend response. The caller owns Body.
type Reply struct {
	Status      int
	ContentType string
	Caption     string
	Body        *Body
}

// Generate posts one request. Transport failures come back as *NetworkError,
// non-2xx statuses as *ServerError with the body discarded unread.
func (c *Client) Generate(ctx context.Context, req Request) (*Reply, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &ServerError{Status: resp.StatusCode}
	}

	return &Reply{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Caption:     resp.Header.Get(CaptionHeader),
		Body:        newBody(resp.Body),
	}, nil
}

// Body is a response body that can be read at most once.
type Body struct {
	mu       sync.Mutex
	rc       io.ReadCloser
	consumed bool
}

func newBody(rc io.ReadCloser) *Body {
	return &Body{rc: rc}
}

// Bytes reads and closes the body. Every later call returns ErrBodyConsumed.
func (b *Body) Bytes() ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumed {
		return nil, ErrBodyConsumed
	}
	b.consumed = true
	defer b.rc.Close()

	return io.ReadAll(b.rc)
}

// Close releases an unread body. It is a no-op after Bytes.
func (b *Body) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.consumed {
		return nil
	}
	b.consumed = true
	return b.rc.Close()
}
