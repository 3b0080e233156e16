package suggest

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/sst/ghosttext/internal/llm/provider"
	"github.com/sst/ghosttext/internal/status"
)

const (
	DefaultTimeout    = 5 * time.Second
	DefaultMaxContext = 2000
)

// Client turns Requests into Results. Failures are logged and reported as
// transient status warnings; they are returned in Result.Err, never raised.
type Client struct {
	provider   provider.Provider
	cache      *Cache
	timeout    time.Duration
	maxContext int
}

type ClientOption func(*Client)

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithMaxContext caps the runes sent on each side of the cursor.
func WithMaxContext(runes int) ClientOption {
	return func(c *Client) {
		if runes > 0 {
			c.maxContext = runes
		}
	}
}

func WithCache(cache *Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

func NewClient(p provider.Provider, opts ...ClientOption) *Client {
	c := &Client{
		provider:   p,
		timeout:    DefaultTimeout,
		maxContext: DefaultMaxContext,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Suggest(ctx context.Context, req Request) Result {
	before := lastRunes(req.Before(), c.maxContext)
	after := firstRunes(req.After(), c.maxContext)
	model := c.provider.Model().ID

	if text, ok := c.cache.Get(model, before, after); ok {
		slog.Debug("suggestion cache hit", "request_id", req.ID)
		return Result{Request: req, Suggestion: c.suggestion(req, text, true)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	resp, err := c.provider.Complete(ctx, provider.Prompt{Before: before, After: after})
	if err != nil {
		c.reportFailure(req, err)
		return Result{Request: req, Err: err}
	}

	text := Normalize(resp.Content, before)
	slog.Debug("suggestion received",
		"request_id", req.ID,
		"elapsed", time.Since(started),
		"empty", text == "",
	)
	if text == "" {
		return Result{Request: req}
	}
	c.cache.Set(model, before, after, text)
	return Result{Request: req, Suggestion: c.suggestion(req, text, false)}
}

func (c *Client) suggestion(req Request, text string, cached bool) Suggestion {
	return Suggestion{
		RequestID: req.ID,
		Text:      text,
		Basis:     req.Text,
		Cursor:    req.Cursor,
		Cached:    cached,
	}
}

func (c *Client) reportFailure(req Request, err error) {
	var perr *provider.Error
	kind := provider.ErrorKindUnknown
	if errors.As(err, &perr) {
		kind = perr.Kind
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = provider.ErrorKindTimeout
	} else if errors.Is(err, context.Canceled) {
		kind = provider.ErrorKindCanceled
	}

	slog.Warn("suggestion failed", "request_id", req.ID, "kind", kind, "error", err)
	if kind == provider.ErrorKindCanceled {
		return
	}
	status.Warn(failureMessage(kind))
}

func failureMessage(kind provider.ErrorKind) string {
	switch kind {
	case provider.ErrorKindAuth:
		return "Suggestions unavailable: API key rejected"
	case provider.ErrorKindRateLimit:
		return "Suggestions paused: rate limited"
	case provider.ErrorKindNetwork:
		return "Suggestions unavailable: network unreachable"
	case provider.ErrorKindTimeout:
		return "Suggestion timed out"
	case provider.ErrorKindMalformed:
		return "Suggestion discarded: malformed response"
	case provider.ErrorKindServer:
		return "Suggestions unavailable: provider error"
	}
	return "Suggestion failed"
}

// Normalize cleans a raw model continuation for display after before.
// Trailing whitespace is dropped, leading whitespace is kept unless before
// already ends in whitespace, and an echoed copy of before is removed. An
// empty string means there is nothing to suggest.
func Normalize(content, before string) string {
	content = strings.TrimRightFunc(content, unicode.IsSpace)

	for _, prefix := range []string{before, strings.TrimSpace(before)} {
		if prefix != "" && strings.HasPrefix(content, prefix) {
			content = content[len(prefix):]
			break
		}
	}

	if before != "" && strings.TrimRightFunc(before, unicode.IsSpace) != before {
		content = strings.TrimLeftFunc(content, unicode.IsSpace)
	}
	if strings.TrimSpace(content) == "" {
		return ""
	}
	return content
}

func lastRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
