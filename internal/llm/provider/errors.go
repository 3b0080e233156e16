package provider

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"

	"github.com/sst/ghosttext/internal/llm/models"
)

type ErrorKind string

const (
	ErrorKindNetwork    ErrorKind = "network"
	ErrorKindAuth       ErrorKind = "auth"
	ErrorKindRateLimit  ErrorKind = "rate_limit"
	ErrorKindServer     ErrorKind = "server"
	ErrorKindMalformed  ErrorKind = "malformed"
	ErrorKindTimeout    ErrorKind = "timeout"
	ErrorKindCanceled   ErrorKind = "canceled"
	ErrorKindBadRequest ErrorKind = "bad_request"
	ErrorKindUnknown    ErrorKind = "unknown"
)

var ErrMalformedResponse = errors.New("malformed response")

// Error is the single error type returned from Provider.Complete.
type Error struct {
	Kind       ErrorKind
	Provider   models.ModelProvider
	StatusCode int
	RetryAfter time.Duration
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same request could succeed on a later attempt.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case ErrorKindRateLimit, ErrorKindServer, ErrorKindNetwork:
		return true
	}
	return false
}

func classify(provider models.ModelProvider, err error) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}

	out := &Error{Kind: ErrorKindUnknown, Provider: provider, Err: err}

	var anthropicErr *anthropic.Error
	var openaiErr *openai.Error
	var geminiErr genai.APIError
	var netErr net.Error
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.Canceled):
		out.Kind = ErrorKindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		out.Kind = ErrorKindTimeout
	case errors.Is(err, ErrMalformedResponse):
		out.Kind = ErrorKindMalformed
	case errors.As(err, &anthropicErr):
		out.StatusCode = anthropicErr.StatusCode
		out.Kind = kindForStatus(anthropicErr.StatusCode)
		if anthropicErr.Response != nil {
			out.RetryAfter = parseRetryAfter(anthropicErr.Response.Header)
		}
	case errors.As(err, &openaiErr):
		out.StatusCode = openaiErr.StatusCode
		out.Kind = kindForStatus(openaiErr.StatusCode)
		if openaiErr.Response != nil {
			out.RetryAfter = parseRetryAfter(openaiErr.Response.Header)
		}
	case errors.As(err, &geminiErr):
		out.StatusCode = geminiErr.Code
		out.Kind = kindForStatus(geminiErr.Code)
	case errors.As(err, &netErr) && netErr.Timeout():
		out.Kind = ErrorKindTimeout
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		out.Kind = ErrorKindNetwork
	}
	return out
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrorKindAuth
	case code == http.StatusTooManyRequests:
		return ErrorKindRateLimit
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return ErrorKindTimeout
	case code >= 500:
		return ErrorKindServer
	case code >= 400:
		return ErrorKindBadRequest
	}
	return ErrorKindUnknown
}

func parseRetryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	if ms := header.Get("Retry-After-Ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			return time.Duration(v) * time.Millisecond
		}
	}
	if s := header.Get("Retry-After"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return time.Duration(v) * time.Second
		}
		if t, err := http.ParseTime(s); err == nil {
			if d := time.Until(t); d > 0 {
				return d
			}
		}
	}
	return 0
}

func kindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return ""
}

func IsAuth(err error) bool      { return kindOf(err) == ErrorKindAuth }
func IsRateLimit(err error) bool { return kindOf(err) == ErrorKindRateLimit }
func IsNetwork(err error) bool   { return kindOf(err) == ErrorKindNetwork }
func IsTimeout(err error) bool   { return kindOf(err) == ErrorKindTimeout }
func IsMalformed(err error) bool { return kindOf(err) == ErrorKindMalformed }
func IsCanceled(err error) bool  { return kindOf(err) == ErrorKindCanceled }
