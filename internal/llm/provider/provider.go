package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sst/ghosttext/internal/llm/models"
)

type FinishReason string

const (
	FinishReasonEndTurn   FinishReason = "end_turn"
	FinishReasonMaxTokens FinishReason = "max_tokens"
	FinishReasonUnknown   FinishReason = "unknown"

	defaultTemperature = 0.7
	maxBackoff         = 2 * time.Second
)

type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

type ProviderResponse struct {
	Content      string
	Usage        TokenUsage
	FinishReason FinishReason
}

// Provider produces one continuation per call. Implementations are safe for
// concurrent use.
type Provider interface {
	Complete(ctx context.Context, prompt Prompt) (*ProviderResponse, error)
	Model() models.Model
}

type providerClientOptions struct {
	apiKey        string
	baseURL       string
	model         models.Model
	maxTokens     int64
	temperature   float64
	systemMessage string
	maxRetries    int
	httpClient    *http.Client
}

type ProviderClientOption func(*providerClientOptions)

// ProviderClient is the vendor-specific half of a provider. Errors are
// returned raw and classified by baseProvider.
type ProviderClient interface {
	complete(ctx context.Context, prompt Prompt) (*ProviderResponse, error)
}

type baseProvider[C ProviderClient] struct {
	options providerClientOptions
	client  C
}

func NewProvider(providerName models.ModelProvider, opts ...ProviderClientOption) (Provider, error) {
	clientOptions := providerClientOptions{
		temperature:   defaultTemperature,
		systemMessage: DefaultSystemPrompt,
	}
	for _, o := range opts {
		o(&clientOptions)
	}
	if clientOptions.model.ID == "" {
		model, ok := models.Lookup(providerName, "")
		if !ok {
			return nil, fmt.Errorf("provider not supported: %s", providerName)
		}
		clientOptions.model = model
	}
	if clientOptions.maxTokens <= 0 {
		clientOptions.maxTokens = clientOptions.model.DefaultMaxTokens
	}

	switch providerName {
	case models.ProviderAnthropic:
		return &baseProvider[AnthropicClient]{
			options: clientOptions,
			client:  newAnthropicClient(clientOptions),
		}, nil
	case models.ProviderOpenAI:
		return &baseProvider[OpenAIClient]{
			options: clientOptions,
			client:  newOpenAIClient(clientOptions),
		}, nil
	case models.ProviderGemini:
		client, err := newGeminiClient(clientOptions)
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}
		return &baseProvider[GeminiClient]{
			options: clientOptions,
			client:  client,
		}, nil
	}
	return nil, fmt.Errorf("provider not supported: %s", providerName)
}

func (p *baseProvider[C]) Model() models.Model {
	return p.options.model
}

func (p *baseProvider[C]) Complete(ctx context.Context, prompt Prompt) (*ProviderResponse, error) {
	if prompt.System == "" {
		prompt.System = p.options.systemMessage
	}

	attempts := 0
	for {
		attempts++
		response, err := p.client.complete(ctx, prompt)
		if err == nil {
			slog.Debug("completion received",
				"provider", p.options.model.Provider,
				"model", p.options.model.APIModel,
				"input_tokens", response.Usage.InputTokens,
				"output_tokens", response.Usage.OutputTokens,
				"finish_reason", response.FinishReason,
			)
			return response, nil
		}

		perr := classify(p.options.model.Provider, err)
		retry, after := shouldRetry(attempts, p.options.maxRetries, perr)
		if !retry {
			return nil, perr
		}
		slog.Warn("retrying completion", "provider", p.options.model.Provider, "kind", perr.Kind, "attempt", attempts, "after", after)

		timer := time.NewTimer(after)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, classify(p.options.model.Provider, ctx.Err())
		case <-timer.C:
		}
	}
}

// shouldRetry reports whether another attempt is allowed and how long to
// wait. Retry-After wins over the exponential backoff when present.
func shouldRetry(attempts, maxRetries int, err *Error) (bool, time.Duration) {
	if !err.Retryable() || attempts > maxRetries {
		return false, 0
	}
	if err.RetryAfter > 0 {
		return true, min(err.RetryAfter, maxBackoff)
	}
	backoff := 250 * time.Millisecond * time.Duration(1<<(attempts-1))
	jitter := backoff / 5
	return true, min(backoff+jitter, maxBackoff)
}

func WithAPIKey(apiKey string) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.apiKey = apiKey
	}
}

func WithBaseURL(baseURL string) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.baseURL = baseURL
	}
}

func WithModel(model models.Model) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.model = model
	}
}

func WithMaxTokens(maxTokens int64) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.maxTokens = maxTokens
	}
}

func WithTemperature(temperature float64) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.temperature = temperature
	}
}

func WithSystemMessage(systemMessage string) ProviderClientOption {
	return func(options *providerClientOptions) {
		if systemMessage != "" {
			options.systemMessage = systemMessage
		}
	}
}

func WithMaxRetries(maxRetries int) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.maxRetries = max(maxRetries, 0)
	}
}

func WithHTTPClient(client *http.Client) ProviderClientOption {
	return func(options *providerClientOptions) {
		options.httpClient = client
	}
}
