package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type anthropicClient struct {
	providerOptions providerClientOptions
	client          anthropic.Client
}

type AnthropicClient ProviderClient

func newAnthropicClient(opts providerClientOptions) AnthropicClient {
	anthropicClientOptions := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.apiKey != "" {
		anthropicClientOptions = append(anthropicClientOptions, option.WithAPIKey(opts.apiKey))
	}
	if opts.baseURL != "" {
		anthropicClientOptions = append(anthropicClientOptions, option.WithBaseURL(opts.baseURL))
	}
	if opts.httpClient != nil {
		anthropicClientOptions = append(anthropicClientOptions, option.WithHTTPClient(opts.httpClient))
	}

	return &anthropicClient{
		providerOptions: opts,
		client:          anthropic.NewClient(anthropicClientOptions...),
	}
}

func (a *anthropicClient) complete(ctx context.Context, prompt Prompt) (*ProviderResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.providerOptions.model.APIModel),
		MaxTokens:   a.providerOptions.maxTokens,
		Temperature: anthropic.Float(a.providerOptions.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.UserMessage())),
		},
	}
	if prompt.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: prompt.System}}
	}

	message, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var content strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}
	if content.Len() == 0 && len(message.Content) == 0 {
		return nil, fmt.Errorf("%w: no content blocks", ErrMalformedResponse)
	}

	return &ProviderResponse{
		Content: content.String(),
		Usage: TokenUsage{
			InputTokens:  message.Usage.InputTokens,
			OutputTokens: message.Usage.OutputTokens,
		},
		FinishReason: anthropicFinishReason(string(message.StopReason)),
	}, nil
}

func anthropicFinishReason(reason string) FinishReason {
	switch reason {
	case "end_turn", "stop_sequence":
		return FinishReasonEndTurn
	case "max_tokens":
		return FinishReasonMaxTokens
	}
	return FinishReasonUnknown
}
