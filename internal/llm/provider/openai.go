package provider

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiClient struct {
	providerOptions providerClientOptions
	client          openai.Client
}

type OpenAIClient ProviderClient

func newOpenAIClient(opts providerClientOptions) OpenAIClient {
	openaiClientOptions := []option.RequestOption{option.WithMaxRetries(0)}
	if opts.apiKey != "" {
		openaiClientOptions = append(openaiClientOptions, option.WithAPIKey(opts.apiKey))
	}
	if opts.baseURL != "" {
		openaiClientOptions = append(openaiClientOptions, option.WithBaseURL(opts.baseURL))
	}
	if opts.httpClient != nil {
		openaiClientOptions = append(openaiClientOptions, option.WithHTTPClient(opts.httpClient))
	}

	return &openaiClient{
		providerOptions: opts,
		client:          openai.NewClient(openaiClientOptions...),
	}
}

func (o *openaiClient) complete(ctx context.Context, prompt Prompt) (*ProviderResponse, error) {
	var messages []openai.ChatCompletionMessageParamUnion
	if prompt.System != "" {
		messages = append(messages, openai.SystemMessage(prompt.System))
	}
	messages = append(messages, openai.UserMessage(prompt.UserMessage()))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(o.providerOptions.model.APIModel),
		Messages:    messages,
		MaxTokens:   openai.Int(o.providerOptions.maxTokens),
		Temperature: openai.Float(o.providerOptions.temperature),
	}

	completion, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}

	choice := completion.Choices[0]
	return &ProviderResponse{
		Content: choice.Message.Content,
		Usage: TokenUsage{
			InputTokens:  completion.Usage.PromptTokens,
			OutputTokens: completion.Usage.CompletionTokens,
		},
		FinishReason: openaiFinishReason(choice.FinishReason),
	}, nil
}

func openaiFinishReason(reason string) FinishReason {
	switch reason {
	case "stop":
		return FinishReasonEndTurn
	case "length":
		return FinishReasonMaxTokens
	}
	return FinishReasonUnknown
}
