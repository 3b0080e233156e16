package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiClient struct {
	providerOptions providerClientOptions
	client          *genai.Client
}

type GeminiClient ProviderClient

func newGeminiClient(opts providerClientOptions) (GeminiClient, error) {
	config := &genai.ClientConfig{
		APIKey:     opts.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.httpClient,
	}
	if opts.baseURL != "" {
		config.HTTPOptions.BaseURL = opts.baseURL
	}

	client, err := genai.NewClient(context.Background(), config)
	if err != nil {
		return nil, err
	}
	return &geminiClient{providerOptions: opts, client: client}, nil
}

func (g *geminiClient) complete(ctx context.Context, prompt Prompt) (*ProviderResponse, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.providerOptions.temperature)),
		MaxOutputTokens: int32(g.providerOptions.maxTokens),
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.providerOptions.model.APIModel, genai.Text(prompt.UserMessage()), config)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	out := &ProviderResponse{
		Content:      resp.Text(),
		FinishReason: geminiFinishReason(resp.Candidates[0].FinishReason),
	}
	if resp.UsageMetadata != nil {
		out.Usage = TokenUsage{
			InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

func geminiFinishReason(reason genai.FinishReason) FinishReason {
	switch reason {
	case genai.FinishReasonStop:
		return FinishReasonEndTurn
	case genai.FinishReasonMaxTokens:
		return FinishReasonMaxTokens
	}
	return FinishReasonUnknown
}
