package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/llm/models"
	"github.com/sst/ghosttext/internal/llm/provider"
)

type stubProvider struct {
	content string
	err     error
	calls   int
}

func (s *stubProvider) Complete(ctx context.Context, prompt provider.Prompt) (*provider.ProviderResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &provider.ProviderResponse{Content: s.content}, nil
}

func (s *stubProvider) Model() models.Model {
	return models.SupportedModels[models.Claude3Haiku]
}

func testConfig() *config.Config {
	return &config.Config{
		Provider: models.ProviderAnthropic,
		Model:    models.Claude3Haiku,
		Providers: map[models.ModelProvider]config.ProviderConfig{
			models.ProviderAnthropic: {APIKey: "sk-test"},
		},
		Suggest: config.SuggestConfig{
			Debounce:    10 * time.Millisecond,
			Timeout:     time.Second,
			MinChars:    3,
			MaxTokens:   50,
			Temperature: 0.7,
			MaxContext:  2000,
			CacheTTL:    time.Minute,
			CacheSize:   16,
		},
	}
}

func TestSuggestOnce(t *testing.T) {
	stub := &stubProvider{content: " fox jumps"}
	a, err := NewWithProvider(testConfig(), stub)
	require.NoError(t, err)
	defer a.Shutdown()

	s, err := a.SuggestOnce(context.Background(), "The quick brown")
	require.NoError(t, err)
	assert.Equal(t, " fox jumps", s.Text)
	assert.Equal(t, "The quick brown", s.Basis)

	again, err := a.SuggestOnce(context.Background(), "The quick brown")
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, 1, stub.calls)
}

func TestSuggestOnceTooShort(t *testing.T) {
	stub := &stubProvider{content: "x"}
	a, err := NewWithProvider(testConfig(), stub)
	require.NoError(t, err)
	defer a.Shutdown()

	_, err = a.SuggestOnce(context.Background(), "hi")
	require.Error(t, err)
	assert.Zero(t, stub.calls)
}

func TestSuggestOnceError(t *testing.T) {
	stub := &stubProvider{err: errors.New("unreachable")}
	a, err := NewWithProvider(testConfig(), stub)
	require.NoError(t, err)
	defer a.Shutdown()

	_, err = a.SuggestOnce(context.Background(), "Hello")
	require.Error(t, err)
}

func TestNewUsesConfiguredEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"msg_01","type":"message","role":"assistant","model":"claude-3-haiku-20240307",
"content":[{"type":"text","text":" world"}],"stop_reason":"end_turn","usage":{"input_tokens":1,"output_tokens":1}}`)
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.Providers[models.ProviderAnthropic] = config.ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL}
	t.Setenv("CLAUDE_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	a, err := New(cfg)
	require.NoError(t, err)
	defer a.Shutdown()

	s, err := a.SuggestOnce(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, " world", s.Text)
}
