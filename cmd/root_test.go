package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/ghosttext/internal/app"
	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/format"
	"github.com/sst/ghosttext/internal/llm/models"
	"github.com/sst/ghosttext/internal/llm/provider"
	"github.com/sst/ghosttext/internal/pubsub"
)

func TestCheckStdinPipe(t *testing.T) {
	// Save original stdin
	origStdin := os.Stdin

	// Restore original stdin when test completes
	defer func() {
		os.Stdin = origStdin
	}()

	// Test case 1: Data is piped in
	t.Run("WithPipedData", func(t *testing.T) {
		// Create a pipe
		r, w, err := os.Pipe()
		if err != nil {
			t.Fatalf("Failed to create pipe: %v", err)
		}

		// Replace stdin with our pipe
		os.Stdin = r

		// Write test data to the pipe
		testData := "test piped input"
		go func() {
			defer w.Close()
			w.Write([]byte(testData))
		}()

		// Call the function
		data, hasPiped := checkStdinPipe()

		// Check results
		if !hasPiped {
			t.Error("Expected hasPiped to be true, got false")
		}
		if data != testData {
			t.Errorf("Expected data to be %q, got %q", testData, data)
		}
	})

	// Test case 2: No data is piped in (simulated terminal)
	t.Run("WithoutPipedData", func(t *testing.T) {
		// Create a temporary file to simulate a terminal
		tmpFile, err := os.CreateTemp("", "terminal-sim")
		if err != nil {
			t.Fatalf("Failed to create temp file: %v", err)
		}
		defer os.Remove(tmpFile.Name())
		defer tmpFile.Close()

		// Open the file for reading
		f, err := os.Open(tmpFile.Name())
		if err != nil {
			t.Fatalf("Failed to open temp file: %v", err)
		}
		defer f.Close()

		// Replace stdin with our file
		os.Stdin = f

		// Call the function
		data, hasPiped := checkStdinPipe()

		// Check results
		if hasPiped {
			t.Error("Expected hasPiped to be false, got true")
		}
		if data != "" {
			t.Errorf("Expected data to be empty, got %q", data)
		}
	})
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestForwardPumpsEvents(t *testing.T) {
	broker := pubsub.NewBroker[string]()
	defer broker.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	rec := &recordingSender{}
	done := make(chan error, 1)
	go func() { done <- forward(ctx, "test", broker.Subscribe, rec) }()

	require.Eventually(t, func() bool {
		broker.Publish(pubsub.EventTypeCreated, "hello")
		return rec.count() > 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("forward did not stop after cancel")
	}
}

func TestForwardStopsWhenServiceShutsDown(t *testing.T) {
	broker := pubsub.NewBroker[string]()
	done := make(chan error, 1)
	go func() { done <- forward(context.Background(), "test", broker.Subscribe, &recordingSender{}) }()

	require.Eventually(t, func() bool { return broker.GetSubscriberCount() == 1 }, time.Second, 5*time.Millisecond)
	broker.Shutdown()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("forward did not stop after shutdown")
	}
}

type stubProvider struct {
	content string
}

func (s stubProvider) Complete(ctx context.Context, prompt provider.Prompt) (*provider.ProviderResponse, error) {
	return &provider.ProviderResponse{Content: s.content}, nil
}

func (s stubProvider) Model() models.Model {
	return models.SupportedModels[models.Claude3Haiku]
}

func newTestApp(t *testing.T, content string) *app.App {
	t.Helper()
	cfg := &config.Config{
		Provider: models.ProviderAnthropic,
		Model:    models.Claude3Haiku,
		Suggest: config.SuggestConfig{
			Debounce:   time.Millisecond,
			Timeout:    time.Second,
			MinChars:   3,
			MaxContext: 2000,
		},
	}
	a, err := app.NewWithProvider(cfg, stubProvider{content: content})
	require.NoError(t, err)
	t.Cleanup(a.Shutdown)
	return a
}

func TestCompleteOnceText(t *testing.T) {
	a := newTestApp(t, " fox jumps")
	var out bytes.Buffer
	require.NoError(t, completeOnce(context.Background(), a, "The quick brown", format.TextFormat, true, &out))
	assert.Equal(t, " fox jumps\n", out.String())
}

func TestCompleteOnceJSON(t *testing.T) {
	a := newTestApp(t, " fox jumps")
	var out bytes.Buffer
	require.NoError(t, completeOnce(context.Background(), a, "The quick brown", format.JSONFormat, true, &out))

	var got map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "The quick brown", got["text"])
	assert.Equal(t, " fox jumps", got["suggestion"])
}

func TestCompleteOnceTooShort(t *testing.T) {
	a := newTestApp(t, "x")
	var out bytes.Buffer
	err := completeOnce(context.Background(), a, "Hi", format.TextFormat, true, &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}
