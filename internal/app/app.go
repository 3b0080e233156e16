package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sst/ghosttext/internal/config"
	"github.com/sst/ghosttext/internal/llm/provider"
	"github.com/sst/ghosttext/internal/logging"
	"github.com/sst/ghosttext/internal/status"
	"github.com/sst/ghosttext/internal/suggest"
)

type App struct {
	Logs   logging.Service
	Status status.Service

	Provider provider.Provider
	Client   *suggest.Client

	config *config.Config
	cache  *suggest.Cache
}

// New builds the provider for the configured model and wires the suggestion
// client and the background services around it.
func New(cfg *config.Config) (*App, error) {
	model := cfg.SelectedModel()
	p, err := provider.NewProvider(
		cfg.Provider,
		provider.WithAPIKey(cfg.APIKey(cfg.Provider)),
		provider.WithBaseURL(cfg.BaseURL(cfg.Provider)),
		provider.WithModel(model),
		provider.WithMaxTokens(cfg.Suggest.MaxTokens),
		provider.WithTemperature(cfg.Suggest.Temperature),
		provider.WithSystemMessage(cfg.Suggest.SystemPrompt),
		provider.WithMaxRetries(cfg.Suggest.MaxRetries),
	)
	if err != nil {
		slog.Error("Failed to create provider", "provider", cfg.Provider, "error", err)
		return nil, err
	}
	return NewWithProvider(cfg, p)
}

// NewWithProvider is New with an already constructed provider.
func NewWithProvider(cfg *config.Config, p provider.Provider) (*App, error) {
	if logging.GetService() == nil {
		if err := logging.InitService(); err != nil {
			slog.Error("Failed to initialize logging service", "error", err)
			return nil, err
		}
	}
	status.InitManager(status.NewService())

	app := &App{
		Logs:     logging.GetService(),
		Status:   status.GetService(),
		Provider: p,
		config:   cfg,
	}

	opts := []suggest.ClientOption{
		suggest.WithTimeout(cfg.Suggest.Timeout),
		suggest.WithMaxContext(cfg.Suggest.MaxContext),
	}
	if cfg.Suggest.CacheSize > 0 {
		app.cache = suggest.NewCache(cfg.Suggest.CacheTTL, uint64(cfg.Suggest.CacheSize))
		opts = append(opts, suggest.WithCache(app.cache))
	}
	app.Client = suggest.NewClient(p, opts...)

	slog.Debug("app initialized",
		"provider", p.Model().Provider,
		"model", p.Model().APIModel,
		"cache", cfg.Suggest.CacheSize > 0,
	)
	return app, nil
}

// NewPresenter returns a presenter tuned by the suggest.* settings.
func (app *App) NewPresenter() *suggest.Presenter {
	return suggest.NewPresenter(
		suggest.NewDebouncer(app.config.Suggest.Debounce),
		app.config.Suggest.MinChars,
	)
}

// Config returns the configuration the app was built from.
func (app *App) Config() *config.Config {
	return app.config
}

// SuggestOnce completes text as a whole, with the cursor at its end. It is
// the one-shot counterpart of the interactive loop and skips debouncing.
func (app *App) SuggestOnce(ctx context.Context, text string) (suggest.Suggestion, error) {
	presenter := app.NewPresenter()
	token, ok := presenter.Edit(text)
	if !ok {
		return suggest.Suggestion{}, fmt.Errorf("text too short to complete: need at least %d characters", app.config.Suggest.MinChars)
	}
	req, _ := presenter.Fire(token, text, len(text))

	res := app.Client.Suggest(ctx, req)
	if res.Err != nil {
		return suggest.Suggestion{}, res.Err
	}
	s, _ := presenter.Resolve(res, text)
	return s, nil
}

// Shutdown performs a clean shutdown of the application
func (app *App) Shutdown() {
	start := time.Now()
	app.cache.Close()
	if app.Status != nil {
		app.Status.Shutdown()
	}
	if app.Logs != nil {
		app.Logs.Shutdown()
	}
	slog.Debug("app shut down", "elapsed", time.Since(start))
}
