// Package config manages application configuration from various sources.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sst/ghosttext/internal/llm/models"
)

var (
	ErrMissingAPIKey   = errors.New("missing API key")
	ErrUnknownProvider = errors.New("unknown provider")
	ErrUnknownModel    = errors.New("unknown model")
)

// ProviderConfig holds per-provider connection settings.
type ProviderConfig struct {
	APIKey  string `json:"apiKey,omitempty"`
	BaseURL string `json:"baseURL,omitempty"`
}

// SuggestConfig tunes the suggestion loop.
type SuggestConfig struct {
	Debounce     time.Duration `json:"debounce,omitempty"`
	Timeout      time.Duration `json:"timeout,omitempty"`
	MinChars     int           `json:"minChars,omitempty"`
	MaxTokens    int64         `json:"maxTokens,omitempty"`
	Temperature  float64       `json:"temperature,omitempty"`
	MaxContext   int           `json:"maxContext,omitempty"`
	CacheTTL     time.Duration `json:"cacheTTL,omitempty"`
	CacheSize    int           `json:"cacheSize,omitempty"`
	MaxRetries   int           `json:"maxRetries,omitempty"`
	SystemPrompt string        `json:"systemPrompt,omitempty"`
}

// KeysConfig lists the key names bound to each editor action.
type KeysConfig struct {
	Accept  []string `json:"accept,omitempty"`
	Dismiss []string `json:"dismiss,omitempty"`
	Newline []string `json:"newline,omitempty"`
}

// TUIConfig defines the configuration for the Terminal User Interface.
type TUIConfig struct {
	Theme string `json:"theme,omitempty"`
}

// Config is the main configuration structure for the application.
type Config struct {
	WorkingDir string                                  `json:"wd,omitempty"`
	Debug      bool                                    `json:"debug,omitempty"`
	Provider   models.ModelProvider                    `json:"provider,omitempty"`
	Model      models.ModelID                          `json:"model,omitempty"`
	Providers  map[models.ModelProvider]ProviderConfig `json:"providers,omitempty"`
	Suggest    SuggestConfig                           `json:"suggest"`
	Keys       KeysConfig                              `json:"keys"`
	TUI        TUIConfig                               `json:"tui"`
}

// Application constants
const (
	defaultLogLevel = "info"
	appName         = "ghosttext"

	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeAuto  = "auto"
)

// apiKeyEnv lists the environment variables consulted for each provider, in
// order.
var apiKeyEnv = map[models.ModelProvider][]string{
	models.ProviderAnthropic: {"CLAUDE_API_KEY", "ANTHROPIC_API_KEY"},
	models.ProviderOpenAI:    {"OPENAI_API_KEY"},
	models.ProviderGemini:    {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
}

// Global configuration instance
var cfg *Config

// Load initializes the configuration from environment variables and config files.
// If debug is true, debug mode is enabled and log level is set to debug.
// It returns an error if configuration loading fails.
func Load(workingDir string, debug bool) (*Config, error) {
	if cfg != nil {
		return cfg, nil
	}

	cfg = &Config{
		WorkingDir: workingDir,
	}

	if err := loadDotEnv(workingDir); err != nil {
		return cfg, err
	}

	configureViper()
	setDefaults(debug)

	// Read global config
	if err := readConfig(viper.ReadInConfig()); err != nil {
		return cfg, err
	}

	// Load and merge local config
	if err := mergeLocalConfig(workingDir); err != nil {
		return cfg, err
	}

	// Apply configuration to the struct
	if err := viper.Unmarshal(cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultLevel := slog.LevelInfo
	if cfg.Debug {
		defaultLevel = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(defaultLevel)

	// Validate configuration
	if err := Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// configureViper sets up viper's configuration paths and environment variables.
func configureViper() {
	viper.SetConfigName(fmt.Sprintf(".%s", appName))
	viper.SetConfigType("json")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(fmt.Sprintf("$XDG_CONFIG_HOME/%s", appName))
	viper.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	viper.SetEnvPrefix(strings.ToUpper(appName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// setDefaults configures default values for configuration options.
func setDefaults(debug bool) {
	viper.SetDefault("provider", "")
	viper.SetDefault("model", "")
	viper.SetDefault("suggest.debounce", "350ms")
	viper.SetDefault("suggest.timeout", "5s")
	viper.SetDefault("suggest.minChars", 3)
	viper.SetDefault("suggest.maxTokens", 0)
	viper.SetDefault("suggest.temperature", 0.7)
	viper.SetDefault("suggest.maxContext", 2000)
	viper.SetDefault("suggest.cacheTTL", "5m")
	viper.SetDefault("suggest.cacheSize", 256)
	viper.SetDefault("suggest.maxRetries", 0)
	viper.SetDefault("suggest.systemPrompt", "")
	viper.SetDefault("keys.accept", []string{"tab"})
	viper.SetDefault("keys.dismiss", []string{"esc"})
	viper.SetDefault("keys.newline", []string{"alt+enter", "ctrl+j"})
	viper.SetDefault("tui.theme", ThemeAuto)

	if debug {
		viper.SetDefault("debug", true)
		viper.Set("log.level", "debug")
	} else {
		viper.SetDefault("debug", false)
		viper.SetDefault("log.level", defaultLogLevel)
	}
}

// readConfig handles the result of reading a configuration file.
func readConfig(err error) error {
	if err == nil {
		return nil
	}

	// It's okay if the config file doesn't exist
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		return nil
	}

	return fmt.Errorf("failed to read config: %w", err)
}

// mergeLocalConfig loads and merges configuration from the local directory.
func mergeLocalConfig(workingDir string) error {
	local := viper.New()
	local.SetConfigName(fmt.Sprintf(".%s", appName))
	local.SetConfigType("json")
	local.AddConfigPath(workingDir)

	if err := readConfig(local.ReadInConfig()); err != nil {
		return fmt.Errorf("local config: %w", err)
	}
	return viper.MergeConfigMap(local.AllSettings())
}

// loadDotEnv exports the variables of workingDir/.env that are unset or empty
// in the environment.
func loadDotEnv(workingDir string) error {
	env := viper.New()
	env.SetConfigFile(filepath.Join(workingDir, ".env"))
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read .env: %w", err)
	}

	for _, key := range env.AllKeys() {
		name := strings.ToUpper(key)
		if v, ok := os.LookupEnv(name); ok && v != "" {
			continue
		}
		if err := os.Setenv(name, env.GetString(key)); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks if the configuration is valid and applies defaults where needed.
func Validate() error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	if cfg.Provider == "" {
		cfg.Provider = firstConfiguredProvider()
	}
	if _, ok := models.ProviderPopularity[cfg.Provider]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}

	model, ok := models.Lookup(cfg.Provider, cfg.Model)
	if !ok {
		return fmt.Errorf("%w: %q for provider %s", ErrUnknownModel, cfg.Model, cfg.Provider)
	}
	cfg.Model = model.ID

	if cfg.APIKey(cfg.Provider) == "" {
		return fmt.Errorf("%w for %s: set %s or providers.%s.apiKey",
			ErrMissingAPIKey, cfg.Provider, strings.Join(apiKeyEnv[cfg.Provider], " or "), cfg.Provider)
	}

	s := &cfg.Suggest
	if s.Debounce <= 0 {
		return fmt.Errorf("suggest.debounce must be positive, got %s", s.Debounce)
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("suggest.timeout must be positive, got %s", s.Timeout)
	}
	if s.CacheTTL < 0 || s.CacheSize < 0 {
		return fmt.Errorf("suggest.cacheTTL and suggest.cacheSize must not be negative")
	}
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("suggest.temperature must be within [0, 2], got %v", s.Temperature)
	}
	if s.MinChars < 1 {
		slog.Warn("suggest.minChars below 1, using 1", "value", s.MinChars)
		s.MinChars = 1
	}
	if s.MaxTokens <= 0 {
		s.MaxTokens = model.DefaultMaxTokens
	}
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}

	if len(cfg.Keys.Accept) == 0 || len(cfg.Keys.Dismiss) == 0 {
		return fmt.Errorf("keys.accept and keys.dismiss must not be empty")
	}

	switch cfg.TUI.Theme {
	case ThemeDark, ThemeLight, ThemeAuto:
	case "":
		cfg.TUI.Theme = ThemeAuto
	default:
		return fmt.Errorf("tui.theme must be one of %s, %s, %s; got %q", ThemeDark, ThemeLight, ThemeAuto, cfg.TUI.Theme)
	}

	return nil
}

// firstConfiguredProvider picks the most popular provider that has a key,
// falling back to the most popular one overall.
func firstConfiguredProvider() models.ModelProvider {
	providers := models.Providers()
	for _, p := range providers {
		if cfg.APIKey(p) != "" {
			return p
		}
	}
	return providers[0]
}

// APIKey resolves the key for provider. The environment wins over the config
// file.
func (c *Config) APIKey(provider models.ModelProvider) string {
	for _, name := range apiKeyEnv[provider] {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.Providers[provider].APIKey)
}

// BaseURL returns the endpoint override for provider, if any.
func (c *Config) BaseURL(provider models.ModelProvider) string {
	return c.Providers[provider].BaseURL
}

// SelectedModel returns the validated model.
func (c *Config) SelectedModel() models.Model {
	return models.SupportedModels[c.Model]
}

// Get returns the current configuration.
// It's safe to call this function multiple times.
func Get() *Config {
	return cfg
}

// WorkingDirectory returns the current working directory from the configuration.
func WorkingDirectory() string {
	if cfg == nil {
		panic("config not loaded")
	}
	return cfg.WorkingDir
}

// updateCfgFile edits the user config file as a generic JSON object so that
// settings this process does not know about are preserved.
func updateCfgFile(update func(settings map[string]any)) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	// Get the config file path
	configFile := viper.ConfigFileUsed()
	var configData []byte
	if configFile == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		configFile = filepath.Join(homeDir, fmt.Sprintf(".%s.json", appName))
		slog.Info("config file not found, creating new one", "path", configFile)
		configData = []byte(`{}`)
	} else {
		// Read the existing config file
		data, err := os.ReadFile(configFile)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		configData = data
	}

	settings := map[string]any{}
	if err := json.Unmarshal(configData, &settings); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	update(settings)

	// Write the updated config back to file
	updatedData, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, updatedData, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// UpdateTheme updates the theme in the configuration and writes it to the config file.
func UpdateTheme(themeName string) error {
	if cfg == nil {
		return fmt.Errorf("config not loaded")
	}

	// Update the in-memory config
	cfg.TUI.Theme = themeName

	// Update the file config
	return updateCfgFile(func(settings map[string]any) {
		tui, _ := settings["tui"].(map[string]any)
		if tui == nil {
			tui = map[string]any{}
		}
		tui["theme"] = themeName
		settings["tui"] = tui
	})
}
