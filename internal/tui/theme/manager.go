package theme

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/sst/ghosttext/internal/config"
)

// Manager tracks the active theme and the background mode it is rendered in.
type Manager struct {
	theme Theme
	mode  string
	mu    sync.RWMutex
}

// Global instance of the theme manager
var globalManager = &Manager{
	theme: NewGhostTextTheme(),
	mode:  config.ThemeAuto,
}

// CurrentTheme returns the currently active theme.
func CurrentTheme() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.theme
}

// CurrentMode returns dark, light or auto.
func CurrentMode() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.mode
}

// SetMode forces a light or dark rendering of adaptive colors. auto leaves
// the decision to terminal background detection.
func SetMode(mode string) error {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	switch mode {
	case config.ThemeDark:
		lipgloss.SetHasDarkBackground(true)
	case config.ThemeLight:
		lipgloss.SetHasDarkBackground(false)
	case config.ThemeAuto, "":
		mode = config.ThemeAuto
	default:
		return fmt.Errorf("theme mode '%s' not found", mode)
	}
	globalManager.mode = mode
	return nil
}

// ToggleMode flips between dark and light and returns the new mode.
func ToggleMode() string {
	next := config.ThemeDark
	if IsDark() {
		next = config.ThemeLight
	}
	_ = SetMode(next)
	return next
}

// IsDark reports whether colors currently render in their dark variant.
func IsDark() bool {
	switch CurrentMode() {
	case config.ThemeDark:
		return true
	case config.ThemeLight:
		return false
	}
	return lipgloss.HasDarkBackground()
}

// Resolve picks the variant of c matching the current mode.
func Resolve(c lipgloss.AdaptiveColor) string {
	if IsDark() {
		return c.Dark
	}
	return c.Light
}
