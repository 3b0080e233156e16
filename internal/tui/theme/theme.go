package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors used by the UI. All colors are adaptive so the
// same theme works on light and dark terminal backgrounds.
type Theme interface {
	Name() string

	// Background colors
	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor
	BackgroundDarker() lipgloss.AdaptiveColor

	// Brand colors
	Primary() lipgloss.AdaptiveColor
	Secondary() lipgloss.AdaptiveColor

	// Text colors
	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor

	// Status colors
	Error() lipgloss.AdaptiveColor
	Warning() lipgloss.AdaptiveColor
	Success() lipgloss.AdaptiveColor
	Info() lipgloss.AdaptiveColor
}

// BaseTheme provides a default implementation of the Theme interface
// that can be embedded in concrete theme implementations.
type BaseTheme struct {
	NameValue string

	BackgroundColor          lipgloss.AdaptiveColor
	BackgroundSecondaryColor lipgloss.AdaptiveColor
	BackgroundDarkerColor    lipgloss.AdaptiveColor

	PrimaryColor   lipgloss.AdaptiveColor
	SecondaryColor lipgloss.AdaptiveColor

	TextColor      lipgloss.AdaptiveColor
	TextMutedColor lipgloss.AdaptiveColor

	ErrorColor   lipgloss.AdaptiveColor
	WarningColor lipgloss.AdaptiveColor
	SuccessColor lipgloss.AdaptiveColor
	InfoColor    lipgloss.AdaptiveColor
}

func (t *BaseTheme) Name() string { return t.NameValue }

func (t *BaseTheme) Background() lipgloss.AdaptiveColor          { return t.BackgroundColor }
func (t *BaseTheme) BackgroundSecondary() lipgloss.AdaptiveColor { return t.BackgroundSecondaryColor }
func (t *BaseTheme) BackgroundDarker() lipgloss.AdaptiveColor    { return t.BackgroundDarkerColor }

func (t *BaseTheme) Primary() lipgloss.AdaptiveColor   { return t.PrimaryColor }
func (t *BaseTheme) Secondary() lipgloss.AdaptiveColor { return t.SecondaryColor }

func (t *BaseTheme) Text() lipgloss.AdaptiveColor      { return t.TextColor }
func (t *BaseTheme) TextMuted() lipgloss.AdaptiveColor { return t.TextMutedColor }

func (t *BaseTheme) Error() lipgloss.AdaptiveColor   { return t.ErrorColor }
func (t *BaseTheme) Warning() lipgloss.AdaptiveColor { return t.WarningColor }
func (t *BaseTheme) Success() lipgloss.AdaptiveColor { return t.SuccessColor }
func (t *BaseTheme) Info() lipgloss.AdaptiveColor    { return t.InfoColor }

// NewGhostTextTheme returns the default palette.
func NewGhostTextTheme() *BaseTheme {
	return &BaseTheme{
		NameValue: "ghosttext",

		BackgroundColor:          lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#0a0a0a"},
		BackgroundSecondaryColor: lipgloss.AdaptiveColor{Light: "#f1f1f1", Dark: "#1e1e1e"},
		BackgroundDarkerColor:    lipgloss.AdaptiveColor{Light: "#e5e5e5", Dark: "#121212"},

		PrimaryColor:   lipgloss.AdaptiveColor{Light: "#3b7dd8", Dark: "#fab283"},
		SecondaryColor: lipgloss.AdaptiveColor{Light: "#7b5bb6", Dark: "#5c9cf5"},

		TextColor:      lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#eeeeee"},
		TextMutedColor: lipgloss.AdaptiveColor{Light: "#8a8a8a", Dark: "#808080"},

		ErrorColor:   lipgloss.AdaptiveColor{Light: "#d1383d", Dark: "#e06c75"},
		WarningColor: lipgloss.AdaptiveColor{Light: "#d68c27", Dark: "#f5a742"},
		SuccessColor: lipgloss.AdaptiveColor{Light: "#3d9a57", Dark: "#7fd88f"},
		InfoColor:    lipgloss.AdaptiveColor{Light: "#318795", Dark: "#56b6c2"},
	}
}
