package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sst/ghosttext/internal/tui/theme"
)

// ghostBlend is how far the ghost text color moves from the text color
// towards the background.
const ghostBlend = 0.55

// BaseStyle returns the base style with background and foreground colors
func BaseStyle() lipgloss.Style {
	t := theme.CurrentTheme()
	return lipgloss.NewStyle().
		Background(t.Background()).
		Foreground(t.Text())
}

// Regular returns a basic unstyled lipgloss.Style
func Regular() lipgloss.Style {
	return lipgloss.NewStyle()
}

func Muted() lipgloss.Style {
	t := theme.CurrentTheme()
	return lipgloss.NewStyle().Foreground(t.TextMuted())
}

// Bold returns a bold style
func Bold() lipgloss.Style {
	return Regular().Bold(true)
}

// Padded returns a style with horizontal padding
func Padded() lipgloss.Style {
	return BaseStyle().Padding(0, 1)
}

// Cursor renders the cell under the cursor.
func Cursor() lipgloss.Style {
	return Regular().Reverse(true)
}

// Ghost renders suggested, uncommitted text.
func Ghost() lipgloss.Style {
	t := theme.CurrentTheme()
	return Regular().Foreground(GhostColor(t.Text(), t.Background())).Italic(true)
}

// GhostColor blends text towards background in Lab space, separately for
// the light and dark variants.
func GhostColor(text, background lipgloss.AdaptiveColor) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{
		Light: blend(text.Light, background.Light, ghostBlend),
		Dark:  blend(text.Dark, background.Dark, ghostBlend),
	}
}

func blend(from, to string, t float64) string {
	c1, err := colorful.Hex(from)
	if err != nil {
		return from
	}
	c2, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return c1.BlendLab(c2, t).Clamped().Hex()
}
