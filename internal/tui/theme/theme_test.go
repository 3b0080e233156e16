package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/ghosttext/internal/config"
)

func TestSetModeAndToggle(t *testing.T) {
	t.Cleanup(func() { _ = SetMode(config.ThemeAuto) })

	require.NoError(t, SetMode(config.ThemeDark))
	assert.True(t, IsDark())
	assert.Equal(t, "#eeeeee", Resolve(CurrentTheme().Text()))

	assert.Equal(t, config.ThemeLight, ToggleMode())
	assert.False(t, IsDark())
	assert.Equal(t, "#1a1a1a", Resolve(CurrentTheme().Text()))

	assert.Equal(t, config.ThemeDark, ToggleMode())
}

func TestSetModeRejectsUnknown(t *testing.T) {
	assert.Error(t, SetMode("sepia"))
}

func TestDefaultTheme(t *testing.T) {
	assert.Equal(t, "ghosttext", CurrentTheme().Name())
}
