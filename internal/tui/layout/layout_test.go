package layout

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
)

func TestKeyMapToSlice(t *testing.T) {
	t.Parallel()

	keys := struct {
		Accept   key.Binding
		Dismiss  key.Binding
		Disabled key.Binding
		Width    int
	}{
		Accept:   key.NewBinding(key.WithKeys("tab")),
		Dismiss:  key.NewBinding(key.WithKeys("esc")),
		Disabled: key.NewBinding(key.WithKeys("f1"), key.WithDisabled()),
	}

	bindings := KeyMapToSlice(keys)
	assert.Len(t, bindings, 2)
	assert.Equal(t, []string{"tab"}, bindings[0].Keys())
	assert.Equal(t, []string{"esc"}, bindings[1].Keys())

	assert.Len(t, KeyMapToSlice(&keys), 2)
	assert.Nil(t, KeyMapToSlice(42))
}
