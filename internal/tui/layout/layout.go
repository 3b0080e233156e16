package layout

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Focusable interface {
	Focus() tea.Cmd
	Blur() tea.Cmd
	IsFocused() bool
}

type Sizeable interface {
	SetSize(width, height int) tea.Cmd
	GetSize() (int, int)
}

type Bindings interface {
	BindingKeys() []key.Binding
}

// KeyMapToSlice collects the key.Binding fields of a keymap struct in
// declaration order. Disabled bindings are skipped.
func KeyMapToSlice(t any) (bindings []key.Binding) {
	v := reflect.ValueOf(t)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	for i := range v.NumField() {
		binding, ok := v.Field(i).Interface().(key.Binding)
		if !ok || !binding.Enabled() {
			continue
		}
		bindings = append(bindings, binding)
	}
	return bindings
}
