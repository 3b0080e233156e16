package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sst/ghosttext/internal/config"
)

type KeyMap struct {
	Accept  key.Binding
	Dismiss key.Binding
	Newline key.Binding
	Paste   key.Binding
	Copy    key.Binding
}

// motionKeys move the cursor without editing. They drop any suggestion.
type motionKeys struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Home  key.Binding
	End   key.Binding
}

type deleteKeys struct {
	Backspace  key.Binding
	Delete     key.Binding
	DeleteWord key.Binding
}

var motion = motionKeys{
	Left:  key.NewBinding(key.WithKeys("left", "ctrl+b")),
	Right: key.NewBinding(key.WithKeys("right", "ctrl+f")),
	Up:    key.NewBinding(key.WithKeys("up", "ctrl+p")),
	Down:  key.NewBinding(key.WithKeys("down", "ctrl+n")),
	Home:  key.NewBinding(key.WithKeys("home", "ctrl+a")),
	End:   key.NewBinding(key.WithKeys("end", "ctrl+e")),
}

var deletion = deleteKeys{
	Backspace:  key.NewBinding(key.WithKeys("backspace", "ctrl+h")),
	Delete:     key.NewBinding(key.WithKeys("delete", "ctrl+d")),
	DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "alt+backspace")),
}

// enterKey is swallowed: only the newline binding breaks lines.
var enterKey = key.NewBinding(key.WithKeys("enter"))

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy all"),
		),
	}
}

// NewKeyMap applies the configured key names over the defaults.
func NewKeyMap(cfg config.KeysConfig) KeyMap {
	k := DefaultKeyMap()
	rebind(&k.Accept, cfg.Accept, "accept")
	rebind(&k.Dismiss, cfg.Dismiss, "dismiss")
	rebind(&k.Newline, cfg.Newline, "newline")
	return k
}

func rebind(b *key.Binding, keys []string, desc string) {
	var cleaned []string
	for _, k := range keys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			cleaned = append(cleaned, k)
		}
	}
	if len(cleaned) == 0 {
		return
	}
	*b = key.NewBinding(
		key.WithKeys(cleaned...),
		key.WithHelp(cleaned[0], desc),
	)
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Dismiss, k.Newline, k.Paste, k.Copy}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
