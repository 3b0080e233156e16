package styles

const (
	GhostIcon string = "👻"

	CheckIcon   string = "✓"
	ErrorIcon   string = "✖"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	DebugIcon   string = "·"
	CachedIcon  string = "↺"
)
