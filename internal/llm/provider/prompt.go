package provider

import (
	"fmt"
	"strings"
)

const DefaultSystemPrompt = "You are a helpful text completion assistant. Only provide direct continuations of the text, no explanations or introductions."

// Prompt is the text around the insertion point. Before is the context the
// continuation follows; After is trailing context it must connect to.
type Prompt struct {
	System string
	Before string
	After  string
}

// UserMessage renders the single user turn sent to every provider.
func (p Prompt) UserMessage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Complete this text naturally (continue exactly where it left off, no introduction): %s", p.Before)
	if strings.TrimSpace(p.After) != "" {
		fmt.Fprintf(&b, "\n\nThe continuation is inserted before the following text and must flow into it. Do not repeat it:\n%s", p.After)
	}
	return b.String()
}
