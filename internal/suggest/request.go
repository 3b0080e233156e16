package suggest

import "time"

// Request is an immutable snapshot of the buffer taken when a debounce
// period ends.
type Request struct {
	ID        uint64
	Text      string
	Cursor    int
	CreatedAt time.Time
}

func (r Request) cursor() int {
	return min(max(r.Cursor, 0), len(r.Text))
}

// Before is the text preceding the cursor.
func (r Request) Before() string {
	return r.Text[:r.cursor()]
}

// After is the trailing context following the cursor.
func (r Request) After() string {
	return r.Text[r.cursor():]
}

// Suggestion is a continuation computed against Basis. It is only valid while
// the buffer still equals Basis.
type Suggestion struct {
	RequestID uint64
	Text      string
	Basis     string
	Cursor    int
	Cached    bool
}

func (s Suggestion) Empty() bool {
	return s.Text == ""
}

// ValidFor reports whether the suggestion can be shown over text.
func (s Suggestion) ValidFor(text string) bool {
	return !s.Empty() && s.Basis == text
}

// Result is the client's answer to one Request. Suggestion is empty when Err
// is set or the model had nothing to add.
type Result struct {
	Request    Request
	Suggestion Suggestion
	Err        error
}
