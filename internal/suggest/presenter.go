package suggest

import (
	"strings"
	"time"
	"unicode/utf8"
)

type State int

const (
	StateIdle State = iota
	StatePending
	StateShown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateShown:
		return "shown"
	}
	return "unknown"
}

const DefaultMinChars = 3

// Presenter is the Idle -> Pending -> Shown state machine behind the ghost
// text. At most one suggestion is live and at most one request is pending.
// Not safe for concurrent use.
type Presenter struct {
	debouncer *Debouncer
	minChars  int
	now       func() time.Time

	state     State
	lastID    uint64
	pendingID uint64
	live      Suggestion
}

func NewPresenter(debouncer *Debouncer, minChars int) *Presenter {
	if debouncer == nil {
		debouncer = NewDebouncer(DefaultDebounce)
	}
	if minChars <= 0 {
		minChars = DefaultMinChars
	}
	return &Presenter{
		debouncer: debouncer,
		minChars:  minChars,
		now:       time.Now,
	}
}

func (p *Presenter) State() State {
	return p.state
}

func (p *Presenter) Debouncer() *Debouncer {
	return p.debouncer
}

// Suggestion returns the live suggestion while Shown.
func (p *Presenter) Suggestion() (Suggestion, bool) {
	if p.state != StateShown {
		return Suggestion{}, false
	}
	return p.live, true
}

// PendingID returns the ID of the in-flight request, if any.
func (p *Presenter) PendingID() (uint64, bool) {
	return p.pendingID, p.pendingID != 0
}

// Edit records a buffer change. The live suggestion and any pending request
// are dropped. A token is returned when text is long enough to be worth
// completing; the caller fires it after the debounce delay.
func (p *Presenter) Edit(text string) (Token, bool) {
	p.live = Suggestion{}
	p.pendingID = 0
	if !p.eligible(text) {
		p.debouncer.Cancel()
		p.state = StateIdle
		return 0, false
	}
	p.state = StatePending
	return p.debouncer.Arm(), true
}

// Fire turns a current token into a Request for the given snapshot. Stale
// tokens are ignored.
func (p *Presenter) Fire(token Token, text string, cursor int) (Request, bool) {
	if p.state != StatePending || !p.debouncer.Current(token) || !p.eligible(text) {
		return Request{}, false
	}
	p.debouncer.Cancel()
	p.lastID++
	p.pendingID = p.lastID
	return Request{
		ID:        p.pendingID,
		Text:      text,
		Cursor:    min(max(cursor, 0), len(text)),
		CreatedAt: p.now(),
	}, true
}

// Resolve applies a client result. The suggestion is shown only when it
// answers the pending request and its basis still matches currentText.
// Results for superseded requests change nothing.
func (p *Presenter) Resolve(res Result, currentText string) (Suggestion, bool) {
	if p.state != StatePending || p.pendingID == 0 || res.Request.ID != p.pendingID {
		return Suggestion{}, false
	}
	p.pendingID = 0
	if res.Err != nil || !res.Suggestion.ValidFor(currentText) {
		p.state = StateIdle
		return Suggestion{}, false
	}
	p.live = res.Suggestion
	p.state = StateShown
	return p.live, true
}

// Accept commits the live suggestion and returns the text to insert at the
// cursor.
func (p *Presenter) Accept() (string, bool) {
	if p.state != StateShown {
		return "", false
	}
	text := p.live.Text
	p.reset()
	return text, true
}

// Dismiss drops the live suggestion, or the pending request, without
// touching the buffer. It reports whether there was anything to drop.
func (p *Presenter) Dismiss() bool {
	if p.state == StateIdle {
		return false
	}
	p.reset()
	return true
}

// Interrupt handles a non-editing keystroke such as cursor movement.
func (p *Presenter) Interrupt() {
	p.reset()
}

func (p *Presenter) reset() {
	p.debouncer.Cancel()
	p.live = Suggestion{}
	p.pendingID = 0
	p.state = StateIdle
}

func (p *Presenter) eligible(text string) bool {
	trimmed := strings.TrimSpace(text)
	return trimmed != "" && utf8.RuneCountInString(trimmed) >= p.minChars
}
