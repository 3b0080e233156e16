package suggest

import "time"

const DefaultDebounce = 350 * time.Millisecond

// Token identifies one armed debounce period. The zero Token is never current.
type Token uint64

// Debouncer tracks which debounce period is current. It holds no timers: the
// caller schedules the tick and asks Current when it fires. Not safe for
// concurrent use; it lives on the UI event loop.
type Debouncer struct {
	delay   time.Duration
	current Token
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Arm invalidates any outstanding token and returns a new one.
func (d *Debouncer) Arm() Token {
	d.current++
	return d.current
}

// Cancel invalidates the outstanding token without arming a new one.
func (d *Debouncer) Cancel() {
	d.current++
}

func (d *Debouncer) Current(t Token) bool {
	return t != 0 && t == d.current
}
