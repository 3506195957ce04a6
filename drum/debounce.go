package drum

import "time"

// Window is the minimum spacing between two accepted hits on the same pad.
const Window = 200 * time.Millisecond

// Debouncer remembers the last accepted hit per pad. Entries live as long as
// the Debouncer.
type Debouncer struct {
	window  int64
	lastHit map[PadID]int64
}

// NewDebouncer returns a Debouncer using Window.
func NewDebouncer() *Debouncer {
	return &Debouncer{
		window:  Window.Milliseconds(),
		lastHit: make(map[PadID]int64),
	}
}

// Accept reports whether a hit on pad at nowMillis is allowed and, if so,
// records it. Rejected hits leave the table untouched. A time earlier than
// the recorded hit means the clock was reset, so the hit is accepted.
func (d *Debouncer) Accept(pad PadID, nowMillis int64) bool {
	if last, ok := d.lastHit[pad]; ok && nowMillis >= last && nowMillis-last < d.window {
		return false
	}
	d.lastHit[pad] = nowMillis
	return true
}

// LastHit returns the time of the last accepted hit on pad.
func (d *Debouncer) LastHit(pad PadID) (int64, bool) {
	t, ok := d.lastHit[pad]
	return t, ok
}
