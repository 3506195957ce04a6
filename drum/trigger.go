package drum

import (
	"github.com/cwbudde/algo-handsound/synth"
)

// HighlightDuration is how long a pad stays lit after an accepted hit.
const HighlightDuration = Window

// Gain envelopes per pad family.
const (
	kickGain   = 1.0
	bodyGain   = 0.5
	cymbalGain = 0.3
)

// bodyFilter is the tone-shaping low-pass used for kick, snare and tom.
var bodyFilter = synth.Filter{Type: synth.LowPass, Frequency: 350, Q: 1}

// Event describes an accepted hit.
type Event struct {
	Pad       PadID
	AtMillis  int64
	Highlight int64 // milliseconds
}

// Trigger fires debounced percussive hits into a ToneFactory.
type Trigger struct {
	tones     synth.ToneFactory
	kit       Kit
	debouncer *Debouncer
	onHit     func(Event)
}

// NewTrigger creates a trigger for kit. A nil kit selects DefaultKit.
func NewTrigger(tones synth.ToneFactory, kit Kit) *Trigger {
	if kit == nil {
		kit = DefaultKit()
	}
	return &Trigger{
		tones:     tones,
		kit:       kit,
		debouncer: NewDebouncer(),
	}
}

// OnHit registers fn to run after every accepted hit.
func (t *Trigger) OnHit(fn func(Event)) { t.onHit = fn }

// Trigger plays pad unless it was hit less than Window ago. It reports
// whether the hit was accepted.
func (t *Trigger) Trigger(pad PadID, nowMillis int64) bool {
	if !t.debouncer.Accept(pad, nowMillis) {
		return false
	}
	t.tones.CreateHit(HitFor(pad, t.kit[pad]))
	if t.onHit != nil {
		t.onHit(Event{Pad: pad, AtMillis: nowMillis, Highlight: HighlightDuration.Milliseconds()})
	}
	return true
}

// HitFor builds the synthesis request for a pad.
//
// Kick is a sine whose pitch and level both fall exponentially. Snare and tom
// are fixed-pitch triangles. The cymbals are square waves through a high-pass
// at the pad frequency.
func HitFor(pad PadID, p Profile) synth.Hit {
	h := synth.Hit{
		Frequency:  p.Frequency,
		GainTarget: synth.ExpFloor,
		Decay:      p.Decay,
	}
	switch pad {
	case Kick:
		f := bodyFilter
		h.Waveform = synth.Sine
		h.FrequencyTarget = synth.ExpFloor
		h.Gain = kickGain
		h.Filter = &f
	case Snare, Tom:
		f := bodyFilter
		h.Waveform = synth.Triangle
		h.Gain = bodyGain
		h.Filter = &f
	default:
		h.Waveform = synth.Square
		h.Gain = cymbalGain
		h.Filter = &synth.Filter{Type: synth.HighPass, Frequency: p.Frequency, Q: 1}
	}
	return h
}
