// Package player implements the monophonic sustained voice driven by hand
// position.
package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-handsound/instrument"
	"github.com/cwbudde/algo-handsound/synth"
)

// Ramp timings.
const (
	GlideTime = 50 * time.Millisecond
	FadeTime  = 100 * time.Millisecond
)

// ErrUnknownInstrument is returned by Play for ids missing from the catalog.
var ErrUnknownInstrument = errors.New("player: unknown instrument")

// State is the voice lifecycle state.
type State int

const (
	Idle State = iota
	Sounding
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sounding:
		return "sounding"
	default:
		return "unknown"
	}
}

// Transition reports what Play or Stop did.
type Transition int

const (
	// None means Stop found nothing to silence.
	None Transition = iota
	// Started means a tone was created from Idle.
	Started
	// Glided means the current tone was ramped to new parameters.
	Glided
	// Switched means the current tone was torn down and a new one created.
	Switched
	// Stopped means the current tone was faded out.
	Stopped
)

func (t Transition) String() string {
	switch t {
	case None:
		return "none"
	case Started:
		return "started"
	case Glided:
		return "glided"
	case Switched:
		return "switched"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Voice owns at most one sustained tone. It is not safe for concurrent use;
// frames are expected one at a time.
type Voice struct {
	tones   synth.ToneFactory
	catalog *instrument.Catalog

	active    instrument.ID
	tone      synth.Tone
	frequency float64
	volume    float64
}

// NewVoice creates an idle voice. A nil catalog selects the default one.
func NewVoice(tones synth.ToneFactory, catalog *instrument.Catalog) *Voice {
	if catalog == nil {
		catalog = instrument.DefaultCatalog()
	}
	return &Voice{tones: tones, catalog: catalog}
}

// State returns Idle or Sounding.
func (v *Voice) State() State {
	if v.tone == nil || v.tone.Ended() {
		return Idle
	}
	return Sounding
}

// Instrument returns the sounding instrument, if any.
func (v *Voice) Instrument() (instrument.ID, bool) {
	if v.State() == Idle {
		return "", false
	}
	return v.active, true
}

// Frequency returns the most recently requested frequency.
func (v *Voice) Frequency() float64 { return v.frequency }

// Volume returns the most recently requested gain.
func (v *Voice) Volume() float64 { return v.volume }

// Play drives the voice for one frame with the hand at (x, y) over zone id.
// The same instrument glides to the new pitch and level; a different one
// replaces the tone. Unknown ids leave the voice untouched.
func (v *Voice) Play(id instrument.ID, x, y float64) (Transition, error) {
	p, ok := v.catalog.Lookup(id)
	if !ok {
		return None, fmt.Errorf("%w: %q", ErrUnknownInstrument, id)
	}
	frequency := p.Frequency(x)
	volume := instrument.Volume(y)

	// A tone the backend already ended cannot glide; start over from Idle.
	if v.tone != nil && v.tone.Ended() {
		v.tone = nil
		v.active = ""
	}

	if v.tone != nil && v.active == id {
		v.tone.RampFrequency(frequency, GlideTime)
		v.tone.RampGain(volume, GlideTime)
		v.frequency, v.volume = frequency, volume
		return Glided, nil
	}

	tr := Started
	if v.Stop() == Stopped {
		tr = Switched
	}
	v.tone = v.tones.CreateTone(p.Waveform, frequency, volume)
	v.active = id
	v.frequency, v.volume = frequency, volume
	return tr, nil
}

// Stop fades the current tone to silence over FadeTime and returns to Idle.
// Stopping an idle voice does nothing and reports None.
func (v *Voice) Stop() Transition {
	if v.tone == nil {
		return None
	}
	if v.tone.Ended() {
		v.tone = nil
		v.active = ""
		return Stopped
	}
	v.tone.RampGain(0, FadeTime)
	// ErrToneStopped means the backend already ended the tone; either way
	// it is gone.
	_ = v.tone.Stop(FadeTime)
	v.tone = nil
	v.active = ""
	return Stopped
}
