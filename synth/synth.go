// Package synth defines the audio capability the hand controllers drive and
// an offline engine that renders it sample by sample.
package synth

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Waveform selects the oscillator shape of a tone or hit.
type Waveform string

const (
	Sine     Waveform = "sine"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
	Triangle Waveform = "triangle"
)

// ParseWaveform accepts the WebAudio oscillator type names.
func ParseWaveform(s string) (Waveform, error) {
	w := Waveform(strings.ToLower(strings.TrimSpace(s)))
	switch w {
	case Sine, Square, Sawtooth, Triangle:
		return w, nil
	default:
		return "", fmt.Errorf("unknown waveform %q", s)
	}
}

// ExpFloor is the smallest target an exponential ramp may approach.
// Exponential curves cannot reach zero, so callers aim here instead.
const ExpFloor = 0.01

// ErrToneStopped is returned when Stop is called on a tone that was already
// stopped.
var ErrToneStopped = errors.New("synth: tone already stopped")

// FilterType selects the biquad response of a hit.
type FilterType string

const (
	LowPass  FilterType = "lowpass"
	HighPass FilterType = "highpass"
)

// Filter describes the biquad stage a hit is routed through.
type Filter struct {
	Type      FilterType `json:"type"`
	Frequency float64    `json:"frequency"`
	Q         float64    `json:"q"`
}

// Hit is a fire-and-forget percussive sound. Frequency and gain start at
// Frequency and Gain and approach their targets exponentially over Decay; a
// zero FrequencyTarget keeps the pitch fixed. The hit stops itself at Decay.
type Hit struct {
	Waveform        Waveform      `json:"waveform"`
	Frequency       float64       `json:"frequency"`
	FrequencyTarget float64       `json:"frequencyTarget,omitempty"`
	Gain            float64       `json:"gain"`
	GainTarget      float64       `json:"gainTarget"`
	Filter          *Filter       `json:"filter,omitempty"`
	Decay           time.Duration `json:"-"`
}

// Tone is a sustained oscillator whose parameters can glide while it sounds.
// Ramps start from the value the parameter has at the time of the call.
type Tone interface {
	RampFrequency(target float64, over time.Duration)
	RampGain(target float64, over time.Duration)
	RampGainExponential(target float64, over time.Duration)
	// Stop schedules the end of the tone after the given delay. A second
	// call returns ErrToneStopped.
	Stop(after time.Duration) error
	// Ended reports whether the tone has stopped sounding, either through
	// Stop or because the audio backend ended it.
	Ended() bool
}

// ToneFactory produces sustained tones and percussive hits.
type ToneFactory interface {
	CreateTone(w Waveform, frequency, gain float64) Tone
	CreateHit(h Hit)
}
