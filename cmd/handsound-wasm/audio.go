//go:build js && wasm

package main

import (
	"syscall/js"
	"time"

	"github.com/cwbudde/algo-handsound/synth"
)

// jsFactory forwards every call to the page's handsoundAudio object, which
// owns the WebAudio graph.
type jsFactory struct{}

func audioObject() js.Value {
	return js.Global().Get("handsoundAudio")
}

func (jsFactory) CreateTone(w synth.Waveform, frequency, gain float64) synth.Tone {
	return &jsTone{v: audioObject().Call("createTone", string(w), frequency, gain)}
}

func (jsFactory) CreateHit(h synth.Hit) {
	req := map[string]interface{}{
		"waveform":        string(h.Waveform),
		"frequency":       h.Frequency,
		"frequencyTarget": h.FrequencyTarget,
		"gain":            h.Gain,
		"gainTarget":      h.GainTarget,
		"decay":           h.Decay.Seconds(),
		"filter":          nil,
	}
	if h.Filter != nil {
		req["filter"] = map[string]interface{}{
			"type":      string(h.Filter.Type),
			"frequency": h.Filter.Frequency,
			"q":         h.Filter.Q,
		}
	}
	audioObject().Call("hit", req)
}

// jsTone wraps the handle returned by handsoundAudio.createTone. The page sets
// its "ended" property once the oscillator finishes.
type jsTone struct {
	v       js.Value
	stopped bool
}

func (t *jsTone) RampFrequency(target float64, over time.Duration) {
	t.v.Call("rampFrequency", target, over.Seconds())
}

func (t *jsTone) RampGain(target float64, over time.Duration) {
	t.v.Call("rampGain", target, over.Seconds())
}

func (t *jsTone) RampGainExponential(target float64, over time.Duration) {
	if target < synth.ExpFloor {
		target = synth.ExpFloor
	}
	t.v.Call("rampGainExp", target, over.Seconds())
}

func (t *jsTone) Ended() bool {
	return t.stopped || t.v.Get("ended").Truthy()
}

func (t *jsTone) Stop(after time.Duration) error {
	if t.Ended() {
		return synth.ErrToneStopped
	}
	t.stopped = true
	t.v.Call("stop", after.Seconds())
	return nil
}
