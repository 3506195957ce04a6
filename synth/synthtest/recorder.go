// Package synthtest provides a ToneFactory that records calls instead of
// producing sound.
package synthtest

import (
	"time"

	"github.com/cwbudde/algo-handsound/synth"
)

// Op names a recorded call.
type Op string

const (
	OpCreateTone    Op = "create"
	OpRampFrequency Op = "rampFrequency"
	OpRampGain      Op = "rampGain"
	OpRampGainExp   Op = "rampGainExp"
	OpStop          Op = "stop"
	OpHit           Op = "hit"
)

// Event is one recorded call. Tone is the 1-based id of the tone the call
// refers to; it is zero for hits.
type Event struct {
	Op        Op
	Tone      int
	Waveform  synth.Waveform
	Frequency float64
	Gain      float64
	Target    float64
	Over      time.Duration
	Hit       synth.Hit
}

// Recorder implements synth.ToneFactory.
type Recorder struct {
	Events []Event
	tones  int
}

var _ synth.ToneFactory = (*Recorder)(nil)

func (r *Recorder) CreateTone(w synth.Waveform, frequency, gain float64) synth.Tone {
	r.tones++
	r.Events = append(r.Events, Event{Op: OpCreateTone, Tone: r.tones, Waveform: w, Frequency: frequency, Gain: gain})
	return &tone{rec: r, id: r.tones}
}

func (r *Recorder) CreateHit(h synth.Hit) {
	r.Events = append(r.Events, Event{Op: OpHit, Waveform: h.Waveform, Frequency: h.Frequency, Gain: h.Gain, Hit: h})
}

// Count returns how many events with the given op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, e := range r.Events {
		if e.Op == op {
			n++
		}
	}
	return n
}

// Ops returns the recorded op sequence.
func (r *Recorder) Ops() []Op {
	ops := make([]Op, len(r.Events))
	for i, e := range r.Events {
		ops[i] = e.Op
	}
	return ops
}

// Reset drops recorded events but keeps tone numbering.
func (r *Recorder) Reset() { r.Events = nil }

type tone struct {
	rec     *Recorder
	id      int
	stopped bool
	ended   bool
}

func (t *tone) RampFrequency(target float64, over time.Duration) {
	t.rec.Events = append(t.rec.Events, Event{Op: OpRampFrequency, Tone: t.id, Target: target, Over: over})
}

func (t *tone) RampGain(target float64, over time.Duration) {
	t.rec.Events = append(t.rec.Events, Event{Op: OpRampGain, Tone: t.id, Target: target, Over: over})
}

func (t *tone) RampGainExponential(target float64, over time.Duration) {
	t.rec.Events = append(t.rec.Events, Event{Op: OpRampGainExp, Tone: t.id, Target: target, Over: over})
}

func (t *tone) Stop(after time.Duration) error {
	if t.stopped {
		return synth.ErrToneStopped
	}
	t.stopped = true
	t.rec.Events = append(t.rec.Events, Event{Op: OpStop, Tone: t.id, Over: after})
	return nil
}

func (t *tone) Ended() bool { return t.ended }

// StopExternally marks a tone as ended without recording an event, the way
// an audio backend ends a source on its own.
func StopExternally(tn synth.Tone) {
	if t, ok := tn.(*tone); ok {
		t.stopped = true
		t.ended = true
	}
}
