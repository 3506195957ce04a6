// Package bridge connects the frame handlers to a browser: audio calls become
// JSON commands and hand frames arrive over a WebSocket.
package bridge

import (
	"sync"
	"time"

	"github.com/cwbudde/algo-handsound/synth"
)

// Command ops.
const (
	OpToneCreate        = "tone.create"
	OpToneRampFrequency = "tone.rampFrequency"
	OpToneRampGain      = "tone.rampGain"
	OpToneRampGainExp   = "tone.rampGainExp"
	OpToneStop          = "tone.stop"
	OpHit               = "hit"
)

// Command is one audio instruction for the client's audio graph. Seconds is
// the ramp length for ramps and the delay for tone.stop.
type Command struct {
	Op        string         `json:"op"`
	Tone      int            `json:"tone,omitempty"`
	Waveform  synth.Waveform `json:"waveform,omitempty"`
	Frequency float64        `json:"frequency,omitempty"`
	Gain      float64        `json:"gain,omitempty"`
	Target    float64        `json:"target"`
	Seconds   float64        `json:"seconds"`
	Hit       *HitCommand    `json:"hit,omitempty"`
}

// HitCommand is a synth.Hit with its decay in seconds.
type HitCommand struct {
	synth.Hit
	DecaySeconds float64 `json:"decay"`
}

// Remote implements synth.ToneFactory by queueing commands until Drain.
// Tone ids start at 1 and are never reused within a Remote.
type Remote struct {
	mu      sync.Mutex
	next    int
	live    map[int]bool
	pending []Command
}

var _ synth.ToneFactory = (*Remote)(nil)

func NewRemote() *Remote {
	return &Remote{live: make(map[int]bool)}
}

func (r *Remote) CreateTone(w synth.Waveform, frequency, gain float64) synth.Tone {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.live[r.next] = true
	r.pending = append(r.pending, Command{
		Op:        OpToneCreate,
		Tone:      r.next,
		Waveform:  w,
		Frequency: frequency,
		Gain:      gain,
	})
	return &remoteTone{r: r, id: r.next}
}

func (r *Remote) CreateHit(h synth.Hit) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, Command{
		Op:  OpHit,
		Hit: &HitCommand{Hit: h, DecaySeconds: h.Decay.Seconds()},
	})
}

// Drain returns the queued commands in call order and empties the queue.
func (r *Remote) Drain() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.pending
	r.pending = nil
	if out == nil {
		out = []Command{}
	}
	return out
}

// Ended records that the client's audio graph finished tone id on its own.
func (r *Remote) Ended(id int) {
	r.mu.Lock()
	delete(r.live, id)
	r.mu.Unlock()
}

// Live returns the number of tones that have not been stopped.
func (r *Remote) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

func (r *Remote) push(c Command) {
	r.mu.Lock()
	r.pending = append(r.pending, c)
	r.mu.Unlock()
}

type remoteTone struct {
	r  *Remote
	id int
}

func (t *remoteTone) RampFrequency(target float64, over time.Duration) {
	t.r.push(Command{Op: OpToneRampFrequency, Tone: t.id, Target: target, Seconds: over.Seconds()})
}

func (t *remoteTone) RampGain(target float64, over time.Duration) {
	t.r.push(Command{Op: OpToneRampGain, Tone: t.id, Target: target, Seconds: over.Seconds()})
}

func (t *remoteTone) RampGainExponential(target float64, over time.Duration) {
	if target < synth.ExpFloor {
		target = synth.ExpFloor
	}
	t.r.push(Command{Op: OpToneRampGainExp, Tone: t.id, Target: target, Seconds: over.Seconds()})
}

// Ended reports whether the tone was stopped or the client reported its end.
func (t *remoteTone) Ended() bool {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	return !t.r.live[t.id]
}

func (t *remoteTone) Stop(after time.Duration) error {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if !t.r.live[t.id] {
		return synth.ErrToneStopped
	}
	delete(t.r.live, t.id)
	t.r.pending = append(t.r.pending, Command{Op: OpToneStop, Tone: t.id, Seconds: after.Seconds()})
	return nil
}
