package synth

import (
	"math"
	"time"

	"github.com/cwbudde/algo-approx"
	dspcore "github.com/cwbudde/algo-dsp/dsp/core"

	"github.com/cwbudde/algo-handsound/dsp"
)

// Engine is an offline ToneFactory. Parameter changes are scheduled against
// its sample clock, which only advances through Process.
type Engine struct {
	sampleRate int
	pos        int64
	voices     []*voice
}

// NewEngine creates an engine rendering at sampleRate.
func NewEngine(sampleRate int) *Engine {
	return &Engine{sampleRate: sampleRate}
}

// SampleRate returns the render rate in Hz.
func (e *Engine) SampleRate() int { return e.sampleRate }

// Now returns the engine clock: the duration of audio rendered so far.
func (e *Engine) Now() time.Duration {
	return time.Duration(e.pos) * time.Second / time.Duration(e.sampleRate)
}

// Active returns the number of voices that have not finished.
func (e *Engine) Active() int {
	n := 0
	for _, v := range e.voices {
		if !v.done {
			n++
		}
	}
	return n
}

func (e *Engine) frames(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Round(d.Seconds() * float64(e.sampleRate)))
}

// CreateTone starts a sustained tone immediately at the given frequency and
// gain.
func (e *Engine) CreateTone(w Waveform, frequency, gain float64) Tone {
	v := &voice{
		engine: e,
		wave:   w,
		stopAt: -1,
	}
	v.freq.set(frequency)
	v.gain.set(gain)
	e.voices = append(e.voices, v)
	return v
}

// CreateHit starts a percussive hit that stops itself after its decay.
func (e *Engine) CreateHit(h Hit) {
	v := &voice{
		engine: e,
		wave:   h.Waveform,
		stopAt: -1,
	}
	decay := e.frames(h.Decay)
	v.freq.set(h.Frequency)
	if h.FrequencyTarget > 0 {
		v.freq.schedule(rampExp, e.pos, h.FrequencyTarget, decay)
	}
	v.gain.set(h.Gain)
	v.gain.schedule(rampExp, e.pos, h.GainTarget, decay)
	if h.Filter != nil {
		sr := float32(e.sampleRate)
		switch h.Filter.Type {
		case HighPass:
			v.filter = dsp.NewHighpass(float32(h.Filter.Frequency), sr, float32(h.Filter.Q))
		case LowPass:
			v.filter = dsp.NewLowpass(float32(h.Filter.Frequency), sr, float32(h.Filter.Q))
		}
	}
	v.stopped = true
	v.stopAt = e.pos + decay
	e.voices = append(e.voices, v)
}

// Process renders numFrames mono samples and advances the clock. A negative
// count renders nothing.
func (e *Engine) Process(numFrames int) []float32 {
	if numFrames < 0 {
		numFrames = 0
	}
	mix := make([]float32, numFrames)
	for _, v := range e.voices {
		if v.done {
			continue
		}
		v.render(mix, e.pos)
	}
	for i, s := range mix {
		mix[i] = float32(dspcore.FlushDenormals(float64(s)))
	}
	e.pos += int64(numFrames)

	active := e.voices[:0]
	for _, v := range e.voices {
		if !v.done {
			active = append(active, v)
		}
	}
	for i := len(active); i < len(e.voices); i++ {
		e.voices[i] = nil
	}
	e.voices = active
	return mix
}

type rampKind int

const (
	rampNone rampKind = iota
	rampLinear
	rampExp
)

// param is an automatable value with at most one ramp in flight.
type param struct {
	value      float64
	kind       rampKind
	from, to   float64
	start, end int64
}

func (p *param) set(v float64) {
	p.value = v
	p.kind = rampNone
}

// schedule starts a ramp at pos from the current value towards target.
func (p *param) schedule(kind rampKind, pos int64, target float64, frames int64) {
	current := p.at(pos)
	if kind == rampExp {
		current = math.Max(current, ExpFloor)
		target = math.Max(target, ExpFloor)
	}
	if frames <= 0 {
		p.set(target)
		return
	}
	p.kind = kind
	p.from = current
	p.to = target
	p.start = pos
	p.end = pos + frames
}

func (p *param) at(pos int64) float64 {
	if p.kind == rampNone {
		return p.value
	}
	if pos >= p.end {
		p.set(p.to)
		return p.value
	}
	t := float64(pos-p.start) / float64(p.end-p.start)
	switch p.kind {
	case rampLinear:
		p.value = p.from + (p.to-p.from)*t
	case rampExp:
		ratio := math.Log(p.to / p.from)
		p.value = p.from * float64(approx.FastExp(float32(ratio*t)))
	}
	return p.value
}

type voice struct {
	engine  *Engine
	wave    Waveform
	freq    param
	gain    param
	phase   float64
	filter  *dsp.Biquad
	stopped bool
	stopAt  int64
	done    bool
}

func (v *voice) RampFrequency(target float64, over time.Duration) {
	v.freq.schedule(rampLinear, v.engine.pos, target, v.engine.frames(over))
}

func (v *voice) RampGain(target float64, over time.Duration) {
	v.gain.schedule(rampLinear, v.engine.pos, target, v.engine.frames(over))
}

func (v *voice) RampGainExponential(target float64, over time.Duration) {
	v.gain.schedule(rampExp, v.engine.pos, target, v.engine.frames(over))
}

func (v *voice) Stop(after time.Duration) error {
	if v.stopped {
		return ErrToneStopped
	}
	v.stopped = true
	v.stopAt = v.engine.pos + v.engine.frames(after)
	return nil
}

func (v *voice) Ended() bool { return v.done }

func (v *voice) render(mix []float32, pos int64) {
	sr := float64(v.engine.sampleRate)
	for i := range mix {
		p := pos + int64(i)
		if v.stopAt >= 0 && p >= v.stopAt {
			v.done = true
			return
		}
		s := float32(oscillate(v.wave, v.phase) * v.gain.at(p))
		if v.filter != nil {
			s = v.filter.Process(s)
		}
		mix[i] += s
		v.phase += v.freq.at(p) / sr
		v.phase -= math.Floor(v.phase)
	}
}

// oscillate evaluates one period of w at phase in [0,1).
func oscillate(w Waveform, phase float64) float64 {
	switch w {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
