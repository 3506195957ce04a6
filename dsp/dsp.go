// Package dsp holds the small filter stages used by percussive hits.
package dsp

import "math"

// Biquad implements a second-order IIR filter (no heap allocations in Process)
type Biquad struct {
	// Coefficients
	b0, b1, b2 float32
	a1, a2     float32

	// State (previous samples)
	x1, x2 float32 // input history
	y1, y2 float32 // output history
}

// NewBiquad creates a new biquad filter with the given coefficients
func NewBiquad(b0, b1, b2, a1, a2 float32) *Biquad {
	return &Biquad{
		b0: b0,
		b1: b1,
		b2: b2,
		a1: a1,
		a2: a2,
	}
}

// Process processes one sample through the biquad filter
func (b *Biquad) Process(input float32) float32 {
	// Direct Form I implementation
	output := b.b0*input + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2

	// Update state
	b.x2 = b.x1
	b.x1 = input
	b.y2 = b.y1
	b.y1 = output

	return output
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2 = 0, 0
	b.y1, b.y2 = 0, 0
}

// NewLowpass creates an RBJ lowpass biquad.
func NewLowpass(cutoff, sampleRate, q float32) *Biquad {
	alpha, cosw0 := rbj(cutoff, sampleRate, q)
	return normalized(
		(1.0-cosw0)/2.0, 1.0-cosw0, (1.0-cosw0)/2.0,
		1.0+alpha, -2.0*cosw0, 1.0-alpha,
	)
}

// NewHighpass creates an RBJ highpass biquad.
func NewHighpass(cutoff, sampleRate, q float32) *Biquad {
	alpha, cosw0 := rbj(cutoff, sampleRate, q)
	return normalized(
		(1.0+cosw0)/2.0, -(1.0 + cosw0), (1.0+cosw0)/2.0,
		1.0+alpha, -2.0*cosw0, 1.0-alpha,
	)
}

// rbj returns the cookbook alpha and cos(w0). The cutoff is kept below
// Nyquist so high pads stay stable at low render rates.
func rbj(cutoff, sampleRate, q float32) (float64, float64) {
	if q <= 0 {
		q = 1
	}
	fc := math.Min(float64(cutoff), 0.49*float64(sampleRate))
	w0 := 2.0 * math.Pi * fc / float64(sampleRate)
	return math.Sin(w0) / (2.0 * float64(q)), math.Cos(w0)
}

// normalized divides every coefficient by a0.
func normalized(b0, b1, b2, a0, a1, a2 float64) *Biquad {
	return NewBiquad(
		float32(b0/a0),
		float32(b1/a0),
		float32(b2/a0),
		float32(a1/a0),
		float32(a2/a0),
	)
}
