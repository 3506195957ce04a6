// Package analysis measures rendered audio so instrument and pad profiles can
// be checked by ear and by number.
package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// maxWindow bounds the spectral and autocorrelation windows.
const maxWindow = 8192

// Metrics summarizes one rendered segment.
type Metrics struct {
	SampleRate  int     `json:"sample_rate"`
	Frames      int     `json:"frames"`
	RMS         float64 `json:"rms"`
	Peak        float64 `json:"peak"`
	DominantHz  float64 `json:"dominant_hz"`
	PitchHz     float64 `json:"pitch_hz"`
	DecayDBPerS float64 `json:"decay_db_per_s"`
}

// Measure computes every metric for samples. Pitch is searched between 20 Hz
// and 5 kHz; metrics that cannot be determined are zero (NaN for decay).
func Measure(samples []float32, sampleRate int) Metrics {
	m := Metrics{
		SampleRate:  sampleRate,
		Frames:      len(samples),
		DecayDBPerS: math.NaN(),
	}
	if sampleRate <= 0 || len(samples) == 0 {
		return m
	}
	m.RMS = RMS(samples)
	m.Peak = Peak(samples)
	m.DominantHz = DominantFrequency(samples, sampleRate)
	if hz, err := Pitch(samples, sampleRate, 20, 5000); err == nil {
		m.PitchHz = hz
	}
	m.DecayDBPerS = DecaySlope(samples, sampleRate)
	return m
}

// RMS returns the root mean square level.
func RMS(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	x64 := toFloat64(x)
	return math.Sqrt(floats.Dot(x64, x64) / float64(len(x64)))
}

// Peak returns the largest absolute sample value.
func Peak(x []float32) float64 {
	if len(x) == 0 {
		return 0
	}
	x64 := toFloat64(x)
	return math.Max(floats.Max(x64), -floats.Min(x64))
}

// DominantFrequency returns the frequency of the strongest FFT bin of a
// Hann-windowed excerpt, interpolated between neighbouring bins.
func DominantFrequency(x []float32, sampleRate int) float64 {
	n := len(x)
	if n > maxWindow {
		n = maxWindow
	}
	if n < 16 {
		return 0
	}
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		w[i] = float64(x[i]) * (0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	spectrum := fft.FFTReal(w)
	mags := make([]float64, n/2)
	for k := 1; k < n/2; k++ {
		mags[k] = cmplx.Abs(spectrum[k])
	}
	best := floats.MaxIdx(mags)
	if best == 0 || mags[best] == 0 {
		return 0
	}
	offset := 0.0
	if best > 1 && best < len(mags)-1 {
		a, b, c := mags[best-1], mags[best], mags[best+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}
	return (float64(best) + offset) * float64(sampleRate) / float64(n)
}

// Pitch estimates the fundamental by autocorrelation, searching periods that
// correspond to [minHz, maxHz].
func Pitch(x []float32, sampleRate int, minHz, maxHz float64) (float64, error) {
	if minHz <= 0 || maxHz <= minHz {
		return 0, fmt.Errorf("invalid pitch range [%g, %g]", minHz, maxHz)
	}
	n := len(x)
	if n > maxWindow {
		n = maxWindow
	}
	minLag := int(float64(sampleRate) / maxHz)
	maxLag := int(float64(sampleRate) / minHz)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag > n-1 {
		maxLag = n - 1
	}
	if minLag >= maxLag {
		return 0, fmt.Errorf("segment too short for pitch search: %d frames", n)
	}

	a := x[:n]
	rev := make([]float32, n)
	for i := range a {
		rev[n-1-i] = a[i]
	}
	corr := make([]float32, 2*n-1)
	if err := algofft.ConvolveReal(corr, a, rev); err != nil {
		return 0, fmt.Errorf("autocorrelation: %w", err)
	}
	if corr[n-1] <= 0 {
		return 0, fmt.Errorf("silent segment")
	}

	bestLag := 0
	best := float32(0)
	for lag := minLag; lag <= maxLag; lag++ {
		if r := corr[n-1+lag]; r > best {
			best = r
			bestLag = lag
		}
	}
	if bestLag == 0 {
		return 0, fmt.Errorf("no periodicity found")
	}
	return float64(sampleRate) / float64(bestLag), nil
}

// DecaySlope fits a line to the level envelope after its peak and returns the
// slope in dB per second, or NaN when the segment is too short.
func DecaySlope(x []float32, sampleRate int) float64 {
	const frame, hop = 256, 128
	env := rmsEnvelope(toFloat64(x), frame, hop)
	if len(env) < 8 || sampleRate <= 0 {
		return math.NaN()
	}
	hopSec := float64(hop) / float64(sampleRate)

	peakIdx := floats.MaxIdx(env)
	peak := linToDB(env[peakIdx])
	start := peakIdx + 1
	end := len(env)
	for i := start; i < len(env); i++ {
		if linToDB(env[i]) < peak-60 {
			end = i
			break
		}
	}
	if end-start < 6 {
		return math.NaN()
	}

	var sx, sy, sxx, sxy float64
	cnt := float64(end - start)
	for i := start; i < end; i++ {
		t := float64(i-start) * hopSec
		y := linToDB(env[i])
		sx += t
		sy += y
		sxx += t * t
		sxy += t * y
	}
	den := cnt*sxx - sx*sx
	if math.Abs(den) < 1e-12 {
		return math.NaN()
	}
	return (cnt*sxy - sx*sy) / den
}

func rmsEnvelope(x []float64, frame int, hop int) []float64 {
	if frame <= 0 || hop <= 0 || len(x) < frame {
		return nil
	}
	n := 1 + (len(x)-frame)/hop
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		w := x[i*hop : i*hop+frame]
		out[i] = math.Sqrt(floats.Dot(w, w) / float64(frame))
	}
	return out
}

func linToDB(x float64) float64 {
	if x < 1e-12 {
		x = 1e-12
	}
	return 20.0 * math.Log10(x)
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
