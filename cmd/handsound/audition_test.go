package main

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-handsound/analysis"
	"github.com/cwbudde/algo-handsound/internal/wavio"
	"github.com/cwbudde/algo-handsound/preset"
)

func TestRenderAuditionSegments(t *testing.T) {
	const sr = 48000
	samples, segments, err := renderAudition(preset.Default(), sr, 30)
	if err != nil {
		t.Fatalf("renderAudition: %v", err)
	}
	if len(segments) != 11 {
		t.Fatalf("expected 5 instruments and 6 pads, got %d segments", len(segments))
	}
	if segments[len(segments)-1].end != len(samples) {
		t.Fatalf("segments must cover the render")
	}
	for _, s := range segments {
		m := analysis.Measure(samples[s.start:s.end], sr)
		if m.Peak == 0 {
			t.Fatalf("segment %s is silent", s.name)
		}
		if m.Peak > 1.5 || math.IsNaN(m.RMS) {
			t.Fatalf("segment %s out of range: %+v", s.name, m)
		}
	}
	if !strings.HasPrefix(segments[5].name, "pad:") {
		t.Fatalf("expected pads after instruments, got %s", segments[5].name)
	}
}

func TestRenderAuditionPianoSweepStartsAtMiddleC(t *testing.T) {
	const sr = 48000
	samples, segments, err := renderAudition(preset.Default(), sr, 30)
	if err != nil {
		t.Fatalf("renderAudition: %v", err)
	}
	piano := segments[0]
	if piano.name != "piano" {
		t.Fatalf("expected piano first, got %s", piano.name)
	}
	first := samples[piano.start : piano.start+sr/5]
	if got := analysis.DominantFrequency(first, sr); math.Abs(got-261.63) > 8 {
		t.Fatalf("first sweep step: got=%f want~261.63", got)
	}
}

func TestRenderAuditionRejectsBadRates(t *testing.T) {
	if _, _, err := renderAudition(preset.Default(), 0, 30); err == nil {
		t.Fatalf("expected error for zero sample rate")
	}
}

func TestVerifyWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.wav")
	samples := make([]float32, 4800)
	for i := range samples {
		samples[i] = float32(0.3 * math.Sin(2*math.Pi*440*float64(i)/48000))
	}
	if err := wavio.WriteMono(path, samples, 48000); err != nil {
		t.Fatalf("WriteMono: %v", err)
	}
	if err := verifyWAV(path, len(samples), 48000); err != nil {
		t.Fatalf("verifyWAV: %v", err)
	}
	if err := verifyWAV(path, len(samples)+1, 48000); err == nil {
		t.Fatalf("expected length mismatch error")
	}
	if err := verifyWAV(filepath.Join(t.TempDir(), "missing.wav"), 1, 48000); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
