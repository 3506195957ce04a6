package analysis

import (
	"math"
	"testing"
)

func BenchmarkMeasure(b *testing.B) {
	x := benchmarkSignal(48000 * 2)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Measure(x, 48000)
	}
}

func BenchmarkPitch(b *testing.B) {
	x := benchmarkSignal(8192)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Pitch(x, 48000, 20, 5000)
	}
}

func benchmarkSignal(n int) []float32 {
	x := make([]float32, n)
	for i := range x {
		t := float64(i) / 48000
		x[i] = float32(0.7*math.Sin(2*math.Pi*196*t) + 0.25*math.Sin(2*math.Pi*392*t))
	}
	return x
}
