package synth

import (
	"fmt"
	"testing"
	"time"
)

func BenchmarkEngineProcess(b *testing.B) {
	for _, voices := range []int{1, 6, 24} {
		b.Run(fmt.Sprintf("voices_%d", voices), func(b *testing.B) {
			e := NewEngine(48000)
			for i := 0; i < voices; i++ {
				tn := e.CreateTone(Sawtooth, 110*float64(i+1), 0.05)
				tn.RampFrequency(220*float64(i+1), time.Second)
			}
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = e.Process(128)
			}
		})
	}
}

func BenchmarkEngineHits(b *testing.B) {
	e := NewEngine(48000)
	hit := Hit{
		Waveform:   Square,
		Frequency:  3000,
		Gain:       0.3,
		GainTarget: ExpFloor,
		Filter:     &Filter{Type: HighPass, Frequency: 3000, Q: 1},
		Decay:      50 * time.Millisecond,
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.CreateHit(hit)
		_ = e.Process(128)
	}
}
