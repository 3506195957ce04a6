package instrument

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-handsound/synth"
)

func TestClassifyZones(t *testing.T) {
	cases := []struct {
		x, y float64
		want ID
	}{
		{0.1, 0.1, Piano},
		{0.5, 0.2, Trumpet},
		{0.9, 0.3, Guitar},
		{0.2, 0.8, Drums},
		{0.8, 0.8, Violin},
		// boundaries belong to the zone whose lower bound they are
		{0.33, 0.4, Trumpet},
		{0.329, 0.4, Piano},
		{0.66, 0.0, Guitar},
		{0.5, 0.5, Violin},
		{0.499, 0.5, Drums},
		{0.0, 0.0, Piano},
		{1.0, 1.0, Violin},
		{1.0, 0.0, Guitar},
		{0.0, 1.0, Drums},
	}
	for _, c := range cases {
		if got := Classify(c.x, c.y); got != c.want {
			t.Fatalf("Classify(%v, %v): got=%s want=%s", c.x, c.y, got, c.want)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	c := DefaultCatalog()
	const steps = 200
	for i := 0; i <= steps; i++ {
		for j := 0; j <= steps; j++ {
			x := float64(i) / steps
			y := float64(j) / steps
			id := Classify(x, y)
			if _, ok := c.Lookup(id); !ok {
				t.Fatalf("Classify(%v, %v) returned unknown zone %q", x, y, id)
			}
		}
	}
	if _, ok := c.Lookup(Classify(math.NaN(), 0.2)); !ok {
		t.Fatalf("NaN input must still map to a zone")
	}
}

func TestProfileFrequencyIndexing(t *testing.T) {
	p, _ := DefaultCatalog().Lookup(Piano)
	cases := []struct {
		x    float64
		want float64
	}{
		{0, 261.63},
		{0.124, 261.63},
		{0.125, 293.66},
		{0.5, 392.00},
		{0.99, 523.25},
		{1.0, 523.25},
	}
	for _, c := range cases {
		if got := p.Frequency(c.x); got != c.want {
			t.Fatalf("piano Frequency(%v): got=%f want=%f", c.x, got, c.want)
		}
	}
}

func TestVolumeClamp(t *testing.T) {
	cases := []struct {
		y, want float64
	}{
		{0, MaxVolume},
		{0.4, MaxVolume},
		{0.7, 0.3},
		{0.95, MinVolume},
		{1, MinVolume},
	}
	for _, c := range cases {
		if got := Volume(c.y); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("Volume(%v): got=%f want=%f", c.y, got, c.want)
		}
	}
}

func TestDefaultCatalogOrderAndShape(t *testing.T) {
	want := []ID{Piano, Guitar, Drums, Violin, Trumpet}
	got := DefaultCatalog().Profiles()
	if len(got) != len(want) {
		t.Fatalf("expected %d profiles, got %d", len(want), len(got))
	}
	for i, p := range got {
		if p.ID != want[i] {
			t.Fatalf("profile %d: got=%s want=%s", i, p.ID, want[i])
		}
		if len(p.Frequencies) == 0 || p.Name == "" || p.Icon == "" {
			t.Fatalf("incomplete profile: %+v", p)
		}
	}
	drums, _ := DefaultCatalog().Lookup(Drums)
	if !drums.Percussive || drums.Waveform != synth.Sawtooth {
		t.Fatalf("drums profile mismatch: %+v", drums)
	}
}

func TestReplaceValidates(t *testing.T) {
	c := DefaultCatalog()
	freqs := []float64{100, 200}
	if err := c.Replace(Profile{ID: Violin, Name: "Violin", Waveform: synth.Sawtooth, Frequencies: freqs}); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	freqs[0] = -1
	p, _ := c.Lookup(Violin)
	if p.Frequencies[0] != 100 || p.Waveform != synth.Sawtooth {
		t.Fatalf("replacement not isolated from caller slice: %+v", p)
	}
	if err := c.Replace(Profile{ID: "harp", Waveform: synth.Sine, Frequencies: []float64{1}}); err == nil {
		t.Fatalf("expected error for unknown instrument")
	}
	if err := c.Replace(Profile{ID: Piano, Waveform: synth.Sine}); err == nil {
		t.Fatalf("expected error for empty table")
	}
	if err := c.Replace(Profile{ID: Piano, Waveform: "noise", Frequencies: []float64{1}}); err == nil {
		t.Fatalf("expected error for bad waveform")
	}
}
