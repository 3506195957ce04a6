package preset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/algo-handsound/drum"
	"github.com/cwbudde/algo-handsound/instrument"
	"github.com/cwbudde/algo-handsound/synth"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestLoadJSONAppliesInstrumentsAndPads(t *testing.T) {
	path := writePreset(t, `{
  "instruments": {
    "violin": {
      "waveform": "sawtooth",
      "frequencies": [196, 220, 247]
    },
    "piano": {"name": "Grand"}
  },
  "pads": {
    "kick": {"frequency": 48, "decay": 0.65},
    "ride": {"decay": 1.2}
  }
}`)

	p, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	violin, _ := p.Catalog.Lookup(instrument.Violin)
	if violin.Waveform != synth.Sawtooth || len(violin.Frequencies) != 3 || violin.Frequencies[1] != 220 {
		t.Fatalf("violin override mismatch: %+v", violin)
	}
	piano, _ := p.Catalog.Lookup(instrument.Piano)
	if piano.Name != "Grand" || piano.Icon != "🎹" || len(piano.Frequencies) != 8 {
		t.Fatalf("partial piano override mismatch: %+v", piano)
	}
	if k := p.Kit[drum.Kick]; k.Frequency != 48 || k.Decay != 650*time.Millisecond {
		t.Fatalf("kick override mismatch: %+v", k)
	}
	if r := p.Kit[drum.Ride]; r.Frequency != 2000 || r.Decay != 1200*time.Millisecond {
		t.Fatalf("ride override mismatch: %+v", r)
	}
	if s := p.Kit[drum.Snare]; s != drum.DefaultKit()[drum.Snare] {
		t.Fatalf("untouched pad changed: %+v", s)
	}
}

func TestLoadJSONRejectsUnknownKeys(t *testing.T) {
	for _, content := range []string{
		`{"instruments": {"harp": {"waveform": "sine"}}}`,
		`{"pads": {"cowbell": {"frequency": 800}}}`,
	} {
		if _, err := LoadJSON(writePreset(t, content)); err == nil {
			t.Fatalf("expected error for %s", content)
		}
	}
}

func TestLoadJSONRejectsInvalidRanges(t *testing.T) {
	for _, content := range []string{
		`{"instruments": {"piano": {"frequencies": [261, -1]}}}`,
		`{"instruments": {"piano": {"frequencies": []}}}`,
		`{"instruments": {"piano": {"waveform": "noise"}}}`,
		`{"pads": {"snare": {"decay": 0}}}`,
		`{"pads": {"hihat": {"frequency": -8000}}}`,
	} {
		if _, err := LoadJSON(writePreset(t, content)); err == nil {
			t.Fatalf("expected error for %s", content)
		}
	}
}

func TestLoadJSONMissingFile(t *testing.T) {
	if _, err := LoadJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
