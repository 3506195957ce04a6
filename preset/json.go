package preset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/cwbudde/algo-handsound/drum"
	"github.com/cwbudde/algo-handsound/instrument"
	"github.com/cwbudde/algo-handsound/synth"
)

// File is the JSON schema for profile presets. Every field is optional and
// overrides the built-in value it names.
type File struct {
	Instruments map[string]InstrumentSetting `json:"instruments"`
	Pads        map[string]PadSetting        `json:"pads"`
}

// InstrumentSetting is a partial instrument override entry.
type InstrumentSetting struct {
	Name        *string   `json:"name"`
	Icon        *string   `json:"icon"`
	Waveform    *string   `json:"waveform"`
	Frequencies []float64 `json:"frequencies"`
}

// PadSetting is a partial drum pad override entry.
type PadSetting struct {
	Frequency *float64 `json:"frequency"`
	Decay     *float64 `json:"decay"` // seconds
}

// Preset bundles the tables the controllers play from.
type Preset struct {
	Catalog *instrument.Catalog
	Kit     drum.Kit
}

// Default returns the built-in tables.
func Default() *Preset {
	return &Preset{
		Catalog: instrument.DefaultCatalog(),
		Kit:     drum.DefaultKit(),
	}
}

// LoadJSON loads a preset JSON file and applies it on top of the defaults.
func LoadJSON(path string) (*Preset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse preset %s: %w", path, err)
	}

	p := Default()
	if err := ApplyFile(p, &f); err != nil {
		return nil, err
	}
	return p, nil
}

// ApplyFile applies a parsed preset file onto an existing preset.
func ApplyFile(dst *Preset, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination preset")
	}
	if f == nil {
		return nil
	}

	for _, k := range sortedKeys(f.Instruments) {
		if err := applyInstrument(dst.Catalog, instrument.ID(k), f.Instruments[k]); err != nil {
			return err
		}
	}

	for _, k := range sortedKeys(f.Pads) {
		pad := drum.PadID(k)
		cur, ok := dst.Kit[pad]
		if !ok {
			return fmt.Errorf("invalid pads key %q", k)
		}
		s := f.Pads[k]
		if s.Frequency != nil {
			if *s.Frequency <= 0 {
				return fmt.Errorf("pads[%s].frequency must be > 0", k)
			}
			cur.Frequency = *s.Frequency
		}
		if s.Decay != nil {
			if *s.Decay <= 0 || *s.Decay > 10 {
				return fmt.Errorf("pads[%s].decay must be in (0,10] seconds", k)
			}
			cur.Decay = time.Duration(math.Round(*s.Decay * float64(time.Second)))
		}
		dst.Kit[pad] = cur
	}
	return dst.Kit.Validate()
}

func applyInstrument(c *instrument.Catalog, id instrument.ID, s InstrumentSetting) error {
	p, ok := c.Lookup(id)
	if !ok {
		return fmt.Errorf("invalid instruments key %q", id)
	}
	if s.Name != nil {
		p.Name = *s.Name
	}
	if s.Icon != nil {
		p.Icon = *s.Icon
	}
	if s.Waveform != nil {
		w, err := synth.ParseWaveform(*s.Waveform)
		if err != nil {
			return fmt.Errorf("instruments[%s].waveform: %w", id, err)
		}
		p.Waveform = w
	}
	if s.Frequencies != nil {
		p.Frequencies = s.Frequencies
	}
	if err := c.Replace(p); err != nil {
		return fmt.Errorf("instruments[%s]: %w", id, err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
