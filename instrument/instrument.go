// Package instrument describes the sustained-tone instruments and maps hand
// position onto them.
package instrument

import (
	"fmt"
	"slices"

	"github.com/cwbudde/algo-handsound/internal/mathx"
	"github.com/cwbudde/algo-handsound/synth"
)

// ID names an instrument zone.
type ID string

const (
	Piano   ID = "piano"
	Guitar  ID = "guitar"
	Drums   ID = "drums"
	Violin  ID = "violin"
	Trumpet ID = "trumpet"
)

// Volume bounds for the vertical position mapping.
const (
	MinVolume = 0.1
	MaxVolume = 0.5
)

// Profile is the static description of one instrument.
type Profile struct {
	ID          ID             `json:"id"`
	Name        string         `json:"name"`
	Icon        string         `json:"icon"`
	Waveform    synth.Waveform `json:"waveform"`
	Frequencies []float64      `json:"frequencies"`
	Percussive  bool           `json:"percussive"`
}

// Frequency picks the table entry for horizontal position x. The table is
// split into equal slices; x at or past 1.0 selects the last entry.
func (p Profile) Frequency(x float64) float64 {
	return p.Frequencies[mathx.ClampIndex(x, len(p.Frequencies))]
}

// Volume maps vertical position y (0 at the top) to a gain in
// [MinVolume, MaxVolume]; raising the hand plays louder.
func Volume(y float64) float64 {
	return mathx.Clamp(1-y, MinVolume, MaxVolume)
}

// Catalog is an ordered set of instrument profiles.
type Catalog struct {
	order    []ID
	profiles map[ID]Profile
}

// DefaultCatalog returns the five built-in instruments.
func DefaultCatalog() *Catalog {
	c := &Catalog{profiles: make(map[ID]Profile)}
	for _, p := range []Profile{
		{
			ID: Piano, Name: "Piano", Icon: "🎹", Waveform: synth.Sine,
			Frequencies: []float64{261.63, 293.66, 329.63, 349.23, 392.00, 440.00, 493.88, 523.25},
		},
		{
			ID: Guitar, Name: "Guitar", Icon: "🎸", Waveform: synth.Triangle,
			Frequencies: []float64{82.41, 110.00, 146.83, 196.00, 246.94, 329.63, 392.00},
		},
		{
			ID: Drums, Name: "Drums", Icon: "🥁", Waveform: synth.Sawtooth, Percussive: true,
			Frequencies: []float64{100, 150, 200, 250, 300, 350, 400},
		},
		{
			ID: Violin, Name: "Violin", Icon: "🎻", Waveform: synth.Sine,
			Frequencies: []float64{196.00, 246.94, 293.66, 349.23, 440.00, 523.25, 659.25, 783.99},
		},
		{
			ID: Trumpet, Name: "Trumpet", Icon: "🎺", Waveform: synth.Square,
			Frequencies: []float64{233.08, 293.66, 349.23, 415.30, 466.16, 554.37, 659.25, 739.99},
		},
	} {
		c.order = append(c.order, p.ID)
		c.profiles[p.ID] = p
	}
	return c
}

// Lookup returns the profile for id.
func (c *Catalog) Lookup(id ID) (Profile, bool) {
	p, ok := c.profiles[id]
	return p, ok
}

// Profiles returns every profile in catalog order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.profiles[id])
	}
	return out
}

// Replace swaps in a new definition for an existing instrument. Zones are
// fixed, so unknown ids are rejected.
func (c *Catalog) Replace(p Profile) error {
	if _, ok := c.profiles[p.ID]; !ok {
		return fmt.Errorf("unknown instrument %q", p.ID)
	}
	if len(p.Frequencies) == 0 {
		return fmt.Errorf("instrument %q: empty frequency table", p.ID)
	}
	for i, f := range p.Frequencies {
		if f <= 0 {
			return fmt.Errorf("instrument %q: frequency[%d] must be > 0", p.ID, i)
		}
	}
	if _, err := synth.ParseWaveform(string(p.Waveform)); err != nil {
		return fmt.Errorf("instrument %q: %w", p.ID, err)
	}
	p.Frequencies = slices.Clone(p.Frequencies)
	c.profiles[p.ID] = p
	return nil
}
