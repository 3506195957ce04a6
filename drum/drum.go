// Package drum implements the six-pad percussion grid: pad selection,
// per-pad debouncing and synthesis of the decaying hits.
package drum

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-handsound/internal/mathx"
)

// PadID names a drum pad.
type PadID string

const (
	Kick  PadID = "kick"
	Snare PadID = "snare"
	HiHat PadID = "hihat"
	Tom   PadID = "tom"
	Crash PadID = "crash"
	Ride  PadID = "ride"
)

// grid lists pads row by row, three per row, top row first.
var grid = [6]PadID{Kick, Snare, HiHat, Tom, Crash, Ride}

// Pads returns the pad ids in grid order.
func Pads() []PadID {
	return append([]PadID(nil), grid[:]...)
}

// Classify maps a fingertip position onto the 3x2 pad grid. Positions on the
// right or bottom edge stay on the last column or row.
func Classify(x, y float64) PadID {
	col := mathx.ClampIndex(x, 3)
	row := mathx.ClampIndex(y, 2)
	return grid[mathx.Clamp(row*3+col, 0, len(grid)-1)]
}

// Profile holds the synthesis settings of one pad.
type Profile struct {
	Frequency float64
	Decay     time.Duration
}

// Kit maps every pad to its profile.
type Kit map[PadID]Profile

// DefaultKit returns the built-in pad settings.
func DefaultKit() Kit {
	return Kit{
		Kick:  {Frequency: 60, Decay: 500 * time.Millisecond},
		Snare: {Frequency: 200, Decay: 200 * time.Millisecond},
		HiHat: {Frequency: 8000, Decay: 50 * time.Millisecond},
		Tom:   {Frequency: 150, Decay: 300 * time.Millisecond},
		Crash: {Frequency: 3000, Decay: 800 * time.Millisecond},
		Ride:  {Frequency: 2000, Decay: 600 * time.Millisecond},
	}
}

// Validate checks that every pad is present with usable settings.
func (k Kit) Validate() error {
	for _, id := range grid {
		p, ok := k[id]
		if !ok {
			return fmt.Errorf("kit: missing pad %q", id)
		}
		if p.Frequency <= 0 {
			return fmt.Errorf("kit: pad %q frequency must be > 0", id)
		}
		if p.Decay <= 0 {
			return fmt.Errorf("kit: pad %q decay must be > 0", id)
		}
	}
	return nil
}
