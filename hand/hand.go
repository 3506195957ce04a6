// Package hand holds the landmark model delivered by the hand tracker and the
// finger-count heuristic used to gate drum hits.
package hand

import (
	"errors"
	"fmt"
	"math"
)

// Landmark indices follow the MediaPipe hand model.
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// ErrTooFewLandmarks is returned by Validate for truncated hands.
var ErrTooFewLandmarks = errors.New("hand: too few landmarks")

// Point is a normalized landmark position. X and Y are in [0,1] with the
// origin at the top-left of the (mirrored) image; Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Hand is the ordered landmark list of one detected hand.
type Hand []Point

// fingerTips and fingerPIPs pair the four non-thumb fingers.
var (
	fingerTips = [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}
	fingerPIPs = [4]int{IndexPIP, MiddlePIP, RingPIP, PinkyPIP}
)

// IndexTip returns the index fingertip, the point that drives zone selection.
// A hand with fewer than NumLandmarks points panics.
func (h Hand) IndexTip() Point {
	return h[IndexTip]
}

// CountExtendedFingers returns how many fingers (0..5) are raised.
//
// A non-thumb finger is up when its tip sits above its PIP joint in image
// coordinates. The thumb is up when its tip lies left of its IP joint, which
// only holds for an upright hand facing the camera; rotated hands are
// misclassified.
func CountExtendedFingers(h Hand) int {
	count := 0
	for i := range fingerTips {
		if h[fingerTips[i]].Y < h[fingerPIPs[i]].Y {
			count++
		}
	}
	if h[ThumbTip].X < h[ThumbIP].X {
		count++
	}
	return count
}

// Validate reports whether h can be handed to the frame handlers. Frames
// decoded from the network go through it; tracker output is trusted.
func Validate(h Hand) error {
	if len(h) < NumLandmarks {
		return fmt.Errorf("%w: got %d, need %d", ErrTooFewLandmarks, len(h), NumLandmarks)
	}
	for i, p := range h {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return fmt.Errorf("hand: landmark %d is not finite", i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
