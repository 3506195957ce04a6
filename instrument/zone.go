package instrument

// Zone boundaries in normalized coordinates. The top half is split in thirds,
// the bottom half in halves.
const (
	firstThird  = 0.33
	secondThird = 0.66
	midline     = 0.5
)

// Classify maps a fingertip position to the instrument zone under it.
//
//	+--------+---------+--------+
//	| piano  | trumpet | guitar |   y < 0.5
//	+--------+----+----+--------+
//	|    drums    |   violin    |   y >= 0.5
//	+-------------+-------------+
//
// Lower bounds are inclusive, so a point on a boundary belongs to the zone to
// its right or below. Every point maps to exactly one zone.
func Classify(x, y float64) ID {
	switch {
	case x < firstThird && y < midline:
		return Piano
	case x >= firstThird && x < secondThird && y < midline:
		return Trumpet
	case x >= secondThird && y < midline:
		return Guitar
	case x < midline && y >= midline:
		return Drums
	case x >= midline && y >= midline:
		return Violin
	default:
		return Trumpet
	}
}
