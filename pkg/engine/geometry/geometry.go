// Package geometry converts pointer positions into normalized joystick vectors
// and quantized directions. Every function here is pure.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

// Defaults for Options.
const (
	DefaultDeadzone           = 0.1
	DefaultDirectionThreshold = 45.0

	eightWayHalfWidth = 22.5
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid joystick options")

// Point is a position in screen coordinates.
type Point struct {
	X, Y float64
}

// Position is the normalized state of a joystick.
// X and Y are in [-1,1], Distance in [0,1], Angle in degrees in [0,360).
type Position struct {
	X        float64
	Y        float64
	Distance float64
	Angle    float64
}

// Options controls direction quantization.
type Options struct {
	// Deadzone is the normalized radius below which no direction is reported.
	Deadzone float64
	// DirectionThreshold is the half-width in degrees of each 4-way sector.
	DirectionThreshold float64
	// EightWay switches from four 90° sectors to eight 45° sectors.
	EightWay bool
}

// DefaultOptions returns deadzone 0.1, threshold 45° and 4-way quantization.
func DefaultOptions() Options {
	return Options{
		Deadzone:           DefaultDeadzone,
		DirectionThreshold: DefaultDirectionThreshold,
	}
}

// Validate checks that the deadzone is in [0,1] and the threshold in (0,180].
func (o Options) Validate() error {
	if math.IsNaN(o.Deadzone) || o.Deadzone < 0 || o.Deadzone > 1 {
		return fmt.Errorf("%w: deadzone %v outside [0,1]", ErrInvalidOptions, o.Deadzone)
	}
	if math.IsNaN(o.DirectionThreshold) || o.DirectionThreshold <= 0 || o.DirectionThreshold > 180 {
		return fmt.Errorf("%w: direction threshold %v outside (0,180]", ErrInvalidOptions, o.DirectionThreshold)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NormalizeAngle maps any angle in degrees into [0,360).
func NormalizeAngle(deg float64) float64 {
	a := math.Mod(deg, 360)
	if a < 0 {
		a += 360
	}
	// math.Mod of a tiny negative value can round back up to 360
	if a >= 360 {
		a = 0
	}
	return a
}

// ComputePosition normalizes the offset of pointer from origin against maxRadius.
// A non-positive maxRadius yields the zero Position.
func ComputePosition(pointer, origin Point, maxRadius float64) Position {
	if maxRadius <= 0 || math.IsNaN(maxRadius) {
		return Position{}
	}
	dx := pointer.X - origin.X
	dy := pointer.Y - origin.Y

	return Position{
		X:        clamp(dx/maxRadius, -1, 1),
		Y:        clamp(dy/maxRadius, -1, 1),
		Distance: clamp(math.Hypot(dx, dy)/maxRadius, 0, 1),
		Angle:    NormalizeAngle(math.Atan2(dy, dx) * 180 / math.Pi),
	}
}

// offset returns angle-center folded into [-180,180).
func offset(angle, center float64) float64 {
	return NormalizeAngle(angle-center+180) - 180
}

// QuantizeDirection converts a position into a direction. The second result is
// false when the position is inside the deadzone or falls in a gap between
// sectors (only possible with a 4-way threshold below 45°).
//
// Sectors are closed-open: [center-halfWidth, center+halfWidth). An angle on a
// boundary therefore belongs to the next sector clockwise.
//
// A position at the exact center has no angle and is always neutral. A zero
// threshold in unvalidated Options falls back to 45°.
func QuantizeDirection(pos Position, opts Options) (Direction, bool) {
	if pos.Distance == 0 || pos.Distance < opts.Deadzone {
		return 0, false
	}

	candidates := cardinals
	halfWidth := opts.DirectionThreshold
	if halfWidth <= 0 {
		halfWidth = DefaultDirectionThreshold
	}
	if opts.EightWay {
		candidates = allDirections
		halfWidth = eightWayHalfWidth
	}

	angle := NormalizeAngle(pos.Angle)
	best, found := Direction(0), false
	bestOff := 0.0
	for _, d := range candidates {
		off := offset(angle, d.Center())
		if off < -halfWidth || off >= halfWidth {
			continue
		}
		// Overlapping sectors: nearest center wins, a tie goes to the sector
		// whose lower bound the angle sits on.
		if !found || math.Abs(off) < math.Abs(bestOff) || (math.Abs(off) == math.Abs(bestOff) && off < 0) {
			best, bestOff, found = d, off, true
		}
	}
	return best, found
}
