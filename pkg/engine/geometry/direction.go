package geometry

// Direction is a quantized joystick direction in screen space (y grows downwards).
type Direction int

// Direction constants, ordered clockwise starting at 0°.
const (
	Right Direction = iota
	DownRight
	Down
	DownLeft
	Left
	UpLeft
	Up
	UpRight
)

var cardinals = []Direction{Right, Down, Left, Up}

var allDirections = []Direction{Right, DownRight, Down, DownLeft, Left, UpLeft, Up, UpRight}

// AllDirections returns all eight directions for iteration
func AllDirections() []Direction {
	out := make([]Direction, len(allDirections))
	copy(out, allDirections)
	return out
}

// String returns the mapping code for a direction
func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case DownRight:
		return "down-right"
	case Down:
		return "down"
	case DownLeft:
		return "down-left"
	case Left:
		return "left"
	case UpLeft:
		return "up-left"
	case Up:
		return "up"
	case UpRight:
		return "up-right"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is one of the eight known directions
func (d Direction) IsValid() bool {
	return d >= Right && d <= UpRight
}

// IsDiagonal reports whether d is one of the four diagonals
func (d Direction) IsDiagonal() bool {
	return d.IsValid() && d%2 == 1
}

// Center returns the angle in degrees at the middle of the direction's sector
func (d Direction) Center() float64 {
	return float64(d) * 45
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	if !d.IsValid() {
		return d
	}
	return (d + 4) % 8
}

// ParseDirection converts a mapping code back into a Direction
func ParseDirection(code string) (Direction, bool) {
	for _, d := range allDirections {
		if d.String() == code {
			return d, true
		}
	}
	return 0, false
}
