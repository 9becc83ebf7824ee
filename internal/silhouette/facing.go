package silhouette

import (
	"fmt"

	"snowglobe/internal/state"
)

// Facing tells whether the drawn tree opens upward or downward.
type Facing int

const (
	Up Facing = iota
	Down
)

func (f Facing) String() string {
	switch f {
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	}
	return fmt.Sprintf("Facing(%d)", int(f))
}

// MarshalText implements encoding.TextMarshaler.
func (f Facing) MarshalText() ([]byte, error) {
	if f != Up && f != Down {
		return nil, fmt.Errorf("silhouette: invalid facing %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Facing) UnmarshalText(b []byte) error {
	switch string(b) {
	case "UP":
		*f = Up
	case "DOWN":
		*f = Down
	default:
		return fmt.Errorf("silhouette: unknown facing %q", b)
	}
	return nil
}

// DetermineFacing compares the first and last raw points. A path that ends
// lower on screen than it started faces up. Fewer than two points face up.
func DetermineFacing(points []state.Point) Facing {
	if len(points) < 2 {
		return Up
	}
	if points[0].Y < points[len(points)-1].Y {
		return Up
	}
	return Down
}
