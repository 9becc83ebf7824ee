// Package export renders a snow globe tree as a PNG thumbnail or a
// printable PDF card.
package export

import (
	"math"

	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
)

// OrnamentRadius is the drawn ornament radius in profile units.
const OrnamentRadius = 0.45

// frame maps profile coordinates into a page or image box: the trunk axis
// at cx, profile height 0 at base, y growing downward.
type frame struct {
	cx, base, scale float64
}

// fit centers the mirrored profile inside the box at (x, y) of size w by h.
func fit(profile []silhouette.ProfilePoint, x, y, w, h float64) frame {
	maxR, maxY := 0.0, 0.0
	for _, p := range profile {
		maxR = math.Max(maxR, math.Abs(p.X))
		maxY = math.Max(maxY, p.Y)
	}
	maxR += OrnamentRadius
	maxY += OrnamentRadius

	scale := math.Min(w/(2*maxR), h/maxY)
	return frame{
		cx:    x + w/2,
		base:  y + h/2 + maxY*scale/2,
		scale: scale,
	}
}

func (f frame) at(px, py float64) (float64, float64) {
	return f.cx + px*f.scale, f.base - py*f.scale
}

// outline returns the closed mirrored silhouette: the profile on the right
// followed by its reflection on the left in reverse order.
func outline(profile []silhouette.ProfilePoint) []silhouette.ProfilePoint {
	out := make([]silhouette.ProfilePoint, 0, 2*len(profile))
	out = append(out, profile...)
	for i := len(profile) - 1; i >= 0; i-- {
		out = append(out, silhouette.ProfilePoint{X: -profile[i].X, Y: profile[i].Y})
	}
	return out
}

// visible returns the ornaments on the half of the tree facing the viewer,
// back to front.
func visible(ornaments []state.Ornament) []state.Ornament {
	out := make([]state.Ornament, 0, len(ornaments))
	for _, o := range ornaments {
		if o.Position[2] >= 0 {
			out = append(out, o)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Position[2] < out[j-1].Position[2]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
