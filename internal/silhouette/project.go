package silhouette

import (
	"math"

	"snowglobe/internal/state"
)

// RadiusAt returns the widest radius of the revolved profile at height y.
// It reports false when no segment of the profile reaches that height.
func RadiusAt(profile []ProfilePoint, y float64) (float64, bool) {
	r, found := 0.0, false
	if len(profile) == 1 && profile[0].Y == y {
		return profile[0].X, true
	}
	for i := 1; i < len(profile); i++ {
		a, b := profile[i-1], profile[i]
		if y < math.Min(a.Y, b.Y) || y > math.Max(a.Y, b.Y) {
			continue
		}
		var x float64
		if a.Y == b.Y {
			x = math.Max(a.X, b.X)
		} else {
			t := (y - a.Y) / (b.Y - a.Y)
			x = a.X + t*(b.X-a.X)
		}
		if !found || x > r {
			r, found = x, true
		}
	}
	return r, found
}

// Project maps a click on the front view of the revolved profile, u across
// and v up, onto the surface facing the viewer (+Z). It returns the surface
// position and outward normal, or false when the click misses the surface.
func Project(profile []ProfilePoint, u, v float64) ([3]float64, state.Vector3, bool) {
	r, ok := RadiusAt(profile, v)
	if !ok || math.Abs(u) > r {
		return [3]float64{}, state.Vector3{}, false
	}
	z := math.Sqrt(r*r - u*u)
	n := state.Vec3(0, 0, 1)
	if l := math.Hypot(u, z); l > 0 {
		n = state.Vec3(u/l, 0, z/l)
	}
	return [3]float64{u, v, z}, n, true
}
