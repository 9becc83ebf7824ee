package silhouette

import (
	"math"
	"slices"

	"snowglobe/internal/state"
)

const (
	// Threshold is the minimum distance, in UI units, between retained points.
	Threshold = 10.0

	// WidthScale and HeightScale size the normalized profile.
	WidthScale  = 8.0
	HeightScale = 16.0

	// BoundsEpsilon widens the range on the second point so that a vertical
	// or horizontal first segment never yields an empty range.
	BoundsEpsilon = 0.01

	// MinProfilePoints is the smallest profile a surface can be built from.
	MinProfilePoints = 3
)

// ClosingPoint is appended to every profile so the revolved surface closes
// at the axis.
var ClosingPoint = ProfilePoint{X: 0, Y: 1}

// ProfilePoint is a point of the profile curve: X is the radius, Y the height.
type ProfilePoint struct {
	X, Y float64
}

// Bounds is the axis-aligned range of a decimated path.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns XMax - XMin.
func (b Bounds) Width() float64 { return b.XMax - b.XMin }

// Height returns YMax - YMin.
func (b Bounds) Height() float64 { return b.YMax - b.YMin }

// Processor holds the tunables of the pipeline.
type Processor struct {
	Threshold   float64
	WidthScale  float64
	HeightScale float64
	Epsilon     float64
}

// Default is the processor used by the package-level functions.
var Default = Processor{
	Threshold:   Threshold,
	WidthScale:  WidthScale,
	HeightScale: HeightScale,
	Epsilon:     BoundsEpsilon,
}

// Decimate thins dense clusters from a drag path. The first and last points
// are always kept. An interior point is kept only if it lies farther than the
// threshold from the last kept point.
func (pr Processor) Decimate(points []state.Point) []state.Point {
	out := make([]state.Point, 0, len(points))
	for i, p := range points {
		if i == 0 || i == len(points)-1 {
			out = append(out, p)
			continue
		}
		last := out[len(out)-1]
		if math.Hypot(last.X-p.X, last.Y-p.Y) > pr.Threshold {
			out = append(out, p)
		}
	}
	return out
}

// ComputeBounds folds the points into a range per axis.
//
// The second point is special: if it is not below the current minimum, the
// maximum becomes its value plus Epsilon, even when that is smaller than the
// first point. Later points use an ordinary running min/max.
func (pr Processor) ComputeBounds(points []state.Point) Bounds {
	xMin, xMax := foldRange(points, pr.Epsilon, func(p state.Point) float64 { return p.X })
	yMin, yMax := foldRange(points, pr.Epsilon, func(p state.Point) float64 { return p.Y })
	return Bounds{XMin: xMin, XMax: xMax, YMin: yMin, YMax: yMax}
}

func foldRange(points []state.Point, eps float64, axis func(state.Point) float64) (lo, hi float64) {
	for i, p := range points {
		v := axis(p)
		switch {
		case i == 0:
			lo, hi = v, v
		case i == 1:
			if v < lo {
				lo = v
			} else {
				hi = v + eps
			}
		case v < lo:
			lo = v
		case v > hi:
			hi = v
		}
	}
	return lo, hi
}

// Normalize maps the points into profile space and appends ClosingPoint.
// Screen y is inverted so the profile grows upward. An axis with an empty
// range maps to 0.
func (pr Processor) Normalize(points []state.Point, b Bounds) []ProfilePoint {
	out := make([]ProfilePoint, 0, len(points)+1)
	w, h := b.Width(), b.Height()
	for _, p := range points {
		var x, y float64
		if w != 0 {
			x = (p.X - b.XMin) / w
		}
		if h != 0 {
			y = 1 - (p.Y-b.YMin)/h
		}
		out = append(out, ProfilePoint{X: x * pr.WidthScale, Y: y * pr.HeightScale})
	}
	return append(out, ClosingPoint)
}

// Build runs the whole pipeline on a raw drag path.
func (pr Processor) Build(points []state.Point) Profile {
	reduced := pr.Decimate(points)
	return Profile{
		Points: pr.Normalize(reduced, pr.ComputeBounds(reduced)),
		Facing: DetermineFacing(points),
	}
}

// Decimate calls Default.Decimate.
func Decimate(points []state.Point) []state.Point { return Default.Decimate(points) }

// ComputeBounds calls Default.ComputeBounds.
func ComputeBounds(points []state.Point) Bounds { return Default.ComputeBounds(points) }

// Normalize calls Default.Normalize.
func Normalize(points []state.Point, b Bounds) []ProfilePoint { return Default.Normalize(points, b) }

// Build calls Default.Build.
func Build(points []state.Point) Profile { return Default.Build(points) }

// Profile is the output of the pipeline.
type Profile struct {
	Points []ProfilePoint
	Facing Facing
}

// Ready reports whether the profile has enough points to build a surface.
func (p Profile) Ready() bool {
	return len(p.Points) >= MinProfilePoints
}

// LatheOrder returns the points in the order a surface generator should
// consume them: reversed when the gesture faced down.
func (p Profile) LatheOrder() []ProfilePoint {
	pts := slices.Clone(p.Points)
	if p.Facing == Down {
		slices.Reverse(pts)
	}
	return pts
}
