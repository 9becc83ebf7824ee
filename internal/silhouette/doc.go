// Package silhouette turns a freehand drag path into the profile curve that a
// surface-of-revolution generator sweeps around the vertical axis.
//
// The pipeline is Decimate, ComputeBounds, Normalize. Build runs all three and
// also determines the facing of the drawn gesture. None of the functions fail:
// degenerate input degrades to a short profile and callers check
// Profile.Ready before generating a surface.
//
// # Coordinates
//
// Input points are in UI space, y growing downward. Profile points have x in
// [0, WidthScale] (the radius) and y in [0, HeightScale] growing upward along
// the axis.
package silhouette
