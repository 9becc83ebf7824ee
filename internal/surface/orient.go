package surface

import "github.com/chewxy/math32"

// antiParallel is the dot product below which a normal is treated as
// pointing straight down.
const antiParallel = -0.9995

// QuaternionFromUpToNormal returns the rotation taking Up onto normal.
// A normal nearly opposite Up gets a half turn about a fixed perpendicular
// axis instead of the shortest-arc formula, which is unstable there.
func QuaternionFromUpToNormal(normal Vec3) Quat {
	if Up.Dot(normal) < antiParallel {
		axis := V3(1, 0, 0).Cross(Up)
		if axis.LengthSq() < 1e-6 {
			axis = V3(0, 0, 1)
		}
		return QuatAxisAngle(axis.Normal(), math32.Pi)
	}
	return QuatFromUnitVectors(Up, normal.Normal())
}

// YawFromNormal returns the rotation about Up that turns +Z toward the
// horizontal part of normal. Ornaments are oriented this way so they stay
// upright on the tree.
func YawFromNormal(normal Vec3) float32 {
	if normal.X == 0 && normal.Z == 0 {
		return 0
	}
	return math32.Atan2(normal.X, normal.Z)
}
