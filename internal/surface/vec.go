package surface

import "github.com/chewxy/math32"

// Vec3 is a float32 3D vector, the element type of mesh buffers.
type Vec3 struct {
	X, Y, Z float32
}

// V3 is a convenience constructor.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Up is the canonical up axis.
var Up = Vec3{0, 1, 0}

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

func (v Vec3) MulScalar(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns v x w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

func (v Vec3) LengthSq() float32 { return v.Dot(v) }

func (v Vec3) Length() float32 { return math32.Sqrt(v.LengthSq()) }

// Normal returns v scaled to unit length, or the zero vector.
func (v Vec3) Normal() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.MulScalar(1 / l)
}

// Approx reports whether v and w differ by less than eps on every axis.
func (v Vec3) Approx(w Vec3, eps float32) bool {
	return math32.Abs(v.X-w.X) < eps && math32.Abs(v.Y-w.Y) < eps && math32.Abs(v.Z-w.Z) < eps
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// Identity is the no-op rotation.
var Identity = Quat{W: 1}

// QuatAxisAngle returns the rotation of angle radians about a unit axis.
func QuatAxisAngle(axis Vec3, angle float32) Quat {
	s := math32.Sin(angle / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math32.Cos(angle / 2)}
}

// QuatFromUnitVectors returns the shortest-arc rotation taking from onto to.
// Both vectors must be normalized.
func QuatFromUnitVectors(from, to Vec3) Quat {
	const eps = 0.000001

	var q Quat
	r := from.Dot(to) + 1
	if r < eps {
		r = 0
		if math32.Abs(from.X) > math32.Abs(from.Z) {
			q = Quat{X: -from.Y, Y: from.X, Z: 0, W: r}
		} else {
			q = Quat{X: 0, Y: -from.Z, Z: from.Y, W: r}
		}
	} else {
		c := from.Cross(to)
		q = Quat{X: c.X, Y: c.Y, Z: c.Z, W: r}
	}
	return q.Normalize()
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize returns q at unit length; a zero quaternion becomes Identity.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l == 0 {
		return Identity
	}
	l = 1 / l
	return Quat{q.X * l, q.Y * l, q.Z * l, q.W * l}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).MulScalar(2)
	return v.Add(t.MulScalar(q.W)).Add(u.Cross(t))
}
