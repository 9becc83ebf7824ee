package surface

import (
	"errors"
	"math/rand/v2"

	"snowglobe/internal/logging"
)

var (
	// ErrNoPositions is returned for a mesh without vertex positions.
	ErrNoPositions = errors.New("surface: mesh has no positions")

	// ErrEmptySurface is returned when the mesh has no triangle with area.
	ErrEmptySurface = errors.New("surface: mesh has no area")
)

// Samples holds sampled points and their normals, three floats each.
type Samples struct {
	Positions []float32
	Normals   []float32
}

// Len returns the number of samples.
func (s Samples) Len() int { return len(s.Positions) / 3 }

// Position returns sample i.
func (s Samples) Position(i int) Vec3 {
	return Vec3{s.Positions[i*3], s.Positions[i*3+1], s.Positions[i*3+2]}
}

// Normal returns the normal of sample i.
func (s Samples) Normal(i int) Vec3 {
	return Vec3{s.Normals[i*3], s.Normals[i*3+1], s.Normals[i*3+2]}
}

// Sampler draws area-weighted uniform points from a mesh surface.
// A Sampler is not safe for concurrent use; give each goroutine its own.
type Sampler struct {
	mesh       *Mesh
	cumulative []float64
	total      float64
	rng        *rand.Rand
}

// NewSampler builds the cumulative area table for m. Missing normals are
// computed on a copy; m is never modified. A nil rng uses a randomly seeded
// source.
func NewSampler(m *Mesh, rng *rand.Rand) (*Sampler, error) {
	if m == nil || len(m.Positions) < 3 {
		return nil, ErrNoPositions
	}
	if !m.HasNormals() {
		mc := *m
		mc.ComputeVertexNormals()
		m = &mc
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Sampler{
		mesh:       m,
		cumulative: make([]float64, m.TriangleCount()),
		rng:        rng,
	}
	for i := range s.cumulative {
		s.total += float64(m.TriangleArea(i))
		s.cumulative[i] = s.total
	}
	if s.total <= 0 {
		return nil, ErrEmptySurface
	}
	logging.Logger().Debug("surface: sampler ready", "triangles", len(s.cumulative), "area", s.total)
	return s, nil
}

// TotalArea returns the surface area of the mesh.
func (s *Sampler) TotalArea() float64 { return s.total }

// pick returns the first triangle whose cumulative area reaches r.
func (s *Sampler) pick(r float64) int {
	lo, hi := 0, len(s.cumulative)-1
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if r <= s.cumulative[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}

// Sample draws count points.
func (s *Sampler) Sample(count int) Samples {
	out := Samples{
		Positions: make([]float32, count*3),
		Normals:   make([]float32, count*3),
	}
	s.SampleInto(&out)
	return out
}

// SampleInto fills dst, drawing one sample per position triple. dst.Normals
// must be at least as long as dst.Positions.
func (s *Sampler) SampleInto(dst *Samples) {
	m := s.mesh
	for i := 0; i < dst.Len(); i++ {
		ia, ib, ic := m.Triangle(s.pick(s.rng.Float64() * s.total))
		a, b, c := m.Position(ia), m.Position(ib), m.Position(ic)

		u, v := s.rng.Float32(), s.rng.Float32()
		if u+v > 1 {
			u, v = 1-u, 1-v
		}
		p := a.Add(b.Sub(a).MulScalar(u)).Add(c.Sub(a).MulScalar(v))
		n := m.Normal(ia).MulScalar(1 - u - v).
			Add(m.Normal(ib).MulScalar(u)).
			Add(m.Normal(ic).MulScalar(v)).
			Normal()

		dst.Positions[i*3], dst.Positions[i*3+1], dst.Positions[i*3+2] = p.X, p.Y, p.Z
		dst.Normals[i*3], dst.Normals[i*3+1], dst.Normals[i*3+2] = n.X, n.Y, n.Z
	}
}

// SampleSurface draws count points from m with a randomly seeded source.
func SampleSurface(m *Mesh, count int) (Samples, error) {
	s, err := NewSampler(m, nil)
	if err != nil {
		return Samples{}, err
	}
	return s.Sample(count), nil
}
