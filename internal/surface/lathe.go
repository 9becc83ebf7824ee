package surface

import (
	"github.com/chewxy/math32"

	"snowglobe/internal/silhouette"
)

// DefaultSegments is the number of sweeps around the axis used by Lathe
// callers that have no preference.
const DefaultSegments = 12

// Lathe revolves a profile around the Y axis. Profile X is the radius and
// profile Y the height. Vertex ring i sits at angle 2*pi*i/segments with
// x = r*sin(phi), z = r*cos(phi); the first and last rings coincide and share
// normals so the seam does not show.
//
// Faces are wound so that a profile running from the top of the tree down,
// the order Profile.LatheOrder yields for a drawn tree, gets normals facing
// away from the axis.
//
// segments below 3 are raised to 3. A profile of fewer than two points
// yields an empty mesh.
func Lathe(profile []silhouette.ProfilePoint, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	n := len(profile)
	if n < 2 {
		return &Mesh{}
	}

	m := &Mesh{
		Positions: make([]float32, 0, (segments+1)*n*3),
		Indices:   make([]uint32, 0, segments*(n-1)*6),
	}
	for i := 0; i <= segments; i++ {
		phi := float32(i) / float32(segments) * 2 * math32.Pi
		sin, cos := math32.Sin(phi), math32.Cos(phi)
		for _, p := range profile {
			r := float32(p.X)
			m.Positions = append(m.Positions, r*sin, float32(p.Y), r*cos)
		}
	}
	for i := 0; i < segments; i++ {
		for j := 0; j < n-1; j++ {
			base := uint32(j + i*n)
			a, b, c, d := base, base+uint32(n), base+uint32(n)+1, base+1
			m.Indices = append(m.Indices, a, d, b, c, b, d)
		}
	}

	m.ComputeVertexNormals()
	seam := segments * n
	for j := 0; j < n; j++ {
		avg := m.Normal(j).Add(m.Normal(seam + j)).Normal()
		m.setNormal(j, avg)
		m.setNormal(seam+j, avg)
	}
	return m
}
