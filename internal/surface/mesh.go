package surface

// Mesh is a triangulated surface in flat buffers: three floats per vertex
// position and normal, three indices per triangle. With nil Indices every
// three consecutive vertices form a triangle.
type Mesh struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c int) {
	if m.Indices != nil {
		return int(m.Indices[i*3]), int(m.Indices[i*3+1]), int(m.Indices[i*3+2])
	}
	return i * 3, i*3 + 1, i*3 + 2
}

// Position returns vertex i.
func (m *Mesh) Position(i int) Vec3 {
	return Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

// Normal returns the normal of vertex i.
func (m *Mesh) Normal(i int) Vec3 {
	return Vec3{m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2]}
}

func (m *Mesh) setNormal(i int, n Vec3) {
	m.Normals[i*3], m.Normals[i*3+1], m.Normals[i*3+2] = n.X, n.Y, n.Z
}

// HasNormals reports whether there is one normal per vertex.
func (m *Mesh) HasNormals() bool {
	return len(m.Normals) == len(m.Positions) && len(m.Normals) > 0
}

// ComputeVertexNormals replaces Normals with the normalized sum of the face
// normals around each vertex. Faces contribute in proportion to their area.
func (m *Mesh) ComputeVertexNormals() {
	m.Normals = make([]float32, len(m.Positions))
	for t := 0; t < m.TriangleCount(); t++ {
		ia, ib, ic := m.Triangle(t)
		pa, pb, pc := m.Position(ia), m.Position(ib), m.Position(ic)
		face := pc.Sub(pb).Cross(pa.Sub(pb))
		for _, i := range [3]int{ia, ib, ic} {
			m.setNormal(i, m.Normal(i).Add(face))
		}
	}
	for i := 0; i < m.VertexCount(); i++ {
		m.setNormal(i, m.Normal(i).Normal())
	}
}

// TriangleArea returns the area of triangle i.
func (m *Mesh) TriangleArea(i int) float32 {
	ia, ib, ic := m.Triangle(i)
	a := m.Position(ia)
	return m.Position(ib).Sub(a).Cross(m.Position(ic).Sub(a)).Length() * 0.5
}
