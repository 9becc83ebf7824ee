package state

// Point is one recorded pointer position in UI space plus its sequence index.
// Slice order is drawing order.
type Point struct {
	X   float64 `json:"x"`
	Y   float64 `json:"y"`
	Idx int     `json:"idx"`
}

// Vector3 is a 3D direction or position.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec3 builds a Vector3.
func Vec3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Array returns the components as a triple.
func (v Vector3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// VectorFromArray is the inverse of Vector3.Array.
func VectorFromArray(a [3]float64) Vector3 {
	return Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// OrnamentType names the decoration model placed on the tree.
type OrnamentType string

const (
	Ball OrnamentType = "Ball"
	Star OrnamentType = "Star"
	Cane OrnamentType = "Cane"
)

// OrnamentTypes lists every known variant in picker order.
var OrnamentTypes = []OrnamentType{Ball, Star, Cane}

// Valid reports whether t is one of the known variants.
func (t OrnamentType) Valid() bool {
	switch t {
	case Ball, Star, Cane:
		return true
	}
	return false
}

// DualColor reports whether the variant is rendered with a second color.
func (t OrnamentType) DualColor() bool {
	return t == Ball || t == Cane
}

// Ornament is a decoration placed on the tree surface.
// Color2 is empty when the ornament has no second color.
type Ornament struct {
	ID         string       `json:"id"`
	Type       OrnamentType `json:"type"`
	Position   [3]float64   `json:"position"`
	Normal     Vector3      `json:"normal"`
	ClickPoint Vector3      `json:"clickPoint"`
	Color      string       `json:"color"`
	Color2     string       `json:"color2,omitempty"`
}

// OrnamentPlacement is what the UI knows at the moment of a placement event.
type OrnamentPlacement struct {
	Type       OrnamentType
	Position   [3]float64
	Normal     Vector3
	ClickPoint Vector3
	Color      string
	Color2     string
}
