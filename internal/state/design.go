package state

import (
	"slices"
	"sync"

	"snowglobe/internal/logging"
)

// Design is the editable state of one snow globe session: the raw drag path
// and the ornaments placed on the resulting tree. Safe for concurrent use;
// readers always get copies.
type Design struct {
	mu        sync.RWMutex
	points    []Point
	ornaments []Ornament
	revision  uint64
}

// NewDesign creates an empty design.
func NewDesign() *Design {
	return &Design{
		points:    make([]Point, 0),
		ornaments: make([]Ornament, 0),
	}
}

// Restart discards the current path and starts a new one at (x, y).
// Ornaments are kept; they are cleared explicitly with Clear.
func (d *Design) Restart(x, y float64) Point {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := Point{X: x, Y: y, Idx: 0}
	d.points = append(d.points[:0:0], p)
	d.revision++
	logging.Logger().Debug("design: path restarted", "x", x, "y", y)
	return p
}

// Append adds a point to the current path. Its index is the current length.
func (d *Design) Append(x, y float64) Point {
	d.mu.Lock()
	defer d.mu.Unlock()

	p := Point{X: x, Y: y, Idx: len(d.points)}
	d.points = append(d.points, p)
	d.revision++
	return p
}

// Points returns a copy of the current path.
func (d *Design) Points() []Point {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.points)
}

// PlaceOrnament records a placement event and returns the new ornament.
// The second color is dropped for single-colored variants.
func (d *Design) PlaceOrnament(pl OrnamentPlacement) Ornament {
	o := Ornament{
		ID:         NewOrnamentID(),
		Type:       pl.Type,
		Position:   pl.Position,
		Normal:     pl.Normal,
		ClickPoint: pl.ClickPoint,
		Color:      pl.Color,
	}
	if pl.Type.DualColor() {
		o.Color2 = pl.Color2
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.ornaments = append(d.ornaments, o)
	d.revision++
	logging.Logger().Debug("design: ornament placed", "id", o.ID, "type", o.Type)
	return o
}

// Ornaments returns a copy of the placed ornaments.
func (d *Design) Ornaments() []Ornament {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.ornaments)
}

// RemoveOrnament deletes the ornament with the given id.
// It reports whether anything was removed.
func (d *Design) RemoveOrnament(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	i := slices.IndexFunc(d.ornaments, func(o Ornament) bool { return o.ID == id })
	if i < 0 {
		return false
	}
	d.ornaments = slices.Delete(d.ornaments, i, i+1)
	d.revision++
	return true
}

// Replace swaps in a complete state, e.g. one rehydrated from storage.
func (d *Design) Replace(points []Point, ornaments []Ornament) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.points = slices.Clone(points)
	d.ornaments = slices.Clone(ornaments)
	if d.points == nil {
		d.points = make([]Point, 0)
	}
	if d.ornaments == nil {
		d.ornaments = make([]Ornament, 0)
	}
	d.revision++
}

// Clear empties the path and the ornaments.
func (d *Design) Clear() {
	d.Replace(nil, nil)
}

// Snapshot returns copies of both lists taken under one lock.
func (d *Design) Snapshot() ([]Point, []Ornament) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.points), slices.Clone(d.ornaments)
}

// Revision increases on every change. Callers use it to skip redundant work.
func (d *Design) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}
