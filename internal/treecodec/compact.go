package treecodec

import (
	"encoding/json"
	"fmt"
	"math"

	"snowglobe/internal/state"
)

// Version is the version tag written by Serialize.
const Version = 2

// Triple is a JSON array of exactly three numbers.
type Triple [3]float64

// UnmarshalJSON rejects arrays that do not hold exactly three numbers.
func (t *Triple) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("%w: expected 3 numbers, got %d", ErrInvalidFormat, len(raw))
	}
	copy(t[:], raw)
	return nil
}

// CompactOrnament is the version 2 form of an ornament.
type CompactOrnament struct {
	I  string             `json:"i"`
	T  state.OrnamentType `json:"t"`
	P  Triple             `json:"p"`
	N  Triple             `json:"n"`
	C  string             `json:"c"`
	C2 string             `json:"c2,omitempty"`
}

// CompactState is the version 2 document. Each point is [x, y, idx].
type CompactState struct {
	V   int               `json:"v"`
	Pts []Triple          `json:"pts"`
	Orn []CompactOrnament `json:"orn"`
}

// Tree is the rehydrated design.
type Tree struct {
	Points    []state.Point
	Ornaments []state.Ornament
}

// Option configures a Codec.
type Option func(*Codec)

// WithShortID replaces the function used for ids longer than MaxIDLength.
// The default draws a fresh random token on every call.
func WithShortID(fn func(id string) string) Option {
	return func(c *Codec) {
		if fn != nil {
			c.shortID = fn
		}
	}
}

// Codec serializes tree designs. The zero value is not usable; call New.
type Codec struct {
	shortID func(id string) string
}

// New returns a Codec with the given options applied.
func New(opts ...Option) *Codec {
	c := &Codec{shortID: func(string) string { return ShortID() }}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var std = New()

// round keeps three decimals. Halves round toward +Inf so that values
// written by browser clients and by this package agree.
func round(v float64) float64 {
	return math.Floor(v*1000+0.5) / 1000
}

func roundTriple(a [3]float64) Triple {
	return Triple{round(a[0]), round(a[1]), round(a[2])}
}

// Serialize builds the compact document for a design.
func (c *Codec) Serialize(points []state.Point, ornaments []state.Ornament) CompactState {
	out := CompactState{
		V:   Version,
		Pts: make([]Triple, 0, len(points)),
		Orn: make([]CompactOrnament, 0, len(ornaments)),
	}
	for _, p := range points {
		out.Pts = append(out.Pts, Triple{round(p.X), round(p.Y), float64(p.Idx)})
	}
	for _, o := range ornaments {
		id := o.ID
		if needsShortening(id) {
			id = c.shortID(id)
		}
		out.Orn = append(out.Orn, CompactOrnament{
			I:  id,
			T:  o.Type,
			P:  roundTriple(o.Position),
			N:  roundTriple(o.Normal.Array()),
			C:  o.Color,
			C2: o.Color2,
		})
	}
	return out
}

// SerializeJSON returns the compact document as JSON text.
func (c *Codec) SerializeJSON(points []state.Point, ornaments []state.Ornament) ([]byte, error) {
	return json.Marshal(c.Serialize(points, ornaments))
}

// Deserialize expands a compact document. The click point of every ornament
// is reconstructed from its position.
func Deserialize(s CompactState) (Tree, error) {
	if s.V != Version {
		return Tree{}, fmt.Errorf("%w: v=%d", ErrUnsupportedVersion, s.V)
	}
	t := Tree{
		Points:    make([]state.Point, 0, len(s.Pts)),
		Ornaments: make([]state.Ornament, 0, len(s.Orn)),
	}
	for _, p := range s.Pts {
		t.Points = append(t.Points, state.Point{X: p[0], Y: p[1], Idx: int(math.Round(p[2]))})
	}
	for _, o := range s.Orn {
		t.Ornaments = append(t.Ornaments, state.Ornament{
			ID:         o.I,
			Type:       o.T,
			Position:   o.P,
			Normal:     state.VectorFromArray(o.N),
			ClickPoint: state.VectorFromArray(o.P),
			Color:      o.C,
			Color2:     o.C2,
		})
	}
	return t, nil
}

// Serialize calls Serialize on the default Codec.
func Serialize(points []state.Point, ornaments []state.Ornament) CompactState {
	return std.Serialize(points, ornaments)
}

// SerializeJSON calls SerializeJSON on the default Codec.
func SerializeJSON(points []state.Point, ornaments []state.Ornament) ([]byte, error) {
	return std.SerializeJSON(points, ornaments)
}
