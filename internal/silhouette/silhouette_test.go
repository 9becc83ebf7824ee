package silhouette

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowglobe/internal/state"
)

func pts(xy ...float64) []state.Point {
	out := make([]state.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, state.Point{X: xy[i], Y: xy[i+1], Idx: i / 2})
	}
	return out
}

func TestDecimate(t *testing.T) {
	tests := []struct {
		name string
		in   []state.Point
		want []state.Point
	}{
		{"empty", nil, []state.Point{}},
		{"single", pts(3, 4), pts(3, 4)},
		{"two close points kept", pts(0, 0, 1, 1), pts(0, 0, 1, 1)},
		{
			name: "drops cluster near start",
			in:   pts(0, 0, 2, 2, 4, 4, 20, 0, 21, 0),
			want: []state.Point{
				{X: 0, Y: 0, Idx: 0},
				{X: 20, Y: 0, Idx: 3},
				{X: 21, Y: 0, Idx: 4},
			},
		},
		{
			name: "distance measured from last kept point",
			// each step is 6 units: 6 is dropped, 12 is kept (12 > 10 from 0),
			// 18 is dropped (6 from 12), 24 is kept.
			in: pts(0, 0, 6, 0, 12, 0, 18, 0, 24, 0, 25, 0),
			want: []state.Point{
				{X: 0, Y: 0, Idx: 0},
				{X: 12, Y: 0, Idx: 2},
				{X: 24, Y: 0, Idx: 4},
				{X: 25, Y: 0, Idx: 5},
			},
		},
		{
			name: "exact threshold is dropped",
			in:   pts(0, 0, 10, 0, 30, 0),
			want: []state.Point{{X: 0, Y: 0, Idx: 0}, {X: 30, Y: 0, Idx: 2}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decimate(tt.in))
		})
	}
}

func TestDecimate_Idempotent(t *testing.T) {
	var in []state.Point
	for i := 0; i < 200; i++ {
		a := float64(i) * 0.09
		in = append(in, state.Point{X: 100 + 80*math.Cos(a), Y: 300 - float64(i)*1.3, Idx: i})
	}
	once := Decimate(in)
	twice := Decimate(once)
	assert.Equal(t, once, twice)
	assert.Less(t, len(once), len(in))
}

func TestComputeBounds(t *testing.T) {
	tests := []struct {
		name string
		in   []state.Point
		want Bounds
	}{
		{"empty", nil, Bounds{}},
		{"single", pts(5, 7), Bounds{XMin: 5, XMax: 5, YMin: 7, YMax: 7}},
		{
			name: "second point above min nudges max",
			in:   pts(10, 10, 30, 40),
			want: Bounds{XMin: 10, XMax: 30.01, YMin: 10, YMax: 40.01},
		},
		{
			name: "second point below min keeps max",
			in:   pts(30, 40, 10, 10),
			want: Bounds{XMin: 10, XMax: 30, YMin: 10, YMax: 40},
		},
		{
			name: "later points use plain min max",
			in:   pts(10, 10, 30, 40, 50, 5, 20, 60),
			want: Bounds{XMin: 10, XMax: 50, YMin: 5, YMax: 60},
		},
		{
			name: "later point inside range leaves it",
			in:   pts(10, 10, 30, 40, 20, 20),
			want: Bounds{XMin: 10, XMax: 30.01, YMin: 10, YMax: 40.01},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBounds(tt.in)
			assert.InDelta(t, tt.want.XMin, got.XMin, 1e-9)
			assert.InDelta(t, tt.want.XMax, got.XMax, 1e-9)
			assert.InDelta(t, tt.want.YMin, got.YMin, 1e-9)
			assert.InDelta(t, tt.want.YMax, got.YMax, 1e-9)
		})
	}
}

func TestComputeBounds_GuardsVerticalFirstSegment(t *testing.T) {
	b := ComputeBounds(pts(50, 0, 50, 100))
	assert.Greater(t, b.Width(), 0.0)

	profile := Normalize(pts(50, 0, 50, 100), b)
	for _, p := range profile {
		assert.False(t, math.IsNaN(p.X) || math.IsInf(p.X, 0))
		assert.False(t, math.IsNaN(p.Y) || math.IsInf(p.Y, 0))
	}
}

func TestNormalize(t *testing.T) {
	in := pts(0, 0, 100, 200)
	b := Bounds{XMin: 0, XMax: 100, YMin: 0, YMax: 200}
	got := Normalize(in, b)

	require.Len(t, got, 3)
	assert.Equal(t, ProfilePoint{X: 0, Y: HeightScale}, got[0], "top of screen is top of tree")
	assert.Equal(t, ProfilePoint{X: WidthScale, Y: 0}, got[1])
	assert.Equal(t, ClosingPoint, got[2])
}

func TestNormalize_AlwaysEndsWithClosingPoint(t *testing.T) {
	inputs := [][]state.Point{
		nil,
		pts(1, 1),
		pts(1, 1, 1, 1),
		pts(4, 4, 4, 4, 4, 4),
		pts(0, 0, 30, 40, 60, 90, 10, 120),
	}
	for _, in := range inputs {
		got := Normalize(in, ComputeBounds(in))
		require.NotEmpty(t, got)
		assert.Equal(t, ClosingPoint, got[len(got)-1])
		for _, p := range got {
			assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), "input %v", in)
		}
	}
}

func TestDetermineFacing(t *testing.T) {
	tests := []struct {
		name string
		in   []state.Point
		want Facing
	}{
		{"empty", nil, Up},
		{"single", pts(0, 0), Up},
		{"drawn downward", []state.Point{{X: 0, Y: 0, Idx: 0}, {X: 5, Y: 10, Idx: 1}}, Up},
		{"drawn upward", []state.Point{{X: 0, Y: 10, Idx: 0}, {X: 5, Y: 0, Idx: 1}}, Down},
		{"level", pts(0, 5, 10, 5), Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineFacing(tt.in))
		})
	}
}

func TestFacing_Text(t *testing.T) {
	b, err := json.Marshal(map[string]Facing{"f": Down})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":"DOWN"}`, string(b))

	var f Facing
	require.NoError(t, f.UnmarshalText([]byte("UP")))
	assert.Equal(t, Up, f)
	assert.Error(t, f.UnmarshalText([]byte("SIDEWAYS")))
	assert.Equal(t, "Facing(7)", Facing(7).String())
}

func TestBuild(t *testing.T) {
	t.Run("not enough points", func(t *testing.T) {
		assert.False(t, Build(nil).Ready())
		assert.False(t, Build(pts(1, 1)).Ready())
	})

	t.Run("two points are enough with the closing point", func(t *testing.T) {
		p := Build(pts(100, 0, 200, 300))
		assert.True(t, p.Ready())
		assert.Len(t, p.Points, 3)
		assert.Equal(t, Up, p.Facing)
	})

	t.Run("drag uses decimated points", func(t *testing.T) {
		var in []state.Point
		for i := 0; i <= 100; i++ {
			in = append(in, state.Point{X: 200 + float64(i), Y: float64(i) * 3, Idx: i})
		}
		p := Build(in)
		require.True(t, p.Ready())
		assert.Less(t, len(p.Points), len(in))
		assert.Equal(t, ClosingPoint, p.Points[len(p.Points)-1])
		for _, pt := range p.Points {
			assert.GreaterOrEqual(t, pt.X, 0.0)
			assert.LessOrEqual(t, pt.X, WidthScale)
			assert.GreaterOrEqual(t, pt.Y, 0.0)
			assert.LessOrEqual(t, pt.Y, HeightScale)
		}
	})
}

func TestProfile_LatheOrder(t *testing.T) {
	points := []ProfilePoint{{X: 1, Y: 2}, {X: 3, Y: 4}, ClosingPoint}

	up := Profile{Points: points, Facing: Up}
	assert.Equal(t, points, up.LatheOrder())

	down := Profile{Points: points, Facing: Down}
	assert.Equal(t, []ProfilePoint{ClosingPoint, {X: 3, Y: 4}, {X: 1, Y: 2}}, down.LatheOrder())
	assert.Equal(t, ProfilePoint{X: 1, Y: 2}, points[0], "LatheOrder must not mutate the profile")
}

func TestProcessor_CustomScale(t *testing.T) {
	pr := Default
	pr.WidthScale = 1
	pr.HeightScale = 1
	got := pr.Normalize(pts(0, 0, 10, 10), Bounds{XMax: 10, YMax: 10})
	assert.Equal(t, []ProfilePoint{{X: 0, Y: 1}, {X: 1, Y: 0}, ClosingPoint}, got)
}
