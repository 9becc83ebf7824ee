package silhouette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cone: radius 4 at the bottom, 0 at height 8.
var cone = []ProfilePoint{{X: 4, Y: 0}, {X: 0, Y: 8}}

func TestRadiusAt(t *testing.T) {
	tests := []struct {
		name    string
		profile []ProfilePoint
		y       float64
		want    float64
		ok      bool
	}{
		{"bottom", cone, 0, 4, true},
		{"middle", cone, 4, 2, true},
		{"tip", cone, 8, 0, true},
		{"above", cone, 9, 0, false},
		{"empty", nil, 1, 0, false},
		{"single point hit", []ProfilePoint{{X: 2, Y: 3}}, 3, 2, true},
		{"flat segment", []ProfilePoint{{X: 1, Y: 2}, {X: 5, Y: 2}}, 2, 5, true},
		{
			name:    "widest crossing wins",
			profile: []ProfilePoint{{X: 1, Y: 0}, {X: 6, Y: 4}, {X: 2, Y: 8}},
			y:       4,
			want:    6,
			ok:      true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := RadiusAt(tt.profile, tt.y)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestProject(t *testing.T) {
	pos, n, ok := Project(cone, 0, 4)
	require.True(t, ok)
	assert.Equal(t, [3]float64{0, 4, 2}, pos)
	assert.InDelta(t, 1.0, n.Z, 1e-9)

	pos, n, ok = Project(cone, 2, 0)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt(12), pos[2], 1e-9)
	assert.InDelta(t, 1.0, math.Hypot(n.X, n.Z), 1e-9)
	assert.Zero(t, n.Y)

	_, _, ok = Project(cone, 3, 4)
	assert.False(t, ok, "outside the radius")

	_, n, ok = Project(cone, 0, 8)
	require.True(t, ok)
	assert.Equal(t, 1.0, n.Z, "tip falls back to facing the viewer")
}
