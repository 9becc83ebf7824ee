package state

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { newID = orig })
}

func TestDesign_RestartAndAppend(t *testing.T) {
	d := NewDesign()
	d.Restart(5, 6)
	d.Append(7, 8)
	d.Append(9, 10)

	assert.Equal(t, []Point{
		{X: 5, Y: 6, Idx: 0},
		{X: 7, Y: 8, Idx: 1},
		{X: 9, Y: 10, Idx: 2},
	}, d.Points())

	d.Restart(1, 1)
	assert.Equal(t, []Point{{X: 1, Y: 1, Idx: 0}}, d.Points())
}

func TestDesign_PointsIsCopy(t *testing.T) {
	d := NewDesign()
	d.Restart(1, 2)
	pts := d.Points()
	pts[0].X = 99
	assert.Equal(t, 1.0, d.Points()[0].X)
}

func TestDesign_PlaceOrnament(t *testing.T) {
	stubIDs(t)
	d := NewDesign()

	ball := d.PlaceOrnament(OrnamentPlacement{
		Type:     Ball,
		Position: [3]float64{1, 2, 3},
		Normal:   Vec3(0, 1, 0),
		Color:    "red",
		Color2:   "green",
	})
	star := d.PlaceOrnament(OrnamentPlacement{
		Type:   Star,
		Color:  "yellow",
		Color2: "green",
	})

	assert.Equal(t, "id-1", ball.ID)
	assert.Equal(t, "green", ball.Color2)
	assert.Empty(t, star.Color2, "stars are single colored")
	require.Len(t, d.Ornaments(), 2)

	assert.True(t, d.RemoveOrnament("id-1"))
	assert.False(t, d.RemoveOrnament("id-1"))
	assert.Len(t, d.Ornaments(), 1)
}

func TestDesign_RealIDsAreUnique(t *testing.T) {
	d := NewDesign()
	a := d.PlaceOrnament(OrnamentPlacement{Type: Ball})
	b := d.PlaceOrnament(OrnamentPlacement{Type: Ball})
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
}

func TestDesign_ReplaceAndClear(t *testing.T) {
	d := NewDesign()
	rev := d.Revision()
	d.Replace([]Point{{X: 1, Y: 2}}, []Ornament{{ID: "x", Type: Cane}})
	assert.Greater(t, d.Revision(), rev)

	pts, orn := d.Snapshot()
	assert.Len(t, pts, 1)
	assert.Len(t, orn, 1)

	d.Clear()
	pts, orn = d.Snapshot()
	assert.NotNil(t, pts)
	assert.Empty(t, pts)
	assert.Empty(t, orn)
}

func TestDesign_ConcurrentAppend(t *testing.T) {
	d := NewDesign()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				d.Append(float64(j), float64(j))
			}
		}()
	}
	wg.Wait()

	pts := d.Points()
	require.Len(t, pts, 400)
	for i, p := range pts {
		assert.Equal(t, i, p.Idx)
	}
}

func TestOrnamentType(t *testing.T) {
	tests := []struct {
		typ   OrnamentType
		valid bool
		dual  bool
	}{
		{Ball, true, true},
		{Star, true, false},
		{Cane, true, true},
		{"sphere", false, false},
		{"", false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.typ.Valid())
			assert.Equal(t, tt.dual, tt.typ.DualColor())
		})
	}
}

func TestEngraving_Sanitize(t *testing.T) {
	in := Engraving{
		CarvedText:    "  Merry Christmas from the whole family!  ",
		SenderName:    "Café\tOwner",
		RecipientName: "Bob\x00",
		MessageText:   "line one\nline two\r\n",
	}
	got := in.Sanitize()

	assert.Equal(t, "Merry Christmas from the", got.CarvedText)
	assert.Equal(t, "Café Owner", got.SenderName)
	assert.Equal(t, "Bob", got.RecipientName)
	assert.Equal(t, "line one\nline two", got.MessageText)
}
