package ui

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowglobe/internal/state"
)

func TestViewportRoundTrip(t *testing.T) {
	vp := fitView(fyne.NewSize(300, 500))
	assert.Greater(t, vp.scale, float32(0))

	for _, p := range [][2]float64{{0, 0}, {8, 0}, {-4, 8}, {0, 16}} {
		u, v := vp.toProfile(vp.toScreen(p[0], p[1]))
		assert.InDelta(t, p[0], u, 1e-4)
		assert.InDelta(t, p[1], v, 1e-4)
	}

	top, bottom := vp.toScreen(0, 16), vp.toScreen(8, 0)
	assert.GreaterOrEqual(t, top.Y, float32(0))
	assert.LessOrEqual(t, bottom.Y, float32(500))
	assert.LessOrEqual(t, bottom.X, float32(300))
}

func TestViewportZeroSize(t *testing.T) {
	vp := fitView(fyne.Size{})
	assert.Equal(t, float32(1), vp.scale)
}

func mouse(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestDrawPadRecordsDrag(t *testing.T) {
	test.NewTempApp(t)
	d := state.NewDesign()
	pad := NewDrawPad(d)
	changes := 0
	pad.OnChange = func() { changes++ }

	pad.MouseDown(mouse(100, 10))
	pad.Dragged(drag(120, 60, 20, 50))
	pad.Dragged(drag(140, 110, 20, 50))
	pad.DragEnd()
	pad.MouseUp(mouse(140, 110))

	assert.Equal(t, []state.Point{
		{X: 100, Y: 10, Idx: 0},
		{X: 120, Y: 60, Idx: 1},
		{X: 140, Y: 110, Idx: 2},
	}, d.Points())
	assert.Equal(t, 3, changes)

	pad.MouseDown(mouse(5, 5))
	assert.Equal(t, []state.Point{{X: 5, Y: 5}}, d.Points())
}

func TestDrawPadTouchDragStartsAtOrigin(t *testing.T) {
	test.NewTempApp(t)
	d := state.NewDesign()
	pad := NewDrawPad(d)

	pad.Dragged(drag(30, 40, 10, 20))
	pad.Dragged(drag(50, 60, 20, 20))
	pad.DragEnd()

	assert.Equal(t, []state.Point{
		{X: 20, Y: 20, Idx: 0},
		{X: 30, Y: 40, Idx: 1},
		{X: 50, Y: 60, Idx: 2},
	}, d.Points())
}

func TestDrawPadReadOnly(t *testing.T) {
	test.NewTempApp(t)
	d := state.NewDesign()
	pad := NewDrawPad(d)
	pad.ReadOnly = true

	pad.MouseDown(mouse(1, 1))
	pad.Dragged(drag(5, 5, 4, 4))
	assert.Empty(t, d.Points())
}

func treeDesign() *state.Design {
	d := state.NewDesign()
	d.Restart(100, 0)
	d.Append(120, 50)
	d.Append(140, 100)
	return d
}

func TestPreviewPlacesOrnament(t *testing.T) {
	test.NewTempApp(t)
	d := treeDesign()
	p := NewPreview(d)
	p.Resize(fyne.NewSize(300, 500))

	tools := NewTools()
	tools.Type = state.Cane
	tools.Color = "#ffffff"
	tools.Color2 = "#d32f2f"
	p.Placement = tools.Placement

	var placed []state.Ornament
	p.OnPlace = func(o state.Ornament) { placed = append(placed, o) }

	vp := fitView(p.Size())
	p.Tapped(&fyne.PointEvent{Position: vp.toScreen(0, 4)})

	require.Len(t, placed, 1)
	o := placed[0]
	assert.Equal(t, state.Cane, o.Type)
	assert.Equal(t, "#d32f2f", o.Color2)
	assert.InDelta(t, 0, o.Position[0], 1e-3)
	assert.InDelta(t, 4, o.Position[1], 1e-3)
	assert.InDelta(t, 6, o.Position[2], 1e-3)
	assert.InDelta(t, 1, o.Normal.Z, 1e-3)
	assert.Equal(t, o.Position[2], o.ClickPoint.Z)
	assert.Len(t, d.Ornaments(), 1)

	p.TappedSecondary(&fyne.PointEvent{Position: vp.toScreen(0.2, 4.1)})
	assert.Empty(t, d.Ornaments())
}

func TestPreviewMiss(t *testing.T) {
	test.NewTempApp(t)
	d := treeDesign()
	p := NewPreview(d)
	p.Resize(fyne.NewSize(300, 500))

	missed := false
	p.OnMiss = func() { missed = true }
	p.Tapped(&fyne.PointEvent{Position: fitView(p.Size()).toScreen(7, 12)})
	assert.True(t, missed)
	assert.Empty(t, d.Ornaments())
}

func TestPreviewIgnoresUnfinishedTree(t *testing.T) {
	test.NewTempApp(t)
	d := state.NewDesign()
	d.Restart(1, 1)
	p := NewPreview(d)
	p.Resize(fyne.NewSize(300, 500))

	p.Tapped(&fyne.PointEvent{Position: fyne.NewPos(150, 250)})
	assert.Empty(t, d.Ornaments())
}

func TestToolsPlacement(t *testing.T) {
	tools := NewTools()
	pl := tools.Placement()
	assert.Equal(t, state.Ball, pl.Type)
	assert.Equal(t, Palette[0], pl.Color)
	assert.Equal(t, Palette[3], pl.Color2)

	tools.Type = state.Star
	assert.Empty(t, tools.Placement().Color2)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#d32f2f", hexColor(color.RGBA{0xd3, 0x2f, 0x2f, 0xff}))
	assert.Equal(t, "#000000", hexColor(color.Black))
}

func TestEditorCard(t *testing.T) {
	test.NewTempApp(t)
	e := NewEditor(nil)
	_, ready := e.Card("")
	assert.False(t, ready)

	e.Design.Replace(treeDesign().Points(), nil)
	card, ready := e.Card("http://x/abc")
	assert.True(t, ready)
	assert.Len(t, card.Profile, 4)
	assert.Equal(t, "http://x/abc", card.Link)

	e.Clear()
	assert.Empty(t, e.Design.Points())
}

func TestSprinkle(t *testing.T) {
	test.NewTempApp(t)
	e := NewEditor(nil)
	assert.Zero(t, e.Sprinkle(5, rand.New(rand.NewPCG(1, 2))))

	e.Design.Replace(treeDesign().Points(), nil)
	e.Tools.Type = state.Star
	e.Tools.Color = "#ffd700"

	n := e.Sprinkle(5, rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, 5, n)
	got := e.Design.Ornaments()
	require.Len(t, got, 5)
	for _, o := range got {
		assert.Equal(t, state.Star, o.Type)
		assert.Equal(t, "#ffd700", o.Color)
		assert.Empty(t, o.Color2)
		assert.GreaterOrEqual(t, o.Position[2], 0.0)
		assert.True(t, o.Position[1] >= -1e-4 && o.Position[1] <= 16+1e-4)
		assert.InDelta(t, 1, o.Normal.X*o.Normal.X+o.Normal.Y*o.Normal.Y+o.Normal.Z*o.Normal.Z, 1e-3)
		if o.Position[1] > 1.01 {
			assert.Greater(t, o.Position[0]*o.Normal.X+o.Position[2]*o.Normal.Z, 0.0, "inward normal at %v", o.Position)
		}
	}
	assert.Contains(t, e.Status.Text, "5 Star sprinkled")
}
