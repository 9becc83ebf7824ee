package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"snowglobe/internal/export"
	"snowglobe/internal/logging"
	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
)

var (
	globeBackground = color.NRGBA{R: 0x0d, G: 0x1b, B: 0x2a, A: 255}
	hintColor       = color.NRGBA{R: 0xe0, G: 0xe1, B: 0xdd, A: 255}
)

// ornamentRadius is the drawn ornament size in profile units.
const ornamentRadius = 0.45

// Preview shows the front view of the revolved tree and places ornaments
// where it is tapped. A secondary tap removes the nearest ornament.
type Preview struct {
	widget.BaseWidget

	design *state.Design

	// ReadOnly ignores taps.
	ReadOnly bool
	// Placement supplies the type and colors of the next ornament.
	Placement func() state.OrnamentPlacement
	// OnPlace runs after an ornament is added.
	OnPlace func(state.Ornament)
	// OnMiss runs when a tap misses the tree.
	OnMiss func()
}

var _ fyne.Tappable = (*Preview)(nil)
var _ fyne.SecondaryTappable = (*Preview)(nil)

// NewPreview returns a preview of d.
func NewPreview(d *state.Design) *Preview {
	p := &Preview{design: d}
	p.ExtendBaseWidget(p)
	return p
}

func (p *Preview) Tapped(e *fyne.PointEvent) {
	if p.ReadOnly {
		return
	}
	profile := silhouette.Build(p.design.Points())
	if !profile.Ready() {
		return
	}
	u, v := fitView(p.Size()).toProfile(e.Position)
	pos, normal, ok := silhouette.Project(profile.Points, u, v)
	if !ok {
		if p.OnMiss != nil {
			p.OnMiss()
		}
		return
	}

	pl := state.OrnamentPlacement{Type: state.Ball}
	if p.Placement != nil {
		pl = p.Placement()
	}
	pl.Position = pos
	pl.Normal = normal
	pl.ClickPoint = state.VectorFromArray(pos)
	o := p.design.PlaceOrnament(pl)
	p.Refresh()
	if p.OnPlace != nil {
		p.OnPlace(o)
	}
}

func (p *Preview) TappedSecondary(e *fyne.PointEvent) {
	if p.ReadOnly {
		return
	}
	vp := fitView(p.Size())
	u, v := vp.toProfile(e.Position)
	best, bestDist := "", math.Inf(1)
	for _, o := range p.design.Ornaments() {
		if o.Position[2] < 0 {
			continue
		}
		if d := math.Hypot(o.Position[0]-u, o.Position[1]-v); d < bestDist {
			best, bestDist = o.ID, d
		}
	}
	if best != "" && bestDist <= 2*ornamentRadius && p.design.RemoveOrnament(best) {
		logging.Logger().Debug("ui: ornament removed", "id", best)
		p.Refresh()
	}
}

func (p *Preview) CreateRenderer() fyne.WidgetRenderer {
	r := &previewRenderer{
		preview:    p,
		background: canvas.NewRectangle(globeBackground),
		hint:       canvas.NewText("Draw half a tree on the left", hintColor),
	}
	r.hint.Alignment = fyne.TextAlignCenter
	r.hint.TextSize = theme.TextSize()
	r.rebuild()
	return r
}

type previewRenderer struct {
	preview    *Preview
	background *canvas.Rectangle
	hint       *canvas.Text
	objects    []fyne.CanvasObject
}

func (r *previewRenderer) rebuild() {
	size := r.preview.Size()
	vp := fitView(size)
	pts, ornaments := r.preview.design.Snapshot()
	profile := silhouette.Build(pts)

	objects := []fyne.CanvasObject{r.background}
	if !profile.Ready() {
		r.hint.Move(fyne.NewPos(0, size.Height/2))
		r.hint.Resize(fyne.NewSize(size.Width, r.hint.MinSize().Height))
		r.objects = append(objects, r.hint)
		return
	}

	for _, side := range []float64{1, -1} {
		for i := 1; i < len(profile.Points); i++ {
			a, b := profile.Points[i-1], profile.Points[i]
			seg := canvas.NewLine(export.TreeColor)
			seg.StrokeWidth = 3
			seg.Position1 = vp.toScreen(side*a.X, a.Y)
			seg.Position2 = vp.toScreen(side*b.X, b.Y)
			objects = append(objects, seg)
		}
	}

	rad := float32(ornamentRadius) * vp.scale
	for _, o := range ornaments {
		if o.Position[2] < 0 {
			continue
		}
		center := vp.toScreen(o.Position[0], o.Position[1])
		objects = append(objects, disc(center, rad, o.Color))
		if o.Type.DualColor() && o.Color2 != "" {
			objects = append(objects, disc(center, rad/2, o.Color2))
		}
	}
	r.objects = objects
}

func disc(center fyne.Position, rad float32, c string) *canvas.Circle {
	fill, err := export.ParseColor(c)
	if err != nil {
		fill = export.OrnamentColor
	}
	circle := canvas.NewCircle(fill)
	circle.Move(fyne.NewPos(center.X-rad, center.Y-rad))
	circle.Resize(fyne.NewSize(2*rad, 2*rad))
	return circle
}

func (r *previewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *previewRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.preview)
}

func (r *previewRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	r.rebuild()
}

func (r *previewRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 400) }

func (r *previewRenderer) Destroy() {}
