package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"snowglobe/internal/state"
)

var (
	padBackground = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	strokeColor   = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 255}
	markColor     = color.NRGBA{R: 0x1b, G: 0x5e, B: 0x20, A: 255}
)

const markSize = 4

// DrawPad records one drag gesture as the raw tree path. Every new drag
// restarts the path. Each recorded point is marked.
type DrawPad struct {
	widget.BaseWidget

	design  *state.Design
	drawing bool

	// ReadOnly ignores input.
	ReadOnly bool
	// OnChange runs after the path changes.
	OnChange func()
}

var _ fyne.Widget = (*DrawPad)(nil)
var _ fyne.Draggable = (*DrawPad)(nil)
var _ desktop.Mouseable = (*DrawPad)(nil)

// NewDrawPad returns a pad editing d.
func NewDrawPad(d *state.Design) *DrawPad {
	p := &DrawPad{design: d}
	p.ExtendBaseWidget(p)
	return p
}

func (p *DrawPad) changed() {
	p.Refresh()
	if p.OnChange != nil {
		p.OnChange()
	}
}

func (p *DrawPad) begin(pos fyne.Position) {
	p.drawing = true
	p.design.Restart(float64(pos.X), float64(pos.Y))
}

func (p *DrawPad) MouseDown(e *desktop.MouseEvent) {
	if p.ReadOnly || e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.begin(e.Position)
	p.changed()
}

func (p *DrawPad) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		p.drawing = false
	}
}

// Dragged appends to the path. Touch devices have no MouseDown, so the
// first drag event of a gesture starts the path at its origin.
func (p *DrawPad) Dragged(e *fyne.DragEvent) {
	if p.ReadOnly {
		return
	}
	if !p.drawing {
		p.begin(e.Position.Subtract(e.Dragged))
	}
	p.design.Append(float64(e.Position.X), float64(e.Position.Y))
	p.changed()
}

func (p *DrawPad) DragEnd() {
	p.drawing = false
}

func (p *DrawPad) CreateRenderer() fyne.WidgetRenderer {
	r := &drawPadRenderer{pad: p, background: canvas.NewRectangle(padBackground)}
	r.rebuild()
	return r
}

type drawPadRenderer struct {
	pad        *DrawPad
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *drawPadRenderer) rebuild() {
	pts := r.pad.design.Points()
	objects := make([]fyne.CanvasObject, 0, 2*len(pts)+1)
	objects = append(objects, r.background)
	for i := 1; i < len(pts); i++ {
		seg := canvas.NewLine(strokeColor)
		seg.StrokeWidth = 2
		seg.Position1 = fyne.NewPos(float32(pts[i-1].X), float32(pts[i-1].Y))
		seg.Position2 = fyne.NewPos(float32(pts[i].X), float32(pts[i].Y))
		objects = append(objects, seg)
	}
	for _, pt := range pts {
		mark := canvas.NewCircle(markColor)
		mark.Resize(fyne.NewSize(markSize, markSize))
		mark.Move(fyne.NewPos(float32(pt.X)-markSize/2, float32(pt.Y)-markSize/2))
		objects = append(objects, mark)
	}
	r.objects = objects
}

func (r *drawPadRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *drawPadRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.pad)
}

func (r *drawPadRenderer) Layout(size fyne.Size) { r.background.Resize(size) }

func (r *drawPadRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 400) }

func (r *drawPadRenderer) Destroy() {}
