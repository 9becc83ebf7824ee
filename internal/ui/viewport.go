package ui

import (
	"fyne.io/fyne/v2"

	"snowglobe/internal/silhouette"
)

const viewPad = 12

// viewport maps profile space onto a widget: the trunk axis at cx, profile
// height 0 at base, screen y growing downward.
type viewport struct {
	cx, base, scale float32
}

// fitView sizes the full profile range, mirrored, into size. The mapping
// does not depend on the drawing so the tree stays put while it grows.
func fitView(size fyne.Size) viewport {
	maxR := float32(silhouette.WidthScale + 1)
	maxY := float32(silhouette.HeightScale + 1)
	scale := min((size.Width-2*viewPad)/(2*maxR), (size.Height-2*viewPad)/maxY)
	if scale <= 0 {
		scale = 1
	}
	return viewport{
		cx:    size.Width / 2,
		base:  size.Height/2 + float32(silhouette.HeightScale)/2*scale,
		scale: scale,
	}
}

func (v viewport) toScreen(x, y float64) fyne.Position {
	return fyne.NewPos(v.cx+float32(x)*v.scale, v.base-float32(y)*v.scale)
}

func (v viewport) toProfile(p fyne.Position) (u, h float64) {
	return float64((p.X - v.cx) / v.scale), float64((v.base - p.Y) / v.scale)
}
