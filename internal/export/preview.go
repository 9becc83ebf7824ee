package export

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
)

// ErrEmptyProfile is returned when there is nothing to draw.
var ErrEmptyProfile = errors.New("export: profile has fewer than two points")

const discSegments = 24

// Preview renders the front view of the tree: the filled mirrored
// silhouette on a transparent background with the visible ornaments as
// discs.
func Preview(profile []silhouette.ProfilePoint, ornaments []state.Ornament, size int) (*image.RGBA, error) {
	if len(profile) < 2 {
		return nil, ErrEmptyProfile
	}
	if size <= 0 {
		return nil, fmt.Errorf("export: invalid preview size %d", size)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	pad := float64(size) * 0.05
	f := fit(profile, pad, pad, float64(size)-2*pad, float64(size)-2*pad)

	r := vector.NewRasterizer(size, size)
	r.DrawOp = draw.Over

	shape := outline(profile)
	x, y := f.at(shape[0].X, shape[0].Y)
	r.MoveTo(float32(x), float32(y))
	for _, p := range shape[1:] {
		x, y = f.at(p.X, p.Y)
		r.LineTo(float32(x), float32(y))
	}
	r.ClosePath()
	r.Draw(img, img.Bounds(), image.NewUniform(TreeColor), image.Point{})

	for _, o := range visible(ornaments) {
		cx, cy := f.at(o.Position[0], o.Position[1])
		rad := OrnamentRadius * f.scale
		disc(r, img, cx, cy, rad, colorOr(o.Color, OrnamentColor))
		if o.Type.DualColor() && o.Color2 != "" {
			disc(r, img, cx, cy, rad/2, colorOr(o.Color2, OrnamentColor))
		}
	}
	return img, nil
}

func disc(r *vector.Rasterizer, dst draw.Image, cx, cy, rad float64, c color.Color) {
	b := dst.Bounds()
	r.Reset(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(cx+rad), float32(cy))
	for i := 1; i < discSegments; i++ {
		a := 2 * math.Pi * float64(i) / discSegments
		r.LineTo(float32(cx+rad*math.Cos(a)), float32(cy+rad*math.Sin(a)))
	}
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}

// PreviewPNG writes Preview as a PNG image.
func PreviewPNG(w io.Writer, profile []silhouette.ProfilePoint, ornaments []state.Ornament, size int) error {
	img, err := Preview(profile, ornaments, size)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
