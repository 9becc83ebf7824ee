package export

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
)

// Card is everything printed on a snow globe card.
type Card struct {
	Profile   []silhouette.ProfilePoint
	Ornaments []state.Ornament
	Engraving state.Engraving
	Link      string
}

// A5 portrait, millimetres.
const (
	pageW  = 148.0
	pageH  = 210.0
	margin = 12.0
)

// CardPDF writes a one-page card: the tree outline with its ornaments, the
// carved text plate, the message and the share link.
func CardPDF(w io.Writer, c Card) error {
	if len(c.Profile) < 2 {
		return ErrEmptyProfile
	}

	p := gofpdf.New("P", "mm", "A5", "")
	p.SetMargins(margin, margin, margin)
	p.SetAutoPageBreak(false, margin)
	p.AddPage()
	tr := p.UnicodeTranslatorFromDescriptor("")

	e := c.Engraving
	p.SetFont("Helvetica", "B", 16)
	title := "A snow globe for you"
	if e.RecipientName != "" {
		title = "A snow globe for " + e.RecipientName
	}
	p.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	treeTop, treeH := margin+14, 110.0
	f := fit(c.Profile, margin, treeTop, pageW-2*margin, treeH)

	shape := outline(c.Profile)
	pts := make([]gofpdf.PointType, len(shape))
	for i, sp := range shape {
		x, y := f.at(sp.X, sp.Y)
		pts[i] = gofpdf.PointType{X: x, Y: y}
	}
	p.SetDrawColor(int(OutlineColor.R), int(OutlineColor.G), int(OutlineColor.B))
	p.SetFillColor(int(TreeColor.R), int(TreeColor.G), int(TreeColor.B))
	p.SetLineWidth(0.5)
	p.Polygon(pts, "FD")

	for _, o := range visible(c.Ornaments) {
		x, y := f.at(o.Position[0], o.Position[1])
		rad := OrnamentRadius * f.scale
		fillCircle(p, x, y, rad, colorOr(o.Color, OrnamentColor))
		if o.Type.DualColor() && o.Color2 != "" {
			fillCircle(p, x, y, rad/2, colorOr(o.Color2, OrnamentColor))
		}
	}

	y := treeTop + treeH + 6
	if e.CarvedText != "" {
		p.SetFillColor(0x8d, 0x6e, 0x63)
		p.SetTextColor(0xff, 0xff, 0xff)
		p.SetFont("Helvetica", "B", 14)
		plateW := 70.0
		p.SetXY((pageW-plateW)/2, y)
		p.CellFormat(plateW, 10, tr(e.CarvedText), "", 1, "C", true, 0, "")
		p.SetTextColor(0, 0, 0)
		y += 14
	}

	p.SetXY(margin, y)
	p.SetFont("Helvetica", "", 11)
	if e.MessageText != "" {
		p.MultiCell(0, 5, tr(e.MessageText), "", "L", false)
	}
	if e.SenderName != "" {
		p.SetFont("Helvetica", "I", 11)
		p.CellFormat(0, 7, tr("- "+e.SenderName), "", 1, "R", false, 0, "")
	}

	if c.Link != "" {
		p.SetXY(margin, pageH-margin-6)
		p.SetFont("Helvetica", "U", 9)
		p.SetTextColor(0x15, 0x65, 0xc0)
		p.WriteLinkString(5, c.Link, c.Link)
	}

	if err := p.Error(); err != nil {
		return fmt.Errorf("export: build card: %w", err)
	}
	return p.Output(w)
}

func fillCircle(p *gofpdf.Fpdf, x, y, r float64, c color.Color) {
	cr, cg, cb, _ := c.RGBA()
	p.SetFillColor(int(cr>>8), int(cg>>8), int(cb>>8))
	p.Circle(x, y, r, "F")
}

// WriteCardFile writes the card PDF to path.
func WriteCardFile(path string, c Card) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := CardPDF(out, c); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
