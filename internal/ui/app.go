// Package ui is the desktop drawing pad: draw half a tree, decorate the
// revolved preview, then send it to a snow globe server.
package ui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"snowglobe/internal/client"
	"snowglobe/internal/export"
	"snowglobe/internal/logging"
	"snowglobe/internal/silhouette"
	"snowglobe/internal/state"
)

// Editor is the main window content.
type Editor struct {
	Design  *state.Design
	Tools   *Tools
	Pad     *DrawPad
	Preview *Preview
	Status  *widget.Label

	client    *client.Client
	engraving state.Engraving
	window    fyne.Window
}

// NewEditor wires a pad and a preview to one design.
func NewEditor(c *client.Client) *Editor {
	e := &Editor{
		Design: state.NewDesign(),
		Tools:  NewTools(),
		Status: widget.NewLabel("Draw the right half of a tree"),
		client: c,
	}
	e.Pad = NewDrawPad(e.Design)
	e.Preview = NewPreview(e.Design)
	e.Preview.Placement = e.Tools.Placement
	e.Pad.OnChange = e.Preview.Refresh
	e.Preview.OnPlace = func(o state.Ornament) {
		e.Status.SetText(fmt.Sprintf("%s placed (%d on the tree)", o.Type, len(e.Design.Ornaments())))
	}
	e.Preview.OnMiss = func() { e.Status.SetText("Tap on the tree to place an ornament") }
	return e
}

// Clear starts over.
func (e *Editor) Clear() {
	e.Design.Clear()
	e.engraving = state.Engraving{}
	e.Pad.Refresh()
	e.Preview.Refresh()
	e.Status.SetText("Cleared")
}

// SetStatus updates the status line from any goroutine.
func (e *Editor) SetStatus(text string) {
	fyne.Do(func() { e.Status.SetText(text) })
}

// Card returns the printable card of the current design.
func (e *Editor) Card(link string) (export.Card, bool) {
	pts, ornaments := e.Design.Snapshot()
	profile := silhouette.Build(pts)
	return export.Card{
		Profile:   profile.Points,
		Ornaments: ornaments,
		Engraving: e.engraving,
		Link:      link,
	}, profile.Ready()
}

// Content lays out the toolbar, pad, preview and status line.
func (e *Editor) Content() fyne.CanvasObject {
	toolbar := NewToolbar(e.Tools, Actions{
		Clear:    e.Clear,
		Sprinkle: func() { e.Sprinkle(sprinkleCount, nil) },
		Export:   e.exportCard,
		Submit:   e.submit,
	})
	split := container.NewHSplit(e.Pad, e.Preview)
	return container.NewBorder(toolbar, e.Status, nil, nil, split)
}

func (e *Editor) exportCard() {
	card, ok := e.Card("")
	if !ok {
		e.Status.SetText("Nothing to export yet")
		return
	}
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := export.CardPDF(w, card); err != nil {
			dialog.ShowError(err, e.window)
			return
		}
		e.Status.SetText("Card saved to " + w.URI().Name())
	}, e.window)
	save.SetFileName("snowglobe.pdf")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	save.Show()
}

// RunApp opens the editor window and blocks until it closes.
func RunApp(c *client.Client) {
	a := app.New()
	w := a.NewWindow("Snow Globe")
	w.Resize(fyne.NewSize(1024, 720))

	e := NewEditor(c)
	e.window = w
	w.SetContent(e.Content())
	w.ShowAndRun()
}

// RunViewer opens a read-only window showing a stored submission.
func RunViewer(c *client.Client, shortID string) {
	a := app.New()
	w := a.NewWindow("Snow Globe " + shortID)
	w.Resize(fyne.NewSize(1024, 720))

	e := NewEditor(c)
	e.window = w
	e.Pad.ReadOnly = true
	e.Preview.ReadOnly = true
	e.Status.SetText("Loading " + shortID + "...")
	w.SetContent(container.NewBorder(nil, e.Status, nil, nil, container.NewHSplit(e.Pad, e.Preview)))

	go e.load(shortID)
	w.ShowAndRun()
}

func (e *Editor) load(shortID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	sub, tree, err := e.client.FetchTree(ctx, shortID)
	if err != nil {
		logging.Logger().Error("ui: load submission", "shortid", shortID, "error", err)
		e.SetStatus("Could not load " + shortID + ": " + err.Error())
		return
	}
	fyne.Do(func() {
		e.Design.Replace(tree.Points, tree.Ornaments)
		e.engraving = sub.Engraving()
		e.Pad.Refresh()
		e.Preview.Refresh()
		text := sub.CarvedText
		if sub.SenderName != "" {
			text += "  from " + sub.SenderName
		}
		e.Status.SetText(text)
	})
}
