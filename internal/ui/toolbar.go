package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"snowglobe/internal/export"
	"snowglobe/internal/state"
)

// Palette is the ornament colors offered by the toolbar.
var Palette = []string{"#d32f2f", "#ffd700", "#1976d2", "#ffffff", "#c0c0c0", "#8e24aa"}

// Tools is the current ornament choice.
type Tools struct {
	Type   state.OrnamentType
	Color  string
	Color2 string
}

// NewTools returns the default choice: a red and white ball.
func NewTools() *Tools {
	return &Tools{Type: state.Ball, Color: Palette[0], Color2: Palette[3]}
}

// Placement returns a placement event carrying the current choice.
func (t *Tools) Placement() state.OrnamentPlacement {
	pl := state.OrnamentPlacement{Type: t.Type, Color: t.Color}
	if t.Type.DualColor() {
		pl.Color2 = t.Color2
	}
	return pl
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// hexColor formats c as #rrggbb.
func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

func swatches(set func(string)) *fyne.Container {
	box := container.NewHBox()
	for _, hex := range Palette {
		c, err := export.ParseColor(hex)
		if err != nil {
			continue
		}
		box.Add(newColorSwatch(c, func(c color.Color) { set(hexColor(c)) }))
	}
	return box
}

// Actions are the toolbar buttons.
type Actions struct {
	Clear    func()
	Sprinkle func()
	Export   func()
	Submit   func()
}

// NewToolbar builds the ornament picker and the action buttons.
func NewToolbar(t *Tools, a Actions) fyne.CanvasObject {
	names := make([]string, len(state.OrnamentTypes))
	for i, ot := range state.OrnamentTypes {
		names[i] = string(ot)
	}
	kind := widget.NewSelect(names, func(s string) { t.Type = state.OrnamentType(s) })
	kind.SetSelected(string(t.Type))

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			if a.Clear != nil {
				a.Clear()
			}
		}),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			if a.Sprinkle != nil {
				a.Sprinkle()
			}
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			if a.Export != nil {
				a.Export()
			}
		}),
		widget.NewToolbarAction(theme.MailSendIcon(), func() {
			if a.Submit != nil {
				a.Submit()
			}
		}),
	)

	return container.NewHBox(
		widget.NewLabel("Ornament:"),
		kind,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches(func(hex string) { t.Color = hex }),
		widget.NewSeparator(),
		widget.NewLabel("Second:"),
		swatches(func(hex string) { t.Color2 = hex }),
		layout.NewSpacer(),
		tb,
	)
}
