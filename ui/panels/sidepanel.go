// Package panels provides the control and statistics panels.
package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"vastu-chakra/internal/app"
	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/orient"
)

// SidePanel holds the overlay controls and the directional area
// statistics readout.
type SidePanel struct {
	state  *app.State
	engine *chakra.Engine
	win    fyne.Window

	// Overlay controls
	rotationSlider *widget.Slider
	rotationLabel  *widget.Label
	scaleSlider    *widget.Slider
	scaleLabel     *widget.Label
	opacitySlider  *widget.Slider
	opacityLabel   *widget.Label

	// Layer visibility
	layerChecks map[chakra.Layer]*widget.Check

	// Outline actions
	completeBtn *widget.Button
	clearBtn    *widget.Button
	orientBtn   *widget.Button
	outlineInfo *widget.Label

	// Statistics
	statRows [chakra.SectorCount]*statRow

	content fyne.CanvasObject
}

// statRow is one direction's line in the statistics readout.
type statRow struct {
	swatch  *fynecanvas.Rectangle
	name    *widget.Label
	percent *widget.Label
}

// layerOrder fixes the checkbox ordering in the panel.
var layerOrder = []struct {
	layer chakra.Layer
	label string
}{
	{chakra.LayerDirections, "Direction lines"},
	{chakra.LayerEntrances, "Entrance rays"},
	{chakra.LayerZones, "Zone wedges"},
	{chakra.LayerCompass, "Compass markers"},
	{chakra.LayerOutline, "Plot outline"},
}

// NewSidePanel creates the panel and wires its controls to the state.
func NewSidePanel(state *app.State, engine *chakra.Engine) *SidePanel {
	sp := &SidePanel{
		state:       state,
		engine:      engine,
		layerChecks: make(map[chakra.Layer]*widget.Check),
	}

	sp.rotationLabel = widget.NewLabel("Rotation: 0.0°")
	sp.rotationSlider = widget.NewSlider(0, 360)
	sp.rotationSlider.Step = 0.5
	sp.rotationSlider.OnChanged = func(v float64) {
		state.SetRotation(v)
	}

	sp.scaleLabel = widget.NewLabel("Scale: 1.00x")
	sp.scaleSlider = widget.NewSlider(0.2, 3)
	sp.scaleSlider.Step = 0.05
	sp.scaleSlider.Value = 1
	sp.scaleSlider.OnChanged = func(v float64) {
		state.SetScale(v)
	}

	sp.opacityLabel = widget.NewLabel("Opacity: 100%")
	sp.opacitySlider = widget.NewSlider(0, 1)
	sp.opacitySlider.Step = 0.05
	sp.opacitySlider.Value = 1
	sp.opacitySlider.OnChanged = func(v float64) {
		state.SetOpacity(v)
	}

	layerBox := container.NewVBox()
	for _, entry := range layerOrder {
		layer := entry.layer
		check := widget.NewCheck(entry.label, func(bool) {
			state.ToggleLayer(layer)
		})
		check.Checked = true
		sp.layerChecks[layer] = check
		layerBox.Add(check)
	}

	sp.outlineInfo = widget.NewLabel("Click the plan to trace the plot outline.")
	sp.outlineInfo.Wrapping = fyne.TextWrapWord

	sp.completeBtn = widget.NewButton("Complete Outline", func() {
		if !state.CompletePolygon() {
			sp.outlineInfo.SetText("Need at least 3 points to close the outline.")
		}
	})
	sp.clearBtn = widget.NewButton("Clear Outline", func() {
		state.ClearOutline()
	})
	sp.orientBtn = widget.NewButton("Auto-Orient", func() {
		sp.onAutoOrient()
	})

	statsBox := container.NewVBox(widget.NewLabelWithStyle(
		"Area by direction", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
	for i := range sp.statRows {
		d := chakra.Directions[i]
		row := &statRow{
			swatch:  fynecanvas.NewRectangle(d.Color),
			name:    widget.NewLabel(d.Name),
			percent: widget.NewLabel("--"),
		}
		row.swatch.SetMinSize(fyne.NewSize(14, 14))
		sp.statRows[i] = row
		statsBox.Add(container.NewHBox(row.swatch, row.name, row.percent))
	}

	controls := container.NewVBox(
		widget.NewLabelWithStyle("Overlay", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.rotationLabel, sp.rotationSlider,
		sp.scaleLabel, sp.scaleSlider,
		sp.opacityLabel, sp.opacitySlider,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Layers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		layerBox,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Outline", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		sp.outlineInfo,
		sp.completeBtn,
		sp.clearBtn,
		sp.orientBtn,
	)

	sp.content = container.NewAppTabs(
		container.NewTabItem("Controls", container.NewVScroll(controls)),
		container.NewTabItem("Stats", container.NewVScroll(statsBox)),
	)

	sp.registerEvents()
	return sp
}

// SetWindow stores the parent window for dialogs.
func (sp *SidePanel) SetWindow(win fyne.Window) {
	sp.win = win
}

// Container returns the panel widget for embedding in layouts.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.content
}

func (sp *SidePanel) registerEvents() {
	sp.state.On(app.EventTransformChanged, func(data interface{}) {
		tf, ok := data.(chakra.Transform)
		if !ok {
			return
		}
		sp.rotationLabel.SetText(fmt.Sprintf("Rotation: %.1f°", tf.Rotation))
		sp.scaleLabel.SetText(fmt.Sprintf("Scale: %.2fx", tf.Scale))
		sp.opacityLabel.SetText(fmt.Sprintf("Opacity: %.0f%%", tf.Opacity*100))
		sp.refreshStats()
	})

	sp.state.On(app.EventOutlineChanged, func(interface{}) {
		sp.refreshOutlineInfo()
		sp.refreshStats()
	})
}

func (sp *SidePanel) refreshOutlineInfo() {
	outline, center, _, _, ok := sp.state.Snapshot()
	if ok {
		sp.outlineInfo.SetText(fmt.Sprintf(
			"Outline: %d vertices\nBrahmasthan: (%.0f, %.0f)",
			len(outline), center.X, center.Y))
		return
	}
	if n := len(sp.state.PendingPoints()); n > 0 {
		sp.outlineInfo.SetText(fmt.Sprintf("%d point(s) traced. Complete with 3 or more.", n))
		return
	}
	sp.outlineInfo.SetText("Click the plan to trace the plot outline.")
}

// refreshStats recomputes the directional area breakdown.
func (sp *SidePanel) refreshStats() {
	outline, center, tf, _, ok := sp.state.Snapshot()
	if !ok {
		for _, row := range sp.statRows {
			row.percent.SetText("--")
		}
		return
	}

	breakdown := sp.engine.DirectionalAreaBreakdown(center, outline, tf)
	for i, s := range breakdown {
		sp.statRows[i].percent.SetText(fmt.Sprintf("%.1f%%", s.Percent))
	}
}

// onAutoOrient suggests a rotation from the outline's principal axis
// and applies it.
func (sp *SidePanel) onAutoOrient() {
	outline, _, _, _, ok := sp.state.Snapshot()
	if !ok {
		sp.outlineInfo.SetText("Complete an outline before auto-orienting.")
		return
	}

	deg := orient.SuggestRotation(outline)
	sp.state.SetRotation(deg)
	sp.rotationSlider.SetValue(chakra.NormalizeAngle(deg))
	sp.outlineInfo.SetText(fmt.Sprintf("Auto-orient: rotated overlay to %.1f°.", chakra.NormalizeAngle(deg)))
}
