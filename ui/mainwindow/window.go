// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"vastu-chakra/internal/app"
	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/export"
	"vastu-chakra/internal/plan"
	"vastu-chakra/internal/render"
	"vastu-chakra/internal/version"
	"vastu-chakra/pkg/geometry"
	"vastu-chakra/ui/canvas"
	"vastu-chakra/ui/panels"
)

const (
	prefKeyLastDir  = "lastDirectory"
	prefKeyLastPlan = "lastPlan"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	engine    *chakra.Engine
	renderer  *render.Renderer
	canvas    *canvas.PlanCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	// Menu items that need state tracking
	fitToWindowItem *fyne.MenuItem
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow("Vastu Chakra")

	mw := &MainWindow{
		Window:   win,
		app:      fyneApp,
		state:    state,
		engine:   chakra.NewEngine(chakra.DefaultConfig()),
		renderer: render.New(render.DefaultOptions()),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.refreshOverlay()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewPlanCanvas()
	mw.canvas.OnTap(func(x, y float64) {
		mw.state.AddPoint(geometry.Point2D{X: x, Y: y})
	})
	mw.canvas.OnSecondaryTap(func(x, y float64) {
		// Right click closes the outline, like double-click in CAD tools
		if !mw.state.CompletePolygon() {
			mw.updateStatus("Need at least 3 points to close the outline")
		}
	})

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.engine)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	// Restore the last plan from preferences
	mw.restoreLastPlan()

	canvasArea := container.NewBorder(
		toolbar,               // top
		nil,                   // bottom
		nil,                   // left
		nil,                   // right
		mw.canvas.Container(), // center
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25) // Side panel takes 25% of width

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", func() {
		mw.onZoomOut()
	})
	zoomInBtn := widget.NewButton("+", func() {
		mw.onZoomIn()
	})
	fitBtn := widget.NewButton("Fit", func() {
		mw.onToggleFitToWindow()
	})
	actualBtn := widget.NewButton("1:1", func() {
		mw.onActualSize()
	})

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Plan...", mw.onOpenPlan),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF...", mw.onExportPDF),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	mw.fitToWindowItem = fyne.NewMenuItem("  Fit to Window", mw.onToggleFitToWindow)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		mw.fitToWindowItem,
		fyne.NewMenuItem("Actual Size", mw.onActualSize),
	)

	outlineMenu := fyne.NewMenu("Outline",
		fyne.NewMenuItem("Complete Outline", func() {
			if !mw.state.CompletePolygon() {
				mw.updateStatus("Need at least 3 points to close the outline")
			}
		}),
		fyne.NewMenuItem("Clear Outline", mw.state.ClearOutline),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, viewMenu, outlineMenu, helpMenu)
	mw.SetMainMenu(mainMenu)
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventPlanLoaded, func(data interface{}) {
		if layer, ok := data.(*plan.Layer); ok && layer != nil {
			mw.SetTitle("Vastu Chakra - " + filepath.Base(layer.Path))
			mw.updateStatus(fmt.Sprintf("Plan loaded: %dx%d", layer.Width(), layer.Height()))
		}
		mw.refreshOverlay()
	})

	mw.state.On(app.EventOutlineChanged, func(interface{}) {
		mw.refreshOverlay()
	})

	mw.state.On(app.EventTransformChanged, func(interface{}) {
		mw.refreshOverlay()
	})

	mw.state.On(app.EventLayersChanged, func(interface{}) {
		mw.refreshOverlay()
	})
}

// refreshOverlay recomputes the overlay for the current state and
// pushes the composed raster to the canvas.
func (mw *MainWindow) refreshOverlay() {
	outline, center, tf, layers, ok := mw.state.Snapshot()

	var ov *chakra.Overlay
	if ok {
		ov = mw.engine.Layout(center, outline, tf, layers)
	}

	mw.canvas.SetImage(mw.renderer.RenderToPlan(mw.state.Plan, ov))
	mw.canvas.SetMarkers(mw.state.PendingPoints())
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	dir := filepath.Dir(filePath)
	mw.app.Preferences().SetString(prefKeyLastDir, dir)
}

// restoreLastPlan loads the previously opened plan, if any.
func (mw *MainWindow) restoreLastPlan() {
	path := mw.app.Preferences().String(prefKeyLastPlan)
	if path == "" {
		return
	}
	if err := mw.state.LoadPlan(path); err != nil {
		mw.updateStatus("Could not restore last plan: " + err.Error())
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenPlan() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.LoadPlan(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.app.Preferences().SetString(prefKeyLastPlan, path)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(plan.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPDF() {
	outline, center, tf, _, ok := mw.state.Snapshot()
	if !ok {
		dialog.ShowInformation("Export PDF",
			"Trace and complete the plot outline before exporting.", mw.Window)
		return
	}

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".pdf" {
			path += ".pdf"
		}
		mw.saveLastDir(path)

		exporter := export.NewExporter(mw.engine, mw.renderer)
		snap := export.Snapshot{
			Plan:      mw.state.Plan,
			Outline:   outline,
			Center:    center,
			Transform: tf,
		}
		if err := exporter.WritePDFFile(path, snap, export.DefaultPages()); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + path)
	}, mw.Window)
	fd.SetFileName("chakra.pdf")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onZoomIn() {
	mw.disableFitToWindow()
	mw.canvas.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.disableFitToWindow()
	mw.canvas.ZoomOut()
}

func (mw *MainWindow) onToggleFitToWindow() {
	enabled := !mw.canvas.GetFitToWindow()
	mw.canvas.SetFitToWindow(enabled)

	if enabled {
		mw.fitToWindowItem.Label = "✓ Fit to Window"
	} else {
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onActualSize() {
	mw.disableFitToWindow()
	mw.canvas.SetZoom(1.0)
}

func (mw *MainWindow) disableFitToWindow() {
	if mw.canvas.GetFitToWindow() {
		mw.canvas.SetFitToWindow(false)
		mw.fitToWindowItem.Label = "  Fit to Window"
	}
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Vastu Chakra",
		fmt.Sprintf("Vastu Chakra v%s\n\n"+
			"A floor plan overlay tool for Vastu Shastra analysis.\n\n"+
			"16 directions, 32 entrances, zone wedges, and PDF export.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
