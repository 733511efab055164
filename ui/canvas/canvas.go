// Package canvas provides the plan display widget with pan, zoom, and
// outline tracing clicks.
package canvas

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"

	"vastu-chakra/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// markerColor is used for the pending outline vertices drawn while the
// user is still clicking.
var markerColor = color.RGBA{255, 213, 0, 255}

// PlanCanvas displays the composed plan-plus-overlay raster with pan,
// zoom, and click-to-trace support. Clicks are reported in image
// coordinates regardless of zoom.
type PlanCanvas struct {
	widget.BaseWidget

	// Composed output from the overlay renderer
	img *image.RGBA

	// Pending outline vertices, drawn as crosses on top of the image
	markers []geometry.Point2D

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Container
	scroll  *zoomScroll
	content *tappableContent
	imgSize fyne.Size

	// Fit to window
	fitToWindow    bool
	lastScrollSize fyne.Size

	// Callbacks
	onZoomChange   func(zoom float64)
	onTap          func(x, y float64) // left click, image coordinates
	onSecondaryTap func(x, y float64) // right click, image coordinates
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PlanCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PlanCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	// Wheel zooms, drag pans
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

// Offset returns the scroll container's current offset.
func (zs *zoomScroll) Offset() fyne.Position {
	return zs.scroll.Offset
}

// Size returns the scroll container's size.
func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

// Refresh refreshes the scroll container.
func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

// Resize sets the size of the scroll container.
func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// tappableContent wraps the raster to handle mouse events.
type tappableContent struct {
	widget.BaseWidget
	canvas *PlanCanvas
	raster *fynecanvas.Raster
}

func newTappableContent(pc *PlanCanvas, raster *fynecanvas.Raster) *tappableContent {
	tc := &tappableContent{canvas: pc, raster: raster}
	tc.ExtendBaseWidget(tc)
	return tc
}

func (tc *tappableContent) CreateRenderer() fyne.WidgetRenderer {
	return &tappableContentRenderer{content: tc}
}

func (tc *tappableContent) MinSize() fyne.Size {
	return tc.raster.MinSize()
}

func (tc *tappableContent) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		tc.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		tc.canvas.ZoomOut()
	}
}

// Tapped handles left-click events.
func (tc *tappableContent) Tapped(ev *fyne.PointEvent) {
	if tc.canvas.onTap == nil {
		return
	}
	if x, y, ok := tc.eventImageCoords(ev); ok {
		tc.canvas.onTap(x, y)
	}
}

// TappedSecondary handles right-click events.
func (tc *tappableContent) TappedSecondary(ev *fyne.PointEvent) {
	if tc.canvas.onSecondaryTap == nil {
		return
	}
	if x, y, ok := tc.eventImageCoords(ev); ok {
		tc.canvas.onSecondaryTap(x, y)
	}
}

// eventImageCoords converts a pointer event to image coordinates.
func (tc *tappableContent) eventImageCoords(ev *fyne.PointEvent) (float64, float64, bool) {
	// Workaround for Fyne bug: reject clicks outside widget bounds
	size := tc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return 0, 0, false
	}

	offset := tc.canvas.scroll.Offset()
	canvasX := float64(ev.Position.X + offset.X)
	canvasY := float64(ev.Position.Y + offset.Y)

	x, y := tc.canvas.CanvasToImage(canvasX, canvasY)
	return x, y, true
}

type tappableContentRenderer struct {
	content *tappableContent
}

func (r *tappableContentRenderer) Layout(size fyne.Size) {
	r.content.raster.Resize(size)
}

func (r *tappableContentRenderer) MinSize() fyne.Size {
	return r.content.raster.MinSize()
}

func (r *tappableContentRenderer) Refresh() {
	r.content.raster.Refresh()
}

func (r *tappableContentRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.content.raster}
}

func (r *tappableContentRenderer) Destroy() {}

// NewPlanCanvas creates a new plan canvas.
func NewPlanCanvas() *PlanCanvas {
	pc := &PlanCanvas{
		zoom:    1.0,
		imgSize: fyne.NewSize(400, 300),
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.raster.SetMinSize(pc.imgSize)

	pc.content = newTappableContent(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.content, pc)

	pc.ExtendBaseWidget(pc)
	return pc
}

// Container returns the canvas container for embedding in layouts.
func (pc *PlanCanvas) Container() fyne.CanvasObject {
	return pc.scroll
}

// SetImage replaces the displayed raster. Pass the renderer output
// whenever the plan or overlay changes; the previous image is fully
// discarded.
func (pc *PlanCanvas) SetImage(img *image.RGBA) {
	pc.img = img
	pc.updateContentSize()
}

// SetMarkers sets the pending outline vertices drawn over the image.
func (pc *PlanCanvas) SetMarkers(points []geometry.Point2D) {
	pc.markers = points
	pc.Refresh()
}

// SetZoom sets the zoom level.
func (pc *PlanCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	pc.zoom = zoom
	pc.updateContentSize()

	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (pc *PlanCanvas) Zoom() float64 {
	return pc.zoom
}

// ZoomIn increases the zoom level.
func (pc *PlanCanvas) ZoomIn() {
	pc.SetZoom(pc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (pc *PlanCanvas) ZoomOut() {
	pc.SetZoom(pc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the image fits the visible area.
func (pc *PlanCanvas) FitToWindow() {
	if pc.img == nil {
		return
	}
	bounds := pc.img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return
	}

	viewSize := pc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	zoomX := float64(viewSize.Width) / float64(bounds.Dx())
	zoomY := float64(viewSize.Height) / float64(bounds.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}

	pc.SetZoom(zoom * 0.95) // Leave a small margin
}

// SetFitToWindow enables or disables auto-fit on resize.
func (pc *PlanCanvas) SetFitToWindow(fit bool) {
	pc.fitToWindow = fit
	if fit {
		pc.FitToWindow()
	}
}

// GetFitToWindow returns the current fit-to-window state.
func (pc *PlanCanvas) GetFitToWindow() bool {
	return pc.fitToWindow
}

// CheckResize auto-fits if enabled and the scroll container was resized.
func (pc *PlanCanvas) CheckResize(size fyne.Size) {
	if !pc.fitToWindow {
		return
	}
	if size.Width > 0 && size.Height > 0 && size != pc.lastScrollSize {
		pc.lastScrollSize = size
		pc.FitToWindow()
	}
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PlanCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// OnTap sets a callback for left clicks, in image coordinates.
func (pc *PlanCanvas) OnTap(callback func(x, y float64)) {
	pc.onTap = callback
}

// OnSecondaryTap sets a callback for right clicks, in image coordinates.
func (pc *PlanCanvas) OnSecondaryTap(callback func(x, y float64)) {
	pc.onSecondaryTap = callback
}

// ImageToCanvas converts image coordinates to canvas coordinates.
func (pc *PlanCanvas) ImageToCanvas(imgX, imgY float64) (canvasX, canvasY float64) {
	return imgX * pc.zoom, imgY * pc.zoom
}

// CanvasToImage converts canvas coordinates to image coordinates.
func (pc *PlanCanvas) CanvasToImage(canvasX, canvasY float64) (imgX, imgY float64) {
	return canvasX / pc.zoom, canvasY / pc.zoom
}

// Refresh refreshes the canvas display.
func (pc *PlanCanvas) Refresh() {
	pc.raster.Refresh()
}

// updateContentSize updates the content size from the image and zoom.
func (pc *PlanCanvas) updateContentSize() {
	if pc.img == nil || pc.img.Bounds().Dx() == 0 || pc.img.Bounds().Dy() == 0 {
		pc.imgSize = fyne.NewSize(400, 300)
	} else {
		bounds := pc.img.Bounds()
		width := float32(float64(bounds.Dx()) * pc.zoom)
		height := float32(float64(bounds.Dy()) * pc.zoom)
		pc.imgSize = fyne.NewSize(width, height)
	}

	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.content != nil {
		pc.content.Resize(pc.imgSize)
		pc.content.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// draw is the raster drawing function.
func (pc *PlanCanvas) draw(w, h int) image.Image {
	currentSize := fyne.NewSize(float32(w), float32(h))
	if pc.fitToWindow && currentSize != pc.lastScrollSize && w > 0 && h > 0 {
		pc.lastScrollSize = currentSize
		// Schedule fit after this draw completes
		go pc.FitToWindow()
	}

	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Opaque black background
	for i := 3; i < len(output.Pix); i += 4 {
		output.Pix[i] = 255
	}

	if pc.img != nil {
		src := pc.img.Bounds()
		dstW := int(float64(src.Dx()) * pc.zoom)
		dstH := int(float64(src.Dy()) * pc.zoom)
		if dstW > w {
			dstW = w
		}
		if dstH > h {
			dstH = h
		}
		dst := image.Rect(0, 0, dstW, dstH)
		if pc.zoom >= 1 {
			// Keep pixels crisp when magnifying
			xdraw.NearestNeighbor.Scale(output, dst, pc.img, src, xdraw.Src, nil)
		} else {
			xdraw.ApproxBiLinear.Scale(output, dst, pc.img, src, xdraw.Src, nil)
		}
	}

	for _, p := range pc.markers {
		pc.drawCross(output, p)
	}

	return output
}

// drawCross draws a pending vertex marker at the zoomed position.
func (pc *PlanCanvas) drawCross(img *image.RGBA, p geometry.Point2D) {
	cx := int(p.X * pc.zoom)
	cy := int(p.Y * pc.zoom)
	const arm = 5
	for d := -arm; d <= arm; d++ {
		img.Set(cx+d, cy, markerColor)
		img.Set(cx, cy+d, markerColor)
	}
}

// CreateRenderer implements fyne.Widget.
func (pc *PlanCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &planCanvasRenderer{canvas: pc}
}

type planCanvasRenderer struct {
	canvas *PlanCanvas
}

func (r *planCanvasRenderer) Layout(size fyne.Size) {
	if r.canvas.scroll != nil {
		r.canvas.scroll.Resize(size)
	} else if r.canvas.content != nil {
		r.canvas.content.Resize(size)
	}
	r.canvas.CheckResize(size)
}

func (r *planCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *planCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *planCanvasRenderer) Objects() []fyne.CanvasObject {
	if r.canvas.scroll != nil {
		return []fyne.CanvasObject{r.canvas.scroll}
	}
	return []fyne.CanvasObject{r.canvas.content}
}

func (r *planCanvasRenderer) Destroy() {}
