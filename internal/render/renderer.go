// Package render rasterizes computed overlay geometry over the
// floor-plan image.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/plan"
	"vastu-chakra/pkg/colorutil"
	"vastu-chakra/pkg/geometry"
)

// Options configures overlay rasterization.
type Options struct {
	RadialWidth    int        // thickness of the 16 direction lines
	EntranceWidth  int        // thickness of the 32 entrance rays
	OutlineWidth   int        // thickness of the polygon outline
	WedgeAlpha     float64    // zone fill strength before overlay opacity
	Background     color.RGBA // canvas fill behind the plan
	RadialColor    color.RGBA
	EntranceColor  color.RGBA
	OutlineColor   color.RGBA
	LabelColor     color.RGBA
	MarkVertices   bool // draw dots at outline vertices
	VertexRadius   int
}

// DefaultOptions returns the standard rendering options.
func DefaultOptions() Options {
	return Options{
		RadialWidth:   3,
		EntranceWidth: 1,
		OutlineWidth:  2,
		WedgeAlpha:    0.35,
		Background:    color.RGBA{245, 243, 238, 255},
		RadialColor:   colorutil.SlateGray,
		EntranceColor: colorutil.Gold,
		OutlineColor:  colorutil.Red,
		LabelColor:    colorutil.Black,
		MarkVertices:  true,
		VertexRadius:  4,
	}
}

// Renderer draws overlay payloads onto RGBA images.
type Renderer struct {
	opts Options
	face font.Face
}

// New creates a Renderer with the given options.
func New(opts Options) *Renderer {
	return &Renderer{
		opts: opts,
		face: basicfont.Face7x13,
	}
}

// Render composes the plan raster and the overlay into a new image of
// the given size. A nil plan leaves the background fill. The overlay
// may be nil, which yields just the (optionally planned) canvas.
func (r *Renderer) Render(planLayer *plan.Layer, ov *chakra.Overlay, width, height int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), &image.Uniform{r.opts.Background}, image.Point{}, draw.Src)

	if planLayer != nil && planLayer.Image != nil && planLayer.Visible {
		r.drawPlan(out, planLayer)
	}
	if ov == nil {
		return out
	}

	opacity := clamp(ov.Opacity, 0, 1)

	// Zones go underneath everything else.
	for _, w := range ov.Zones {
		r.fillPolygon(out, w.Outline, w.Color, r.opts.WedgeAlpha*opacity)
	}

	for _, ln := range ov.EntranceRays {
		r.drawThickLine(out, ln.Start, ln.End, r.opts.EntranceWidth,
			blendAlpha(r.opts.EntranceColor, opacity))
	}
	for _, ln := range ov.Radials {
		r.drawThickLine(out, ln.Start, ln.End, r.opts.RadialWidth,
			blendAlpha(r.opts.RadialColor, opacity))
	}

	if len(ov.Outline) >= 2 {
		n := len(ov.Outline)
		for i := 0; i < n; i++ {
			a := ov.Outline[i]
			b := ov.Outline[(i+1)%n]
			r.drawThickLine(out, a, b, r.opts.OutlineWidth, r.opts.OutlineColor)
		}
		if r.opts.MarkVertices {
			for _, p := range ov.Outline {
				r.fillCircle(out, p, r.opts.VertexRadius, r.opts.OutlineColor)
			}
		}
	}

	for _, l := range ov.EntranceLabels {
		r.drawLabel(out, l, blendAlpha(r.opts.LabelColor, opacity))
	}
	for _, l := range ov.DirectionLabels {
		r.drawLabel(out, l, r.opts.LabelColor)
	}
	for _, l := range ov.Compass {
		r.drawMarker(out, l)
	}

	return out
}

// RenderToPlan renders at the plan's own pixel size, or a default
// canvas when no plan is loaded.
func (r *Renderer) RenderToPlan(planLayer *plan.Layer, ov *chakra.Overlay) *image.RGBA {
	width, height := 800, 600
	if planLayer != nil && planLayer.Width() > 0 {
		width, height = planLayer.Width(), planLayer.Height()
	}
	return r.Render(planLayer, ov, width, height)
}

// drawPlan blends the plan raster onto the canvas honoring its opacity.
func (r *Renderer) drawPlan(dst *image.RGBA, l *plan.Layer) {
	if l.Opacity >= 1 {
		draw.Draw(dst, l.Image.Bounds().Sub(l.Image.Bounds().Min), l.Image, l.Image.Bounds().Min, draw.Over)
		return
	}

	bounds := l.Image.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			dx, dy := x-bounds.Min.X, y-bounds.Min.Y
			if dx >= dst.Bounds().Dx() || dy >= dst.Bounds().Dy() {
				continue
			}
			blendPixel(dst, dx, dy, l.Image.At(x, y), l.Opacity)
		}
	}
}

// fillPolygon scanline-fills a polygon with alpha blending.
func (r *Renderer) fillPolygon(img *image.RGBA, outline []geometry.Point2D, c color.RGBA, alpha float64) {
	if len(outline) < 3 || alpha <= 0 {
		return
	}

	box := geometry.BoundingBox(outline)
	bounds := img.Bounds()
	minX := clampInt(int(math.Floor(box.X)), bounds.Min.X, bounds.Max.X-1)
	maxX := clampInt(int(math.Ceil(box.X+box.Width)), bounds.Min.X, bounds.Max.X-1)
	minY := clampInt(int(math.Floor(box.Y)), bounds.Min.Y, bounds.Max.Y-1)
	maxY := clampInt(int(math.Ceil(box.Y+box.Height)), bounds.Min.Y, bounds.Max.Y-1)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := geometry.Point2D{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if geometry.PointInPolygon(p, outline) {
				blendPixel(img, x, y, c, alpha)
			}
		}
	}
}

// drawThickLine draws a line with the given thickness by stacking
// parallel single-pixel lines.
func (r *Renderer) drawThickLine(img *image.RGBA, a, b geometry.Point2D, thickness int, c color.RGBA) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return
	}

	// Perpendicular unit vector
	px := -dy / length
	py := dx / length

	halfThick := float64(thickness) / 2
	for t := -halfThick; t <= halfThick; t += 1.0 {
		drawLine(img,
			int(a.X+px*t), int(a.Y+py*t),
			int(b.X+px*t), int(b.Y+py*t), c)
	}
}

// drawLine draws a single-pixel line using Bresenham's algorithm.
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	bounds := img.Bounds()
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx, sy := -1, -1
	if x1 < x2 {
		sx = 1
	}
	if y1 < y2 {
		sy = 1
	}

	err := dx - dy
	for {
		if x1 >= bounds.Min.X && x1 < bounds.Max.X && y1 >= bounds.Min.Y && y1 < bounds.Max.Y {
			blendSet(img, x1, y1, c)
		}
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// fillCircle fills a small disc, used for outline vertex markers.
func (r *Renderer) fillCircle(img *image.RGBA, center geometry.Point2D, radius int, c color.RGBA) {
	cx, cy := int(center.X), int(center.Y)
	bounds := img.Bounds()
	for y := cy - radius; y <= cy+radius; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		for x := cx - radius; x <= cx+radius; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLabel draws text centered on the label anchor with a light halo
// for readability over busy plans.
func (r *Renderer) drawLabel(img *image.RGBA, l chakra.Label, c color.RGBA) {
	r.drawText(img, l.Anchor, l.Text, colorutil.White, 1)
	r.drawText(img, l.Anchor, l.Text, c, 0)
}

// drawMarker draws a compass letter with an inverse plate behind it.
func (r *Renderer) drawMarker(img *image.RGBA, l chakra.Label) {
	w := r.textWidth(l.Text)
	h := r.face.Metrics().Height.Ceil()
	x0 := int(l.Anchor.X) - w/2 - 3
	y0 := int(l.Anchor.Y) - h/2 - 2
	plate := []geometry.Point2D{
		{X: float64(x0), Y: float64(y0)},
		{X: float64(x0 + w + 6), Y: float64(y0)},
		{X: float64(x0 + w + 6), Y: float64(y0 + h + 4)},
		{X: float64(x0), Y: float64(y0 + h + 4)},
	}
	r.fillPolygon(img, plate, colorutil.Black, 0.8)
	r.drawText(img, l.Anchor, l.Text, colorutil.White, 0)
}

// drawText renders a string centered on the anchor, offset by the halo
// displacement.
func (r *Renderer) drawText(img *image.RGBA, anchor geometry.Point2D, text string, c color.RGBA, offset int) {
	w := r.textWidth(text)
	ascent := r.face.Metrics().Ascent.Ceil()
	height := r.face.Metrics().Height.Ceil()

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot: fixed.P(
			int(anchor.X)-w/2+offset,
			int(anchor.Y)-height/2+ascent+offset,
		),
	}
	d.DrawString(text)
}

func (r *Renderer) textWidth(text string) int {
	d := font.Drawer{Face: r.face}
	return d.MeasureString(text).Ceil()
}

// blendPixel alpha-blends a color over the destination pixel.
func blendPixel(img *image.RGBA, x, y int, c color.Color, alpha float64) {
	sr, sg, sb, _ := c.RGBA()
	dr, dg, db, da := img.At(x, y).RGBA()

	blend := func(s, d uint32) uint8 {
		return uint8((float64(s)*alpha + float64(d)*(1-alpha)) / 257)
	}
	img.SetRGBA(x, y, color.RGBA{
		R: blend(sr, dr),
		G: blend(sg, dg),
		B: blend(sb, db),
		A: uint8(da / 257),
	})
}

// blendSet writes a pixel honoring the color's own alpha channel.
func blendSet(img *image.RGBA, x, y int, c color.RGBA) {
	if c.A == 255 {
		img.SetRGBA(x, y, c)
		return
	}
	blendPixel(img, x, y, color.RGBA{c.R, c.G, c.B, 255}, float64(c.A)/255)
}

// blendAlpha folds an opacity factor into a color's alpha channel.
func blendAlpha(c color.RGBA, opacity float64) color.RGBA {
	c.A = uint8(float64(c.A) * clamp(opacity, 0, 1))
	return c
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
