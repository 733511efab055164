// Package export produces the paginated PDF document combining the
// floor plan with overlay configurations.
package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/go-pdf/fpdf"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/plan"
	"vastu-chakra/internal/render"
	"vastu-chakra/pkg/geometry"
)

// Page describes one exported page: a titled overlay configuration, or
// the directional statistics chart.
type Page struct {
	Title  string
	Layers chakra.Layer
	Stats  bool
}

// DefaultPages returns the standard three-page document layout.
func DefaultPages() []Page {
	return []Page{
		{Title: "Directions", Layers: chakra.LayerOutline | chakra.LayerZones | chakra.LayerDirections | chakra.LayerCompass},
		{Title: "Entrances", Layers: chakra.LayerOutline | chakra.LayerEntrances | chakra.LayerCompass},
		{Title: "Directional Area", Stats: true},
	}
}

// Snapshot is the full input tuple for one export run, passed
// explicitly by the caller; the exporter holds no ambient state.
type Snapshot struct {
	Plan      *plan.Layer
	Outline   []geometry.Point2D
	Center    geometry.Point2D
	Transform chakra.Transform
}

// Exporter renders snapshots into paginated PDF documents.
type Exporter struct {
	engine   *chakra.Engine
	renderer *render.Renderer
}

// NewExporter creates an Exporter around the given layout engine and
// renderer.
func NewExporter(engine *chakra.Engine, renderer *render.Renderer) *Exporter {
	return &Exporter{engine: engine, renderer: renderer}
}

// WritePDF writes one landscape A4 page per entry in pages.
func (e *Exporter) WritePDF(w io.Writer, snap Snapshot, pages []Page) error {
	if len(pages) == 0 {
		return fmt.Errorf("no pages requested")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Vastu Chakra", false)
	pdf.SetMargins(12, 12, 12)

	for i, page := range pages {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, page.Title, "", 1, "L", false, 0, "")

		if page.Stats {
			e.statsPage(pdf, snap)
			continue
		}
		if err := e.overlayPage(pdf, snap, page, i); err != nil {
			return err
		}
	}

	if pdf.Err() {
		return fmt.Errorf("pdf assembly failed: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// WritePDFFile is a convenience wrapper writing to a file path.
func (e *Exporter) WritePDFFile(path string, snap Snapshot, pages []Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return e.WritePDF(f, snap, pages)
}

// overlayPage renders one overlay configuration and places it scaled
// to fit the page body.
func (e *Exporter) overlayPage(pdf *fpdf.Fpdf, snap Snapshot, page Page, index int) error {
	ov := e.engine.Layout(snap.Center, snap.Outline, snap.Transform, page.Layers)
	img := e.renderer.RenderToPlan(snap.Plan, ov)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode page %q: %w", page.Title, err)
	}

	name := fmt.Sprintf("overlay-%d", index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	pageW, pageH := pdf.GetPageSize()
	left, top, right, bottom := pdf.GetMargins()
	const titleHeight = 12
	bodyW := pageW - left - right
	bodyH := pageH - top - bottom - titleHeight

	// Fit the raster into the page body, preserving aspect ratio.
	imgW := float64(img.Bounds().Dx())
	imgH := float64(img.Bounds().Dy())
	scale := bodyW / imgW
	if imgH*scale > bodyH {
		scale = bodyH / imgH
	}

	pdf.ImageOptions(name, left, top+titleHeight, imgW*scale, imgH*scale, false, opts, 0, "")
	return nil
}

// statsPage draws the per-direction area percentages as a horizontal
// bar chart with fpdf primitives.
func (e *Exporter) statsPage(pdf *fpdf.Fpdf, snap Snapshot) {
	breakdown := e.engine.DirectionalAreaBreakdown(snap.Center, snap.Outline, snap.Transform)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("Outlined plan area: %.0f px² (triangle-fan estimate per sector)",
			geometry.Area(snap.Outline)),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)

	left, _, right, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	const labelW = 18
	const valueW = 16
	barMax := pageW - left - right - labelW - valueW

	var maxPercent float64
	for _, s := range breakdown {
		if s.Percent > maxPercent {
			maxPercent = s.Percent
		}
	}
	if maxPercent <= 0 {
		maxPercent = 1
	}

	for i, s := range breakdown {
		c := chakra.Directions[i].Color
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))

		y := pdf.GetY()
		pdf.CellFormat(labelW, 7, s.Direction, "", 0, "L", false, 0, "")
		pdf.Rect(left+labelW, y+1, barMax*s.Percent/maxPercent, 5, "F")
		pdf.SetX(left + labelW + barMax)
		pdf.CellFormat(valueW, 7, fmt.Sprintf("%5.1f%%", s.Percent), "", 1, "R", false, 0, "")
	}
}
