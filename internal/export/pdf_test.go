package export

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/plan"
	"vastu-chakra/internal/render"
	"vastu-chakra/pkg/geometry"
)

func testSnapshot() Snapshot {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{230, 230, 230, 255})
		}
	}
	outline := []geometry.Point2D{
		{X: 40, Y: 40}, {X: 280, Y: 40}, {X: 280, Y: 200}, {X: 40, Y: 200},
	}
	return Snapshot{
		Plan:      plan.FromImage(img),
		Outline:   outline,
		Center:    geometry.PolygonCentroid(outline),
		Transform: chakra.DefaultTransform(),
	}
}

func newTestExporter() *Exporter {
	return NewExporter(chakra.NewEngine(chakra.DefaultConfig()), render.New(render.DefaultOptions()))
}

func TestWritePDFProducesDocument(t *testing.T) {
	e := newTestExporter()

	var buf bytes.Buffer
	if err := e.WritePDF(&buf, testSnapshot(), DefaultPages()); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}

	out := buf.Bytes()
	if len(out) == 0 {
		t.Fatal("empty output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header, got %q", out[:min(8, len(out))])
	}
	// Three default pages should make a document well past header size.
	if len(out) < 1024 {
		t.Errorf("suspiciously small document: %d bytes", len(out))
	}
}

func TestWritePDFNoPages(t *testing.T) {
	e := newTestExporter()

	var buf bytes.Buffer
	err := e.WritePDF(&buf, testSnapshot(), nil)
	if err == nil {
		t.Fatal("expected error for empty page list")
	}
	if !strings.Contains(err.Error(), "no pages") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWritePDFStatsOnly(t *testing.T) {
	e := newTestExporter()

	var buf bytes.Buffer
	pages := []Page{{Title: "Directional Area", Stats: true}}
	if err := e.WritePDF(&buf, testSnapshot(), pages); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("missing PDF header")
	}
}

func TestDefaultPages(t *testing.T) {
	pages := DefaultPages()
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}
	if !pages[0].Layers.Has(chakra.LayerDirections) {
		t.Error("first page should show direction sectors")
	}
	if !pages[1].Layers.Has(chakra.LayerEntrances) {
		t.Error("second page should show entrances")
	}
	if !pages[2].Stats {
		t.Error("third page should be the stats chart")
	}
}
