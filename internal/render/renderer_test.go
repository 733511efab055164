package render

import (
	"image"
	"image/color"
	"testing"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/plan"
	"vastu-chakra/pkg/geometry"
)

func testOverlay(layers chakra.Layer) *chakra.Overlay {
	engine := chakra.NewEngine(chakra.DefaultConfig())
	outline := []geometry.Point2D{
		{X: 100, Y: 100}, {X: 700, Y: 100}, {X: 700, Y: 500}, {X: 100, Y: 500},
	}
	center := geometry.PolygonCentroid(outline)
	return engine.Layout(center, outline, chakra.Transform{Scale: 1, Opacity: 1}, layers)
}

func TestRenderBareCanvas(t *testing.T) {
	r := New(DefaultOptions())
	out := r.Render(nil, nil, 100, 80)

	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 80 {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.RGBAAt(50, 40); got != DefaultOptions().Background {
		t.Errorf("canvas pixel = %v, want background %v", got, DefaultOptions().Background)
	}
}

func TestRenderRadialLinePixels(t *testing.T) {
	r := New(DefaultOptions())
	ov := testOverlay(chakra.LayerDirections)
	out := r.Render(nil, ov, 800, 600)

	// The north radial runs straight up from (400,300) to (400,100).
	bg := DefaultOptions().Background
	hit := false
	for y := 150; y < 300; y++ {
		if out.RGBAAt(400, y) != bg {
			hit = true
			break
		}
	}
	if !hit {
		t.Error("no radial line pixels found along the north ray")
	}

	// Well outside the outline nothing should be drawn.
	if got := out.RGBAAt(790, 590); got != bg {
		t.Errorf("pixel outside overlay = %v, want background", got)
	}
}

func TestRenderZoneFill(t *testing.T) {
	r := New(DefaultOptions())
	ov := testOverlay(chakra.LayerZones)
	out := r.Render(nil, ov, 800, 600)

	// The zone ring spans radii [77, 220] around (400,300); sample the
	// north wedge mid-ring.
	bg := DefaultOptions().Background
	if got := out.RGBAAt(400, 300-150); got == bg {
		t.Error("expected zone fill pixels in the north wedge")
	}
	// The ring hole stays clear.
	if got := out.RGBAAt(400, 300); got != bg {
		t.Errorf("ring hole pixel = %v, want background", got)
	}
}

func TestRenderToPlanUsesPlanSize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 321, 201))
	for y := 0; y < 201; y++ {
		for x := 0; x < 321; x++ {
			img.Set(x, y, color.RGBA{10, 20, 30, 255})
		}
	}
	layer := plan.FromImage(img)

	r := New(DefaultOptions())
	out := r.RenderToPlan(layer, nil)
	if out.Bounds().Dx() != 321 || out.Bounds().Dy() != 201 {
		t.Fatalf("bounds = %v, want plan size", out.Bounds())
	}
	if got := out.RGBAAt(160, 100); got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("plan pixel not copied through: %v", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := New(DefaultOptions())
	ov := testOverlay(chakra.LayerAll)

	a := r.Render(nil, ov, 800, 600)
	b := r.Render(nil, ov, 800, 600)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatal("identical inputs produced different renders")
		}
	}
}
