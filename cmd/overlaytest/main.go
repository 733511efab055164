// Command overlaytest renders the chakra overlay headlessly and writes
// PNG pages plus the exported PDF. Useful for checking layout changes
// without launching the UI.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"vastu-chakra/internal/chakra"
	"vastu-chakra/internal/export"
	"vastu-chakra/internal/orient"
	"vastu-chakra/internal/plan"
	"vastu-chakra/internal/render"
	"vastu-chakra/pkg/geometry"
)

func main() {
	planPath := flag.String("plan", "", "Path to a floor plan image (optional)")
	outDir := flag.String("out", ".", "Output directory")
	rotation := flag.Float64("rotation", 0, "Overlay rotation in degrees")
	scale := flag.Float64("scale", 1, "Overlay scale factor")
	autoOrient := flag.Bool("orient", false, "Suggest rotation from the outline's principal axis")
	flag.Parse()

	var planLayer *plan.Layer
	if *planPath != "" {
		var err error
		planLayer, err = plan.Load(*planPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load plan: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded plan %s (%dx%d)\n", *planPath, planLayer.Width(), planLayer.Height())
	}

	// An L-shaped sample plot, roughly centered on the default canvas
	outline := []geometry.Point2D{
		{X: 150, Y: 100}, {X: 650, Y: 100}, {X: 650, Y: 330},
		{X: 430, Y: 330}, {X: 430, Y: 500}, {X: 150, Y: 500},
	}
	center := geometry.PolygonCentroid(outline)
	fmt.Printf("Outline: %d vertices, brahmasthan (%.1f, %.1f)\n", len(outline), center.X, center.Y)

	tf := chakra.DefaultTransform()
	tf.Rotation = chakra.NormalizeAngle(*rotation)
	tf.Scale = *scale
	if *autoOrient {
		tf.Rotation = chakra.NormalizeAngle(orient.SuggestRotation(outline))
		fmt.Printf("Auto-orient: %.2f°\n", tf.Rotation)
	}

	engine := chakra.NewEngine(chakra.DefaultConfig())
	renderer := render.New(render.DefaultOptions())

	// One PNG per default page configuration
	for _, page := range export.DefaultPages() {
		if page.Stats {
			continue
		}
		ov := engine.Layout(center, outline, tf, page.Layers)
		img := renderer.RenderToPlan(planLayer, ov)

		name := strings.ToLower(strings.ReplaceAll(page.Title, " ", "-")) + ".png"
		path := filepath.Join(*outDir, name)
		if err := writePNG(path, img); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	}

	// Directional area breakdown on stdout
	fmt.Println("\nArea by direction:")
	for _, s := range engine.DirectionalAreaBreakdown(center, outline, tf) {
		fmt.Printf("  %-4s %6.2f%%\n", s.Direction, s.Percent)
	}

	// Full PDF export
	pdfPath := filepath.Join(*outDir, "chakra.pdf")
	exporter := export.NewExporter(engine, renderer)
	snap := export.Snapshot{Plan: planLayer, Outline: outline, Center: center, Transform: tf}
	if err := exporter.WritePDFFile(pdfPath, snap, export.DefaultPages()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to export PDF: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", pdfPath)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
