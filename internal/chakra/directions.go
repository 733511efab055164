// Package chakra implements the 16-direction / 32-entrance compass
// overlay: the static sector tables, the boundary ray caster, and the
// layout engine that turns a building outline into drawable overlay
// geometry.
//
// Angle convention, applied uniformly across the package: 0 degrees
// points up (compass north in image space), angles increase clockwise.
package chakra

import (
	"fmt"
	"image/color"
)

const (
	// SectorCount is the number of direction sectors.
	SectorCount = 16
	// EntranceCount is the number of entrance positions.
	EntranceCount = 32

	// SectorPitch is the angular width of one direction sector.
	SectorPitch = 22.5
	// EntrancePitch is the angular width of one entrance sub-sector.
	EntrancePitch = 11.25
	// SectorHalfWidth is the offset from a sector's nominal angle to
	// its two boundary rays.
	SectorHalfWidth = SectorPitch / 2
)

// DirectionSector is one of the 16 fixed compass sectors. The sector
// spans Angle +/- SectorHalfWidth; labels anchor at the nominal angle.
type DirectionSector struct {
	Name  string
	Angle float64 // nominal angle in degrees, 0 = north, clockwise
	Color color.RGBA
}

// Directions is the static table of the 16 direction sectors,
// clockwise from north. Colors follow the traditional zone palette:
// water hues in the north-east quadrant, fire in the south-east,
// earth in the south-west, air in the north-west.
var Directions = [SectorCount]DirectionSector{
	{Name: "N", Angle: 0, Color: color.RGBA{66, 133, 244, 255}},
	{Name: "NNE", Angle: 22.5, Color: color.RGBA{80, 160, 230, 255}},
	{Name: "NE", Angle: 45, Color: color.RGBA{100, 200, 220, 255}},
	{Name: "ENE", Angle: 67.5, Color: color.RGBA{120, 210, 180, 255}},
	{Name: "E", Angle: 90, Color: color.RGBA{90, 190, 90, 255}},
	{Name: "ESE", Angle: 112.5, Color: color.RGBA{170, 210, 80, 255}},
	{Name: "SE", Angle: 135, Color: color.RGBA{240, 180, 60, 255}},
	{Name: "SSE", Angle: 157.5, Color: color.RGBA{245, 140, 50, 255}},
	{Name: "S", Angle: 180, Color: color.RGBA{234, 67, 53, 255}},
	{Name: "SSW", Angle: 202.5, Color: color.RGBA{210, 60, 100, 255}},
	{Name: "SW", Angle: 225, Color: color.RGBA{170, 90, 60, 255}},
	{Name: "WSW", Angle: 247.5, Color: color.RGBA{150, 110, 90, 255}},
	{Name: "W", Angle: 270, Color: color.RGBA{120, 120, 130, 255}},
	{Name: "WNW", Angle: 292.5, Color: color.RGBA{140, 120, 200, 255}},
	{Name: "NW", Angle: 315, Color: color.RGBA{150, 110, 230, 255}},
	{Name: "NNW", Angle: 337.5, Color: color.RGBA{100, 120, 240, 255}},
}

// EntrancePosition is one of the 32 fixed entrance positions. Each
// sits at the angular midpoint between two adjacent entrance boundary
// rays, so every angle is of the form k*11.25 + 5.625 degrees.
type EntrancePosition struct {
	Code  string // two-character pada code, e.g. "N5"
	Angle float64
}

// Entrances is the static table of the 32 entrance positions.
// Codes run clockwise along each side starting at the corner:
// E1-E8 from the NE corner, S1-S8 from SE, W1-W8 from SW, N1-N8
// from NW.
var Entrances [EntranceCount]EntrancePosition

func init() {
	sides := []struct {
		prefix string
		start  float64 // corner angle where the side begins
	}{
		{"E", 45},
		{"S", 135},
		{"W", 225},
		{"N", 315},
	}

	i := 0
	for _, side := range sides {
		for k := 0; k < 8; k++ {
			Entrances[i] = EntrancePosition{
				Code:  fmt.Sprintf("%s%d", side.prefix, k+1),
				Angle: NormalizeAngle(side.start + float64(k)*EntrancePitch + EntrancePitch/2),
			}
			i++
		}
	}
}

// CardinalIndices are the positions of N, E, S, W in the Directions table.
var CardinalIndices = [4]int{0, 4, 8, 12}
