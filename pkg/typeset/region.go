// Package typeset erases text regions of an image and redraws replacement
// text word-wrapped and shrunk to fit each region's box.
package typeset

import (
	"image"
	"image/color"
	"math"
)

type Point struct {
	X float64
	Y float64
}

// Region is an axis-aligned box in image pixel coordinates holding the text
// detected inside it.
type Region struct {
	TopLeft     Point
	BottomRight Point
	SourceText  string
}

func (r Region) Width() float64 {
	return r.BottomRight.X - r.TopLeft.X
}

func (r Region) Height() float64 {
	return r.BottomRight.Y - r.TopLeft.Y
}

// Valid reports whether the box is non-empty.
func (r Region) Valid() bool {
	return r.BottomRight.X > r.TopLeft.X && r.BottomRight.Y > r.TopLeft.Y
}

// Rect returns the smallest integer rectangle covering the region.
func (r Region) Rect() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.TopLeft.X)),
		int(math.Floor(r.TopLeft.Y)),
		int(math.Ceil(r.BottomRight.X)),
		int(math.Ceil(r.BottomRight.Y)),
	)
}

type TranslatedRegion struct {
	Region
	TranslatedText string
	// Overrides the re-typesetter's background color for this region when set.
	Background color.Color
}
