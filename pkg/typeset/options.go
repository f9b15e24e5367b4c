package typeset

import (
	"image/color"
)

type EraseMode int

const (
	// Fill the region with the background color before drawing.
	EraseFill EraseMode = iota
	// Leave the pixels alone. Used when the text was already removed, e.g. by inpainting.
	EraseNone
)

const (
	DefaultInitialFontRatio = 0.8
	DefaultMinFontSize      = 1.0
	DefaultFontStep         = 1.0
)

type Options struct {
	// Initial font size as a fraction of the box height. E.g., 0.8
	InitialFontRatio float64
	// The font size is never reduced below this value. E.g., 1
	MinFontSize float64
	// Amount subtracted from the font size on each shrink step. E.g., 1
	FontStep float64
	// Opaque color used to clear each region.
	Background color.Color
	// Text color. When nil, black or white is picked by contrast with the background.
	Foreground color.Color
	Erase      EraseMode
}

func DefaultOptions() Options {
	return Options{
		InitialFontRatio: DefaultInitialFontRatio,
		MinFontSize:      DefaultMinFontSize,
		FontStep:         DefaultFontStep,
		Background:       color.White,
		Erase:            EraseFill,
	}
}

func (o Options) withDefaults() Options {
	if o.InitialFontRatio <= 0 {
		o.InitialFontRatio = DefaultInitialFontRatio
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = DefaultMinFontSize
	}
	if o.FontStep <= 0 {
		o.FontStep = DefaultFontStep
	}
	if o.Background == nil {
		o.Background = color.White
	}
	return o
}
