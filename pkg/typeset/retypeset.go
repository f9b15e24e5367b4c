package typeset

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
)

type Retypesetter struct {
	font    *truetype.Font
	options Options
}

func New(f *truetype.Font, options Options) *Retypesetter {
	return &Retypesetter{
		font:    f,
		options: options.withDefaults(),
	}
}

// Retypeset clears every region of the surface and draws its translated text.
// Regions are processed in order, so later regions paint over earlier ones.
func (r *Retypesetter) Retypeset(surface *gg.Context, regions []TranslatedRegion) []Layout {
	measurer := NewFaceMeasurer(r.font)
	layouts := make([]Layout, 0, len(regions))
	for _, region := range regions {
		layouts = append(layouts, r.retypesetRegion(surface, measurer, region))
	}
	return layouts
}

// RetypesetImage draws onto a copy of img and leaves img untouched.
func (r *Retypesetter) RetypesetImage(img image.Image, regions []TranslatedRegion) (image.Image, []Layout) {
	surface := gg.NewContextForImage(img)
	layouts := r.Retypeset(surface, regions)
	return surface.Image(), layouts
}

func (r *Retypesetter) retypesetRegion(surface *gg.Context, measurer *FaceMeasurer, region TranslatedRegion) Layout {
	left, top := region.TopLeft.X, region.TopLeft.Y
	width, height := region.Width(), region.Height()

	background := r.options.Background
	if region.Background != nil {
		background = region.Background
	}
	if r.options.Erase == EraseFill {
		surface.SetColor(opaque(background))
		surface.DrawRectangle(left, top, width, height)
		surface.Fill()
	}

	layout := Fit(region.TranslatedText, width, height, measurer, r.options)
	if len(layout.Lines) == 0 {
		return layout
	}

	foreground := r.options.Foreground
	if foreground == nil {
		foreground = ContrastingColor(background)
	}
	surface.SetFontFace(measurer.Face(layout.FontSize))
	surface.SetColor(foreground)

	centerOfWidth := left + width/2
	blockTop := top + (height-layout.Height())/2
	for i, line := range layout.Lines {
		middleOfLine := blockTop + float64(i)*layout.FontSize + layout.FontSize/2
		surface.DrawStringAnchored(
			line,
			centerOfWidth, /* =x */
			middleOfLine,  /* =y */
			0.5,           /* =ax (center in x) */
			0.5,           /* =ay (center in y) */
		)
	}
	return layout
}

func opaque(c color.Color) color.Color {
	rgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	rgba.A = 0xff
	return rgba
}
