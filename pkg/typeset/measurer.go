package typeset

import (
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var defaultFont = sync.OnceValues(func() (*truetype.Font, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Go regular font: %w", err)
	}
	return f, nil
})

// DefaultFont returns the embedded Go regular font. It only covers Latin scripts.
func DefaultFont() (*truetype.Font, error) {
	return defaultFont()
}

// FaceMeasurer measures text with a truetype font. Faces are cached per size.
// Not safe for concurrent use.
type FaceMeasurer struct {
	context *gg.Context
	font    *truetype.Font
	faces   map[float64]font.Face
}

func NewFaceMeasurer(f *truetype.Font) *FaceMeasurer {
	return &FaceMeasurer{
		context: gg.NewContext(1, 1),
		font:    f,
		faces:   map[float64]font.Face{},
	}
}

func (m *FaceMeasurer) Face(fontSize float64) font.Face {
	if face, ok := m.faces[fontSize]; ok {
		return face
	}
	face := truetype.NewFace(m.font, &truetype.Options{Size: fontSize})
	m.faces[fontSize] = face
	return face
}

func (m *FaceMeasurer) MeasureString(text string, fontSize float64) float64 {
	m.context.SetFontFace(m.Face(fontSize))
	width, _ := m.context.MeasureString(text)
	return width
}
