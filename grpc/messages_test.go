package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/overlingo-project/overlingo/pkg/typeset"
)

func TestTranslatedRegionConversion(t *testing.T) {
	region := typeset.TranslatedRegion{
		Region: typeset.Region{
			TopLeft:     typeset.Point{X: 10, Y: 5},
			BottomRight: typeset.Point{X: 90, Y: 35},
			SourceText:  "Hola",
		},
		TranslatedText: "Hello",
	}

	wire := NewTranslatedRegion(region, 24)
	assert.Equal(t, &TranslatedRegion{
		BBox:           [2][2]float64{{10, 5}, {90, 35}},
		Text:           "Hola",
		TranslatedText: "Hello",
		FontSize:       24,
	}, wire)
	assert.Equal(t, region, wire.Region())
}

func TestTranslatedRegionNil(t *testing.T) {
	var wire *TranslatedRegion
	assert.Equal(t, typeset.TranslatedRegion{}, wire.Region())
}
