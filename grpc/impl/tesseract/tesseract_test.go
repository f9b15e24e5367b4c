package tesseract

import (
	"image"
	"testing"

	"github.com/otiai10/gosseract/v2"
	"github.com/stretchr/testify/assert"

	"github.com/overlingo-project/overlingo/pkg/detection"
)

func TestToDetections(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(10, 20, 110, 40), Word: "Hello   world\n", Confidence: 91.5},
		{Box: image.Rect(0, 0, 10, 10), Word: "  \n", Confidence: 50},
		{Box: image.Rect(5, 5, 5, 30), Word: "empty box", Confidence: 80},
		{Box: image.Rect(0, 50, 40, 70), Word: "odd", Confidence: 140},
	}

	assert.Equal(t, []detection.Detection{
		{BBox: [2][2]float64{{10, 20}, {110, 40}}, Text: "Hello world", Score: 0.915},
		{BBox: [2][2]float64{{0, 50}, {40, 70}}, Text: "odd", Score: 1},
	}, toDetections(boxes))
}

func TestToDetectionsEmpty(t *testing.T) {
	assert.Equal(t, []detection.Detection{}, toDetections(nil))
}
