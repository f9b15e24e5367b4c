// Package detection holds the wire types of the text detection endpoint, the
// box merging applied to raw OCR output, and the HTTP client and handler for
// POST /process_image.
package detection

import (
	"context"

	"github.com/overlingo-project/overlingo/pkg/typeset"
)

// Detection is one detected text box. BBox is [[x1, y1], [x2, y2]] with the
// top-left corner first.
type Detection struct {
	BBox  [2][2]float64 `json:"bbox"`
	Text  string        `json:"text"`
	Score float64       `json:"score"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// Detector finds text boxes in an encoded image.
type Detector interface {
	Detect(ctx context.Context, image []byte) ([]Detection, error)
}

func (d Detection) Region() typeset.Region {
	return typeset.Region{
		TopLeft:     typeset.Point{X: d.BBox[0][0], Y: d.BBox[0][1]},
		BottomRight: typeset.Point{X: d.BBox[1][0], Y: d.BBox[1][1]},
		SourceText:  d.Text,
	}
}

// Regions converts detections to regions, dropping empty or inverted boxes.
func Regions(detections []Detection) []typeset.Region {
	regions := make([]typeset.Region, 0, len(detections))
	for _, detection := range detections {
		region := detection.Region()
		if !region.Valid() {
			continue
		}
		regions = append(regions, region)
	}
	return regions
}

func (d Detection) left() float64   { return d.BBox[0][0] }
func (d Detection) top() float64    { return d.BBox[0][1] }
func (d Detection) right() float64  { return d.BBox[1][0] }
func (d Detection) bottom() float64 { return d.BBox[1][1] }
