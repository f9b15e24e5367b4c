// Package tesseract detects text locally with Tesseract. It needs no network
// access and serves as the offline detector.
package tesseract

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/overlingo-project/overlingo/pkg/detection"
)

type Config struct {
	// Tesseract language codes. E.g., ["eng", "por"]
	Languages []string
	// Directory holding the traineddata files. Empty uses the system default.
	TessdataPrefix string
}

type Detector struct {
	config Config
}

func New(config Config) *Detector {
	return &Detector{config: config}
}

// Detect reports one detection per text line. The gosseract client is not
// safe for concurrent use, so each call creates its own.
func (d *Detector) Detect(ctx context.Context, image []byte) ([]detection.Detection, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if len(d.config.Languages) > 0 {
		if err := client.SetLanguage(d.config.Languages...); err != nil {
			return nil, fmt.Errorf("failed to set languages: %w", err)
		}
	}
	if d.config.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(d.config.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("tesseract OCR failed: %w", err)
	}
	return toDetections(boxes), nil
}

// Tesseract reports confidence in percent.
func toDetections(boxes []gosseract.BoundingBox) []detection.Detection {
	detections := []detection.Detection{}
	for _, box := range boxes {
		text := strings.Join(strings.Fields(box.Word), " ")
		if text == "" || box.Box.Empty() {
			continue
		}
		detections = append(detections, detection.Detection{
			BBox: [2][2]float64{
				{float64(box.Box.Min.X), float64(box.Box.Min.Y)},
				{float64(box.Box.Max.X), float64(box.Box.Max.Y)},
			},
			Text:  text,
			Score: min(max(box.Confidence/100, 0), 1),
		})
	}
	return detections
}
