// Package vision detects text with Google Cloud Vision document text detection.
package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"math"
	"strings"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	gax "github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"

	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/utils"
)

// Client is an interface for the vision.ImageAnnotatorClient
// Ref: https://pkg.go.dev/cloud.google.com/go/vision/apiv1
// This interface is used for mocking the vision.ImageAnnotatorClient in unit tests.
type Client interface {
	DetectDocumentText(ctx context.Context, image *visionpb.Image, imageContext *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.TextAnnotation, error)
}

// The image is split wherever two consecutive paragraphs are further apart
// than this many pixels. Very tall images lose text when annotated whole.
const maxSegmentGap = 200

// Detector reports one detection per Vision paragraph.
type Detector struct {
	client Client
}

func New(client Client) *Detector {
	return &Detector{client: client}
}

func (d *Detector) Detect(ctx context.Context, byteImage []byte) ([]detection.Detection, error) {
	img, _, err := image.Decode(bytes.NewReader(byteImage))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	annotation, err := d.ocrResult(ctx, byteImage, img)
	if err != nil {
		return nil, err
	}
	return toDetections(annotation), nil
}

// Splits long images into segments and processes OCR individually
// to improve text detection accuracy, as performing OCR on very long images
// can sometimes miss text. Results are merged back into a single annotation.
func (d *Detector) ocrResult(ctx context.Context, byteImage []byte, img image.Image) (*visionpb.TextAnnotation, error) {
	textAnnotation, err := d.client.DetectDocumentText(ctx, &visionpb.Image{Content: byteImage}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to detect document text: %w", err)
	}

	points := splitPoints(textAnnotation, img.Bounds().Dy())

	// [0, imageHeight] means the entire image is processed in one go.
	if len(points) == 2 {
		return textAnnotation, nil
	}

	subImager, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	})
	if !ok {
		log.Warn().Msg("Image cannot be segmented, using the whole-image annotation")
		return textAnnotation, nil
	}

	type result struct {
		annotation *visionpb.TextAnnotation
		err        error
		index      int
	}

	resultChan := make(chan result, len(points)-1)
	for i := 0; i < len(points)-1; i++ {
		go func(i int, start int, end int) {
			subImg := subImager.SubImage(image.Rect(0, start, img.Bounds().Dx(), end))

			var buf bytes.Buffer
			if err := png.Encode(&buf, subImg); err != nil {
				resultChan <- result{nil, err, i}
				return
			}

			subTextAnnotations, err := d.client.DetectDocumentText(ctx, &visionpb.Image{Content: buf.Bytes()}, nil)
			if err != nil {
				resultChan <- result{nil, err, i}
				return
			}

			adjustVerticalPositions(subTextAnnotations, int32(start))
			resultChan <- result{subTextAnnotations, nil, i}
		}(i, points[i], points[i+1])
	}

	textAnnotations := make([]*visionpb.TextAnnotation, len(points)-1)
	var segmentErr error
	for i := 0; i < len(points)-1; i++ {
		result := <-resultChan
		if result.err != nil {
			segmentErr = fmt.Errorf("failed to process segment %d: %w", result.index, result.err)
			continue
		}
		textAnnotations[result.index] = result.annotation
	}
	if segmentErr != nil {
		return nil, segmentErr
	}

	return utils.Reduce(textAnnotations, func(merged *visionpb.TextAnnotation, textAnnotation *visionpb.TextAnnotation) *visionpb.TextAnnotation {
		merged.Pages = append(merged.Pages, textAnnotation.GetPages()...)
		return merged
	}, &visionpb.TextAnnotation{}), nil
}

func paragraphs(textAnnotation *visionpb.TextAnnotation) []*visionpb.Paragraph {
	blocks := utils.FlatMap(textAnnotation.GetPages(), func(page *visionpb.Page) []*visionpb.Block {
		return page.GetBlocks()
	})
	return utils.FlatMap(blocks, func(block *visionpb.Block) []*visionpb.Paragraph {
		return block.GetParagraphs()
	})
}

func splitPoints(textAnnotation *visionpb.TextAnnotation, imageHeight int) []int {
	currentHeight := 0
	points := utils.Reduce(paragraphs(textAnnotation), func(points []int, paragraph *visionpb.Paragraph) []int {
		bottom := utils.Reduce(paragraph.GetBoundingBox().GetVertices(), func(currentHeight int, vertex *visionpb.Vertex) int {
			return max(currentHeight, int(vertex.GetY()))
		}, 0)
		// Points stay strictly increasing so no segment is empty.
		if bottom-currentHeight > maxSegmentGap && currentHeight > points[len(points)-1] && currentHeight < imageHeight {
			points = append(points, currentHeight)
		}
		currentHeight = bottom
		return points
	}, []int{0})

	if points[len(points)-1] != imageHeight {
		points = append(points, imageHeight)
	}
	return points
}

func adjustVerticalPositions(textAnnotation *visionpb.TextAnnotation, offset int32) {
	shift := func(box *visionpb.BoundingPoly) {
		for _, vertex := range box.GetVertices() {
			vertex.Y += offset
		}
	}
	for _, block := range utils.FlatMap(textAnnotation.GetPages(), func(page *visionpb.Page) []*visionpb.Block {
		return page.GetBlocks()
	}) {
		shift(block.GetBoundingBox())
		for _, paragraph := range block.GetParagraphs() {
			shift(paragraph.GetBoundingBox())
			for _, word := range paragraph.GetWords() {
				shift(word.GetBoundingBox())
				for _, symbol := range word.GetSymbols() {
					shift(symbol.GetBoundingBox())
				}
			}
		}
	}
}

func toDetections(textAnnotation *visionpb.TextAnnotation) []detection.Detection {
	detections := []detection.Detection{}
	for _, paragraph := range paragraphs(textAnnotation) {
		vertices := paragraph.GetBoundingBox().GetVertices()
		if len(vertices) == 0 {
			continue
		}
		words := utils.Map(paragraph.GetWords(), func(word *visionpb.Word) string {
			return utils.Reduce(word.GetSymbols(), func(text string, symbol *visionpb.Symbol) string {
				return text + symbol.GetText()
			}, "")
		})

		left, top := math.MaxFloat64, math.MaxFloat64
		right, bottom := 0.0, 0.0
		for _, vertex := range vertices {
			left = min(left, float64(vertex.GetX()))
			top = min(top, float64(vertex.GetY()))
			right = max(right, float64(vertex.GetX()))
			bottom = max(bottom, float64(vertex.GetY()))
		}

		// Confidence is only populated for some features.
		score := float64(paragraph.GetConfidence())
		if score == 0 {
			score = 1
		}
		detections = append(detections, detection.Detection{
			BBox:  [2][2]float64{{left, top}, {right, bottom}},
			Text:  strings.Join(words, " "),
			Score: score,
		})
	}
	return detections
}
