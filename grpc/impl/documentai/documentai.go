// Package documentai detects text with a Document AI OCR processor.
package documentai

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/googleapis/gax-go/v2"

	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/utils"
)

// Client is an interface for the DocumentProcessorClient.
// Ref: https://pkg.go.dev/cloud.google.com/go/documentai
// This interface is used for mocking the documentai.DocumentProcessorClient in tests.
type Client interface {
	ProcessDocument(ctx context.Context, req *documentaipb.ProcessRequest, opts ...gax.CallOption) (*documentaipb.ProcessResponse, error)
}

type Spec struct {
	// E.g., special-tf-prod
	ProjectID string
	// E.g., us
	Location string
	// E.g., 98dae69a95e1906
	ProcessorID string
}

func (s Spec) Name() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", s.ProjectID, s.Location, s.ProcessorID)
}

// Detector reports one detection per Document AI paragraph.
type Detector struct {
	client Client
	spec   Spec
}

func New(client Client, spec Spec) *Detector {
	return &Detector{client: client, spec: spec}
}

func (d *Detector) Detect(ctx context.Context, byteImage []byte) ([]detection.Detection, error) {
	request := &documentaipb.ProcessRequest{
		Name: d.spec.Name(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  byteImage,
				MimeType: http.DetectContentType(byteImage),
			},
		},
	}
	response, err := d.client.ProcessDocument(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return toDetections(response.GetDocument()), nil
}

// Document structure:
// Document
//
//	└── Pages []Document_Page
//	     └── Paragraphs []Document_Page_Paragraph
//	          └── Layout
//	               ├── TextAnchor
//	               │    └── TextSegments []TextAnchor_TextSegment
//	               ├── BoundingPoly
//	               │    ├── Vertices []Vertex
//	               │    └── NormalizedVertices []NormalizedVertex
//	               └── Confidence
func toDetections(document *documentaipb.Document) []detection.Detection {
	text := []rune(document.GetText())
	return utils.FlatMap(document.GetPages(), func(page *documentaipb.Document_Page) []detection.Detection {
		width := float64(page.GetDimension().GetWidth())
		height := float64(page.GetDimension().GetHeight())

		detections := []detection.Detection{}
		for _, paragraph := range page.GetParagraphs() {
			layout := paragraph.GetLayout()
			points := vertices(layout.GetBoundingPoly(), width, height)
			if len(points) == 0 {
				continue
			}

			left, top := math.MaxFloat64, math.MaxFloat64
			right, bottom := 0.0, 0.0
			for _, point := range points {
				left = min(left, point[0])
				top = min(top, point[1])
				right = max(right, point[0])
				bottom = max(bottom, point[1])
			}

			detections = append(detections, detection.Detection{
				BBox:  [2][2]float64{{left, top}, {right, bottom}},
				Text:  anchoredText(text, layout.GetTextAnchor()),
				Score: float64(layout.GetConfidence()),
			})
		}
		return detections
	})
}

// Pixel vertices are used when present; otherwise normalized vertices are
// scaled by the page dimension.
func vertices(poly *documentaipb.BoundingPoly, width float64, height float64) [][2]float64 {
	if len(poly.GetVertices()) > 0 {
		return utils.Map(poly.GetVertices(), func(vertex *documentaipb.Vertex) [2]float64 {
			return [2]float64{float64(vertex.GetX()), float64(vertex.GetY())}
		})
	}
	return utils.Map(poly.GetNormalizedVertices(), func(vertex *documentaipb.NormalizedVertex) [2]float64 {
		return [2]float64{float64(vertex.GetX()) * width, float64(vertex.GetY()) * height}
	})
}

func anchoredText(text []rune, anchor *documentaipb.Document_TextAnchor) string {
	segments := utils.Map(anchor.GetTextSegments(), func(segment *documentaipb.Document_TextAnchor_TextSegment) string {
		start := min(int(segment.GetStartIndex()), len(text))
		end := min(int(segment.GetEndIndex()), len(text))
		return string(text[start:max(start, end)])
	})
	return strings.Join(strings.Fields(strings.Join(segments, "")), " ")
}
