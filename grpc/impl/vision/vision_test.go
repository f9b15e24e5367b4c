package vision

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"sync"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	gax "github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/overlingo-project/overlingo/pkg/detection"
)

type fakeClient struct {
	mu sync.Mutex
	// Returned for the whole image, then for each segment by height.
	annotations map[int]*visionpb.TextAnnotation
	err         error
	heights     []int
}

func (f *fakeClient) DetectDocumentText(ctx context.Context, img *visionpb.Image, imageContext *visionpb.ImageContext, opts ...gax.CallOption) (*visionpb.TextAnnotation, error) {
	if f.err != nil {
		return nil, f.err
	}
	config, err := png.DecodeConfig(bytes.NewReader(img.GetContent()))
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.heights = append(f.heights, config.Height)
	return f.annotations[config.Height], nil
}

func box(left int32, top int32, right int32, bottom int32) *visionpb.BoundingPoly {
	return &visionpb.BoundingPoly{Vertices: []*visionpb.Vertex{
		{X: left, Y: top}, {X: right, Y: top}, {X: right, Y: bottom}, {X: left, Y: bottom},
	}}
}

func paragraph(bounds *visionpb.BoundingPoly, confidence float32, words ...string) *visionpb.Paragraph {
	p := &visionpb.Paragraph{BoundingBox: bounds, Confidence: confidence}
	for _, word := range words {
		w := &visionpb.Word{BoundingBox: box(0, 0, 1, 1)}
		for _, r := range word {
			w.Symbols = append(w.Symbols, &visionpb.Symbol{Text: string(r), BoundingBox: box(0, 0, 1, 1)})
		}
		p.Words = append(p.Words, w)
	}
	return p
}

func annotation(paragraphs ...*visionpb.Paragraph) *visionpb.TextAnnotation {
	return &visionpb.TextAnnotation{Pages: []*visionpb.Page{{Blocks: []*visionpb.Block{{
		BoundingBox: box(0, 0, 1, 1),
		Paragraphs:  paragraphs,
	}}}}}
}

func pngOfHeight(t *testing.T, height int) []byte {
	t.Helper()
	buffer := new(bytes.Buffer)
	require.NoError(t, png.Encode(buffer, image.NewRGBA(image.Rect(0, 0, 100, height))))
	return buffer.Bytes()
}

func TestDetectSingleSegment(t *testing.T) {
	client := &fakeClient{annotations: map[int]*visionpb.TextAnnotation{
		100: annotation(
			paragraph(box(10, 10, 90, 30), 0.9, "Hola", "mundo"),
			paragraph(box(10, 40, 90, 60), 0, "Adiós"),
		),
	}}

	detections, err := New(client).Detect(context.Background(), pngOfHeight(t, 100))

	require.NoError(t, err)
	assert.Equal(t, []int{100}, client.heights)
	require.Len(t, detections, 2)
	assert.Equal(t, detection.Detection{
		BBox:  [2][2]float64{{10, 10}, {90, 30}},
		Text:  "Hola mundo",
		Score: float64(float32(0.9)),
	}, detections[0])
	assert.Equal(t, "Adiós", detections[1].Text)
	assert.Equal(t, 1.0, detections[1].Score)
}

func TestDetectSplitsTallImages(t *testing.T) {
	client := &fakeClient{annotations: map[int]*visionpb.TextAnnotation{
		600: annotation(
			paragraph(box(0, 10, 50, 50), 1, "top"),
			paragraph(box(0, 380, 50, 400), 1, "bottom"),
		),
		50:  annotation(paragraph(box(0, 10, 50, 40), 1, "top")),
		550: annotation(paragraph(box(0, 330, 50, 350), 1, "bottom")),
	}}

	detections, err := New(client).Detect(context.Background(), pngOfHeight(t, 600))

	require.NoError(t, err)
	assert.ElementsMatch(t, []int{600, 50, 550}, client.heights)
	require.Len(t, detections, 2)
	assert.Equal(t, "top", detections[0].Text)
	assert.Equal(t, [2][2]float64{{0, 10}, {50, 40}}, detections[0].BBox)
	assert.Equal(t, "bottom", detections[1].Text)
	assert.Equal(t, [2][2]float64{{0, 380}, {50, 400}}, detections[1].BBox)
}

func TestDetectSplitsImagesWithLowFirstParagraph(t *testing.T) {
	client := &fakeClient{annotations: map[int]*visionpb.TextAnnotation{
		600: annotation(
			paragraph(box(0, 250, 50, 280), 1, "first"),
			paragraph(box(0, 550, 50, 580), 1, "second"),
		),
		280: annotation(paragraph(box(0, 250, 50, 280), 1, "first")),
		320: annotation(paragraph(box(0, 270, 50, 300), 1, "second")),
	}}

	detections, err := New(client).Detect(context.Background(), pngOfHeight(t, 600))

	require.NoError(t, err)
	assert.ElementsMatch(t, []int{600, 280, 320}, client.heights)
	require.Len(t, detections, 2)
	assert.Equal(t, [2][2]float64{{0, 250}, {50, 280}}, detections[0].BBox)
	assert.Equal(t, "second", detections[1].Text)
	assert.Equal(t, [2][2]float64{{0, 550}, {50, 580}}, detections[1].BBox)
}

func TestDetectErrors(t *testing.T) {
	_, err := New(&fakeClient{}).Detect(context.Background(), []byte("not an image"))
	assert.ErrorContains(t, err, "failed to decode image")

	_, err = New(&fakeClient{err: errors.New("quota exceeded")}).Detect(context.Background(), pngOfHeight(t, 10))
	assert.ErrorContains(t, err, "quota exceeded")
}

func TestSplitPoints(t *testing.T) {
	tests := []struct {
		name       string
		annotation *visionpb.TextAnnotation
		height     int
		want       []int
	}{
		{
			name:       "no text",
			annotation: &visionpb.TextAnnotation{},
			height:     300,
			want:       []int{0, 300},
		},
		{
			name:       "dense text",
			annotation: annotation(paragraph(box(0, 0, 10, 150), 1), paragraph(box(0, 160, 10, 300), 1)),
			height:     300,
			want:       []int{0, 300},
		},
		{
			name:       "large gap",
			annotation: annotation(paragraph(box(0, 0, 10, 100), 1), paragraph(box(0, 500, 10, 520), 1)),
			height:     600,
			want:       []int{0, 100, 600},
		},
		{
			name:       "first paragraph far from the top",
			annotation: annotation(paragraph(box(0, 250, 10, 280), 1), paragraph(box(0, 550, 10, 580), 1)),
			height:     600,
			want:       []int{0, 280, 600},
		},
		{
			name:       "single low paragraph",
			annotation: annotation(paragraph(box(0, 450, 10, 480), 1)),
			height:     500,
			want:       []int{0, 500},
		},
		{
			name:       "box beyond the image",
			annotation: annotation(paragraph(box(0, 0, 10, 100), 1), paragraph(box(0, 700, 10, 720), 1), paragraph(box(0, 990, 10, 1000), 1)),
			height:     600,
			want:       []int{0, 100, 600},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitPoints(tt.annotation, tt.height))
		})
	}
}
