// Package pipeline runs detection, translation and re-typesetting over one
// encoded image.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/translation"
	"github.com/overlingo-project/overlingo/pkg/typeset"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Eraser removes the text pixels of the given regions, e.g. by inpainting.
// The returned image must not alias img.
type Eraser interface {
	Erase(ctx context.Context, img image.Image, regions []typeset.Region) (image.Image, error)
}

type Options struct {
	Translation translation.RegionOptions
	// Applied to the detector output when set. Detectors that already merge
	// (the HTTP endpoint) leave it nil.
	Merge *detection.MergeOptions
}

type Result struct {
	Image      image.Image
	Detections []detection.Detection
	Regions    []typeset.TranslatedRegion
	Layouts    []typeset.Layout
}

type Pipeline struct {
	detector     detection.Detector
	translator   translation.Translator
	retypesetter *typeset.Retypesetter
	// Optional. When set, the retypesetter should be built with typeset.EraseNone.
	eraser  Eraser
	options Options
}

func New(detector detection.Detector, translator translation.Translator, retypesetter *typeset.Retypesetter, eraser Eraser, options Options) *Pipeline {
	return &Pipeline{
		detector:     detector,
		translator:   translator,
		retypesetter: retypesetter,
		eraser:       eraser,
		options:      options,
	}
}

// Run returns the re-typeset image. A detection failure is returned before
// anything is drawn.
func (p *Pipeline) Run(ctx context.Context, encoded []byte) (*Result, error) {
	start := time.Now()
	img, format, err := image.Decode(bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	detections, err := p.detector.Detect(ctx, encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to detect text: %w", err)
	}
	if p.options.Merge != nil {
		detections = detection.Postprocess(detections, *p.options.Merge)
	}
	regions := detection.Regions(detections)

	var (
		background = img
		translated []typeset.TranslatedRegion
	)
	group, groupCtx := errgroup.WithContext(ctx)
	if p.eraser != nil {
		group.Go(func() error {
			erased, err := p.eraser.Erase(groupCtx, img, regions)
			if err != nil {
				return fmt.Errorf("failed to erase text: %w", err)
			}
			background = erased
			return nil
		})
	}
	group.Go(func() error {
		translated = translation.TranslateRegions(groupCtx, p.translator, regions, p.options.Translation)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	output, layouts := p.retypesetter.RetypesetImage(background, translated)
	log.Info().
		Str("format", format).
		Int("detections", len(detections)).
		Int("regions", len(regions)).
		Dur("elapsed", time.Since(start)).
		Msg("Image re-typeset")

	return &Result{
		Image:      output,
		Detections: detections,
		Regions:    translated,
		Layouts:    layouts,
	}, nil
}
