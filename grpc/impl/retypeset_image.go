package impl

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/overlingo-project/overlingo/grpc"
	"github.com/overlingo-project/overlingo/grpc/impl/storage"
	"github.com/overlingo-project/overlingo/pkg/harvest"
	"github.com/overlingo-project/overlingo/pkg/pipeline"
	"github.com/overlingo-project/overlingo/pkg/typeset"
)

func (s *server) RetypesetImage(ctx context.Context, request *pb.RetypesetImageRequest) (*pb.RetypesetImageResponse, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(request.GetImage())); err != nil {
		log.Warn().Err(err).Msg("Failed to decode image")
		return nil, status.Error(codes.InvalidArgument, codes.InvalidArgument.String())
	}

	options := s.options.Typeset
	if hex := request.GetBackgroundColor(); hex != "" {
		background, err := typeset.ParseHexColor(hex)
		if err != nil {
			log.Warn().Err(err).Str("color", hex).Msg("Invalid background color")
			return nil, status.Error(codes.InvalidArgument, "invalid background color")
		}
		options.Background = background
	}

	var eraser pipeline.Eraser
	if request.GetInpaint() {
		if s.eraser == nil {
			return nil, status.Error(codes.FailedPrecondition, "inpainting is not configured")
		}
		eraser = s.eraser
		options.Erase = typeset.EraseNone
	}

	language := request.GetTargetLanguage()
	beforeObject, afterObject := storage.ObjectNames(time.Now(), language)
	s.saveImage(ctx, beforeObject, request.GetImage())

	retypesetter := typeset.New(s.fontProvider.GetFontByLanguage(language), options)
	result, err := pipeline.New(s.detector, s.translator(language), retypesetter, eraser, pipeline.Options{
		Translation: s.options.Translation,
		Merge:       s.options.Merge,
	}).Run(ctx, request.GetImage())
	if err != nil {
		log.Error().Err(err).Str("language", language.String()).Msg("Failed to re-typeset image")
		return nil, detectionStatus(err)
	}

	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, result.Image); err != nil {
		log.Error().Err(err).Msg("Failed to encode image")
		return nil, status.Error(codes.Internal, codes.Internal.String())
	}
	s.saveImage(ctx, afterObject, buffer.Bytes())

	regions := make([]*pb.TranslatedRegion, 0, len(result.Regions))
	for i, region := range result.Regions {
		regions = append(regions, pb.NewTranslatedRegion(region, result.Layouts[i].FontSize))
	}
	return &pb.RetypesetImageResponse{
		UriImage: harvest.DataURL(buffer.Bytes(), "image/png"),
		Regions:  regions,
	}, nil
}
