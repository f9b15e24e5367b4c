package impl

import (
	"bytes"
	"context"
	"errors"
	"image"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/overlingo-project/overlingo/grpc"
	"github.com/overlingo-project/overlingo/pkg/detection"
)

func (s *server) DetectText(ctx context.Context, request *pb.DetectTextRequest) (*pb.DetectTextResponse, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(request.GetImage())); err != nil {
		log.Warn().Err(err).Msg("Failed to decode image")
		return nil, status.Error(codes.InvalidArgument, codes.InvalidArgument.String())
	}

	detections, err := s.detector.Detect(ctx, request.GetImage())
	if err != nil {
		log.Error().Err(err).Msg("Failed to detect text")
		return nil, detectionStatus(err)
	}
	if s.options.Merge != nil {
		detections = detection.Postprocess(detections, *s.options.Merge)
	}
	if detections == nil {
		detections = []detection.Detection{}
	}
	return &pb.DetectTextResponse{Detections: detections}, nil
}

// A remote endpoint rejecting the image is the caller's fault.
func detectionStatus(err error) error {
	var serverError *detection.ServerError
	if errors.As(err, &serverError) && serverError.StatusCode >= 400 && serverError.StatusCode < 500 {
		return status.Error(codes.InvalidArgument, serverError.Message)
	}
	return status.Error(codes.Internal, codes.Internal.String())
}
