package impl

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/overlingo-project/overlingo/grpc"
)

func (s *server) TranslateText(ctx context.Context, request *pb.TranslateTextRequest) (*pb.TranslateTextResponse, error) {
	if strings.TrimSpace(request.GetText()) == "" {
		return nil, status.Error(codes.InvalidArgument, "text is required")
	}

	translated, err := s.translator(request.GetTargetLanguage()).Translate(ctx, request.GetText())
	if err != nil {
		log.Error().Err(err).Str("language", request.GetTargetLanguage().String()).Msg("Failed to translate text")
		return nil, status.Error(codes.Internal, codes.Internal.String())
	}
	return &pb.TranslateTextResponse{TranslatedText: translated}, nil
}
