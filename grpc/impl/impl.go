package impl

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/overlingo-project/overlingo/grpc"
	auth "github.com/overlingo-project/overlingo/grpc/auth"
	"github.com/overlingo-project/overlingo/grpc/impl/font"
	implOpenai "github.com/overlingo-project/overlingo/grpc/impl/openai"
	"github.com/overlingo-project/overlingo/grpc/impl/storage"
	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/pipeline"
	"github.com/overlingo-project/overlingo/pkg/translation"
	"github.com/overlingo-project/overlingo/pkg/typeset"
)

type server struct {
	pb.UnimplementedOverlingoServer

	authClient auth.Auth

	// Finds text boxes: Cloud Vision, Document AI, Tesseract or a remote /process_image endpoint.
	detector detection.Detector

	// Translates one region at a time. When nil the source text is kept.
	translationClient implOpenai.Client

	// LaMa is an AI model that detects and removes objects from images.
	// Ref: https://github.com/advimman/lama
	// Optional; requests asking for inpainting fail without it.
	eraser pipeline.Eraser

	// Storage is a collection of Google Cloud Storage related configurations.
	storage Storage

	// Used for drawing texts on images.
	fontProvider font.FontProvider

	options Options
}

type Storage struct {
	// A client for Google Cloud Storage. Nil disables saving.
	Client storage.Client

	// The bucket name for storing the images before and after re-typesetting.
	ToImageBucket string
}

type Options struct {
	// Applied to the detector output. Nil when the detector already merges, e.g. the HTTP endpoint.
	Merge *detection.MergeOptions

	Translation translation.RegionOptions

	Typeset typeset.Options
}

func New(
	authClient auth.Auth,
	detector detection.Detector,
	translationClient implOpenai.Client,
	eraser pipeline.Eraser,
	storage Storage,
	fontProvider font.FontProvider,
	options Options,
) *server {
	return &server{
		authClient:        authClient,
		detector:          detector,
		translationClient: translationClient,
		eraser:            eraser,
		storage:           storage,
		fontProvider:      fontProvider,
		options:           options,
	}
}

func (s *server) SignIn(ctx context.Context, req *pb.SignInRequest) (*pb.SignInResponse, error) {
	token := req.GetGoogleOpenIdToken()
	if token == "" {
		return nil, status.Error(codes.InvalidArgument, "Google OpenID token is required")
	}

	token, err := s.authClient.Verify(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to verify the Google OpenID token")
		return nil, status.Error(codes.PermissionDenied, "failed to verify the Google OpenID token")
	}

	return &pb.SignInResponse{Token: token}, nil
}

func (s *server) translator(language pb.Language) translation.Translator {
	if s.translationClient == nil {
		return translation.Identity{}
	}
	return implOpenai.Translator(s.translationClient, language)
}

// Saving is best effort; failures are only logged.
func (s *server) saveImage(ctx context.Context, objectName string, data []byte) {
	if s.storage.Client == nil || s.storage.ToImageBucket == "" {
		return
	}
	start := time.Now()
	if err := s.storage.Client.SaveBytes(ctx, s.storage.ToImageBucket, objectName, data); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("Failed to save image")
		return
	}
	log.Debug().Str("object", objectName).Dur("elapsed", time.Since(start)).Msg("Image saved")
}
