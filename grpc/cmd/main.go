package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	documentaiapi "cloud.google.com/go/documentai/apiv1"
	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	gcs "cloud.google.com/go/storage"
	visionapi "cloud.google.com/go/vision/apiv1"
	firebase "firebase.google.com/go"
	"github.com/google/generative-ai-go/genai"
	"github.com/improbable-eng/grpc-web/go/grpcweb"
	"github.com/ridge/must/v2"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
	"google.golang.org/grpc"

	pb "github.com/overlingo-project/overlingo/grpc"
	overlingoAuth "github.com/overlingo-project/overlingo/grpc/auth"
	"github.com/overlingo-project/overlingo/grpc/impl"
	"github.com/overlingo-project/overlingo/grpc/impl/documentai"
	"github.com/overlingo-project/overlingo/grpc/impl/font"
	yaGenai "github.com/overlingo-project/overlingo/grpc/impl/genai"
	"github.com/overlingo-project/overlingo/grpc/impl/lama"
	implOpenai "github.com/overlingo-project/overlingo/grpc/impl/openai"
	"github.com/overlingo-project/overlingo/grpc/impl/storage"
	"github.com/overlingo-project/overlingo/grpc/impl/tesseract"
	"github.com/overlingo-project/overlingo/grpc/impl/vision"
	"github.com/overlingo-project/overlingo/pkg/detection"
	"github.com/overlingo-project/overlingo/pkg/env"
	"github.com/overlingo-project/overlingo/pkg/harvest"
	"github.com/overlingo-project/overlingo/pkg/logging"
	yaOpenai "github.com/overlingo-project/overlingo/pkg/openai"
	"github.com/overlingo-project/overlingo/pkg/pipeline"
	"github.com/overlingo-project/overlingo/pkg/relay"
	"github.com/overlingo-project/overlingo/pkg/translation"
	"github.com/overlingo-project/overlingo/pkg/typeset"
)

const backoffDuration = time.Second / 2

func main() {
	env.Load()
	logging.Setup(logging.Config{
		Level:   env.StringVariable("LOG_LEVEL", "info"),
		Format:  env.StringVariable("LOG_FORMAT", "json"),
		Service: "overlingo",
	})

	ctx := context.Background()

	// Each language directory holds SansSerif-Regular.ttf. Missing ones fall back to the Go font.
	fontProvider := must.OK1(font.New(env.StringVariable("FONT_DIR", "grpc/cmd/fonts")))

	detector, merge, closeDetector := newDetector(ctx)
	defer closeDetector()

	var secretmanagerClient *secretmanager.Client
	defer func() {
		if secretmanagerClient != nil {
			secretmanagerClient.Close()
		}
	}()
	secret := func(envName, secretEnvName string) string {
		// Direct keys are for local development.
		if key := os.Getenv(envName); key != "" {
			return key
		}
		if secretmanagerClient == nil {
			secretmanagerClient = must.OK1(secretmanager.NewClient(ctx))
		}
		return secretFromGCP(secretmanagerClient, ctx, env.RequiredStringVariable(secretEnvName))
	}

	var translationClient implOpenai.Client
	switch translator := env.StringVariable("TRANSLATOR", "openai"); translator {
	case "openai":
		chat := yaOpenai.NewAdapter(openai.NewClient(secret("OPENAI_API_KEY", "OPENAI_KEY_SECRET_NAME")))
		translationClient = implOpenai.New(chat, env.StringVariable("OPENAI_MODEL", openai.GPT3Dot5Turbo), backoffDuration)
	case "gemini":
		genaiClient := must.OK1(genai.NewClient(ctx, option.WithAPIKey(secret("GEMINI_API_KEY", "GEMINI_API_KEY_SECRET_NAME"))))
		defer genaiClient.Close()
		translationClient = implOpenai.New(yaGenai.New(genaiClient), env.StringVariable("GEMINI_MODEL", string(yaGenai.GenaiModelFlash)), backoffDuration)
	case "none":
		log.Warn().Msg("No translator configured; source text is drawn back")
	default:
		log.Fatal().Str("translator", translator).Msg("Unknown translator")
	}

	// Saving before/after images is optional.
	imageStorage := impl.Storage{ToImageBucket: os.Getenv("GCP_TO_IMAGE_STORAGE")}
	if imageStorage.ToImageBucket != "" {
		gcsClient := must.OK1(gcs.NewClient(ctx))
		defer gcsClient.Close()
		imageStorage.Client = storage.New(gcsClient)
	}

	var eraser pipeline.Eraser
	if lamaURL := os.Getenv("LAMA_URL"); lamaURL != "" {
		eraser = lama.New(lamaURL, os.Getenv("LAMA_API_KEY"), backoffDuration)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: env.RequiredStringVariable("GCP_PROJECT_ID")})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize firebase app")
	}
	firebaseClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get firebase auth client")
	}
	authClient := overlingoAuth.New(firebaseClient, splitList(os.Getenv("AUTH_EMAIL_DOMAINS")))

	// Image size limit for Vision & OpenAI API is 20MB.
	// Ref: https://cloud.google.com/vision/quotas#limits
	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.UnaryInterceptor(overlingoAuth.UnaryInterceptor(authClient, pb.Overlingo_SignIn_FullMethodName)),
		grpc.MaxRecvMsgSize(20*1024*1024),
	)

	pb.RegisterOverlingoServer(grpcServer,
		impl.New(
			authClient,
			detector,
			translationClient,
			eraser,
			imageStorage,
			fontProvider,
			impl.Options{
				Merge: merge,
				Translation: translation.RegionOptions{
					Timeout: env.DurationVariable("TRANSLATION_TIMEOUT", 0),
				},
				Typeset: typeset.DefaultOptions(),
			},
		))

	relayHandler := relay.NewHandler(
		relay.New(newRelayStore()),
		// Pages named by clients are fetched only from public addresses.
		harvest.New(
			harvest.NewHTTPFetcher(harvest.NewPublicHTTPClient(30*time.Second)),
			harvest.WithConcurrency(env.IntVariable("HARVEST_CONCURRENCY", 8)),
		),
	)

	var detectionHandler http.Handler
	if merge != nil {
		detectionHandler = detection.NewHandler(detector, *merge)
	}

	allowedOrigins := splitList(env.StringVariable("ALLOWED_ORIGINS", env.RequiredStringVariable("OVERLINGO_UI_URL")))

	go runGrpcServer(grpcServer, env.RequiredIntVariable("GRPC_PORT"))
	runWebServer(env.RequiredIntVariable("WEB_PORT"), RouterConfig{
		GrpcWeb:        newGrpcWebServer(grpcServer, allowedOrigins),
		Detection:      detectionHandler,
		Relay:          relayHandler,
		Authenticate:   overlingoAuth.Middleware(authClient),
		StaticFileDir:  os.Getenv("OVERLINGO_STATIC_FILE_DIR"),
		AllowedOrigins: allowedOrigins,
		RequestTimeout: env.DurationVariable("REQUEST_TIMEOUT", 2*time.Minute),
	})
}

// newDetector returns the configured detector and the merge options applied
// to its raw output. Merge is nil for the remote endpoint, which merges itself.
func newDetector(ctx context.Context) (detection.Detector, *detection.MergeOptions, func()) {
	merge := detection.DefaultMergeOptions()
	merge.VerticalThreshold = env.FloatVariable("MERGE_VERTICAL_THRESHOLD", merge.VerticalThreshold)
	merge.HorizontalThreshold = env.FloatVariable("MERGE_HORIZONTAL_THRESHOLD", merge.HorizontalThreshold)
	merge.ScoreThreshold = env.FloatVariable("SCORE_THRESHOLD", merge.ScoreThreshold)

	switch name := env.StringVariable("DETECTOR", "vision"); name {
	case "vision":
		visionClient := must.OK1(visionapi.NewImageAnnotatorClient(ctx))
		return vision.New(visionClient), &merge, func() { visionClient.Close() }
	case "documentai":
		documentaiClient := must.OK1(documentaiapi.NewDocumentProcessorClient(ctx,
			option.WithEndpoint(env.RequiredStringVariable("DOCUMENTAI_ENDPOINT"))))
		spec := documentai.Spec{
			ProjectID:   env.RequiredStringVariable("GCP_PROJECT_ID"),
			Location:    env.RequiredStringVariable("DOCUMENTAI_LOCATION"),
			ProcessorID: env.RequiredStringVariable("DOCUMENTAI_PROCESSOR_ID"),
		}
		return documentai.New(documentaiClient, spec), &merge, func() { documentaiClient.Close() }
	case "tesseract":
		config := tesseract.Config{
			Languages:      splitList(env.StringVariable("TESSERACT_LANGUAGES", "eng")),
			TessdataPrefix: os.Getenv("TESSDATA_PREFIX"),
		}
		return tesseract.New(config), &merge, func() {}
	case "http":
		client := detection.NewClient(env.RequiredStringVariable("DETECTION_URL"),
			detection.WithRetries(uint64(env.IntVariable("DETECTION_RETRIES", 0)), backoffDuration))
		return client, nil, func() {}
	default:
		log.Fatal().Str("detector", name).Msg("Unknown detector")
		return nil, nil, nil
	}
}

func newRelayStore() relay.Store {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return relay.NewMemoryStore()
	}
	return must.OK1(relay.NewRedisStore(relay.RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       env.IntVariable("REDIS_DB", 0),
	}))
}

func newGrpcWebServer(grpcServer *grpc.Server, allowedOrigins []string) *grpcweb.WrappedGrpcServer {
	return grpcweb.WrapServer(grpcServer,
		grpcweb.WithOriginFunc(func(origin string) bool {
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		}),
	)
}

func runGrpcServer(grpcServer *grpc.Server, port int) {
	log.Info().Int("port", port).Msg("Overlingo gRPC server listening")
	must.OK(grpcServer.Serve(must.OK1(net.Listen("tcp", fmt.Sprintf(":%d", port)))))
}

func runWebServer(port int, cfg RouterConfig) {
	log.Info().Int("port", port).Msg("Overlingo web server listening")
	must.OK(http.ListenAndServe(fmt.Sprintf(":%d", port), NewRouter(cfg)))
}

func secretFromGCP(secretmanagerClient *secretmanager.Client, ctx context.Context, secretName string) string {
	secretValue := must.OK1(secretmanagerClient.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest",
			env.RequiredStringVariable("GCP_PROJECT_ID"),
			secretName,
		),
	}))
	return string(secretValue.Payload.Data)
}

// splitList splits a comma-separated variable, dropping blanks.
func splitList(value string) []string {
	items := []string{}
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
