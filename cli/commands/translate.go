package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"

	pb "github.com/overlingo-project/overlingo/grpc"
	yaGenai "github.com/overlingo-project/overlingo/grpc/impl/genai"
	implOpenai "github.com/overlingo-project/overlingo/grpc/impl/openai"
	"github.com/overlingo-project/overlingo/pkg/detection"
	yaOpenai "github.com/overlingo-project/overlingo/pkg/openai"
	"github.com/overlingo-project/overlingo/pkg/pipeline"
	"github.com/overlingo-project/overlingo/pkg/translation"
	"github.com/overlingo-project/overlingo/pkg/typeset"
)

const backoffDuration = time.Second / 2

type translateOptions struct {
	imagePath      string
	outputPath     string
	detectionURL   string
	retries        uint64
	translator     string
	model          string
	targetLanguage string
	fontPath       string
	background     string
	timeout        time.Duration
}

func newTranslateCommand() *cobra.Command {
	options := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Detect, translate and re-typeset the text of an image",
		Long: `Uploads the image to a text detection endpoint (POST /process_image), translates
every detected region one at a time and draws the translations back into their
boxes. A region whose translation fails keeps its source text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, options)
		},
	}

	cmd.Flags().StringVarP(&options.imagePath, "image", "i", "", `source image, "-" for stdin (required)`)
	cmd.Flags().StringVarP(&options.outputPath, "output", "o", "", "output PNG path (required)")
	cmd.Flags().StringVar(&options.detectionURL, "detection-url", "", "base URL of the text detection endpoint (default: $DETECTION_URL)")
	cmd.Flags().Uint64Var(&options.retries, "detection-retries", 0, "retries after a failed connection to the detection endpoint")
	cmd.Flags().StringVar(&options.translator, "translator", "openai", "translator backend (openai, gemini or none)")
	cmd.Flags().StringVar(&options.model, "model", "", "model name (default depends on the translator)")
	cmd.Flags().StringVarP(&options.targetLanguage, "target-language", "t", "EN_US", "target language (EN_US, KO_KR, JA_JP or PT_BR)")
	cmd.Flags().StringVar(&options.fontPath, "font", "", "TrueType font file (default: Go Regular)")
	cmd.Flags().StringVar(&options.background, "background", "#ffffff", "background color used to clear each region")
	cmd.Flags().DurationVar(&options.timeout, "timeout", 0, "limit on each translation call, 0 for none")
	cmd.MarkFlagRequired("image")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runTranslate(cmd *cobra.Command, options *translateOptions) error {
	if options.detectionURL == "" {
		options.detectionURL = os.Getenv("DETECTION_URL")
	}
	if options.detectionURL == "" {
		return fmt.Errorf("a detection endpoint is required (use --detection-url or DETECTION_URL)")
	}
	language, err := pb.ParseLanguage(options.targetLanguage)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	translator, closeTranslator, err := newTranslator(ctx, options.translator, options.model, language)
	if err != nil {
		return err
	}
	defer closeTranslator()

	data, err := readInput(cmd, options.imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	typesetOptions := typeset.DefaultOptions()
	if typesetOptions.Background, err = typeset.ParseHexColor(options.background); err != nil {
		return err
	}
	f, err := loadFont(options.fontPath)
	if err != nil {
		return err
	}

	detector := detection.NewClient(options.detectionURL, detection.WithRetries(options.retries, backoffDuration))
	result, err := pipeline.New(detector, translator, typeset.New(f, typesetOptions), nil, pipeline.Options{
		Translation: translation.RegionOptions{Timeout: options.timeout},
	}).Run(ctx, data)
	if err != nil {
		if message, ok := detection.ErrorMessage(err); ok {
			return fmt.Errorf("detection failed: %s", message)
		}
		return err
	}

	if err := writePNG(options.outputPath, result.Image); err != nil {
		return err
	}
	log.Info().Int("regions", len(result.Regions)).Str("output", options.outputPath).Msg("Translated image")

	regions := make([]*pb.TranslatedRegion, 0, len(result.Regions))
	for i, region := range result.Regions {
		regions = append(regions, pb.NewTranslatedRegion(region, result.Layouts[i].FontSize))
	}
	return writeJSON(cmd, regions)
}

func newTranslator(ctx context.Context, name string, model string, language pb.Language) (translation.Translator, func(), error) {
	switch name {
	case "none":
		return translation.Identity{}, func() {}, nil
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		if model == "" {
			model = openai.GPT3Dot5Turbo
		}
		client := implOpenai.New(yaOpenai.NewAdapter(openai.NewClient(key)), model, backoffDuration)
		return implOpenai.Translator(client, language), func() {}, nil
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY is not set")
		}
		if model == "" {
			model = string(yaGenai.GenaiModelFlash)
		}
		genaiClient, err := genai.NewClient(ctx, option.WithAPIKey(key))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		client := implOpenai.New(yaGenai.New(genaiClient), model, backoffDuration)
		return implOpenai.Translator(client, language), func() { genaiClient.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown translator %q", name)
	}
}
