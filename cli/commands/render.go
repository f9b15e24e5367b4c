package commands

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/webp"

	pb "github.com/overlingo-project/overlingo/grpc"
	"github.com/overlingo-project/overlingo/pkg/typeset"
)

type renderOptions struct {
	imagePath   string
	regionsPath string
	outputPath  string
	fontPath    string
	background  string
	inpainted   bool
}

func newRenderCommand() *cobra.Command {
	options := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw translated regions onto an image",
		Long: `Reads a JSON array of regions ({"bbox": [[x1,y1],[x2,y2]], "text", "translatedText"}),
clears each box and draws its translated text fitted into the box. The regions
are printed back with the font size each one was drawn at.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, options)
		},
	}

	cmd.Flags().StringVarP(&options.imagePath, "image", "i", "", "source image (required)")
	cmd.Flags().StringVarP(&options.regionsPath, "regions", "r", "-", `regions JSON file, "-" for stdin`)
	cmd.Flags().StringVarP(&options.outputPath, "output", "o", "", "output PNG path (required)")
	cmd.Flags().StringVar(&options.fontPath, "font", "", "TrueType font file (default: Go Regular)")
	cmd.Flags().StringVar(&options.background, "background", "#ffffff", "background color used to clear each region")
	cmd.Flags().BoolVar(&options.inpainted, "inpainted", false, "the text is already erased; do not clear the regions")
	cmd.MarkFlagRequired("image")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runRender(cmd *cobra.Command, options *renderOptions) error {
	data, err := readInput(cmd, options.imagePath)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	var wireRegions []*pb.TranslatedRegion
	if err := readJSON(cmd, options.regionsPath, &wireRegions); err != nil {
		return err
	}
	regions := make([]typeset.TranslatedRegion, 0, len(wireRegions))
	for _, region := range wireRegions {
		regions = append(regions, region.Region())
	}

	typesetOptions := typeset.DefaultOptions()
	background, err := typeset.ParseHexColor(options.background)
	if err != nil {
		return err
	}
	typesetOptions.Background = background
	if options.inpainted {
		typesetOptions.Erase = typeset.EraseNone
	}

	f, err := loadFont(options.fontPath)
	if err != nil {
		return err
	}

	result, layouts := typeset.New(f, typesetOptions).RetypesetImage(img, regions)
	if err := writePNG(options.outputPath, result); err != nil {
		return err
	}
	log.Info().Int("regions", len(regions)).Str("output", options.outputPath).Msg("Rendered image")

	rendered := make([]*pb.TranslatedRegion, 0, len(regions))
	for i, region := range regions {
		rendered = append(rendered, pb.NewTranslatedRegion(region, layouts[i].FontSize))
	}
	return writeJSON(cmd, rendered)
}
