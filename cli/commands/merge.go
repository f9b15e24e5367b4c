package commands

import (
	"github.com/spf13/cobra"

	"github.com/overlingo-project/overlingo/pkg/detection"
)

func newMergeCommand() *cobra.Command {
	options := detection.DefaultMergeOptions()
	var inputPath string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge raw OCR line boxes into text blocks",
		Long: `Reads a JSON array of detections ({"bbox", "text", "score"}), merges vertically
adjacent boxes with aligned left edges until nothing changes, drops low scores
and prints the result.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var detections []detection.Detection
			if err := readJSON(cmd, inputPath, &detections); err != nil {
				return err
			}
			return writeJSON(cmd, detection.Postprocess(detections, options))
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", `detections JSON file, "-" for stdin`)
	cmd.Flags().Float64Var(&options.VerticalThreshold, "vertical-threshold", options.VerticalThreshold, "maximum vertical gap in pixels")
	cmd.Flags().Float64Var(&options.HorizontalThreshold, "horizontal-threshold", options.HorizontalThreshold, "maximum left edge distance in pixels")
	cmd.Flags().Float64Var(&options.ScoreThreshold, "score-threshold", options.ScoreThreshold, "detections scoring at or below this are dropped")
	return cmd
}
