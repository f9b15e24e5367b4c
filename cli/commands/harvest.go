package commands

import (
	"github.com/spf13/cobra"

	"github.com/overlingo-project/overlingo/pkg/harvest"
)

type harvestOptions struct {
	concurrency int
}

func newHarvestCommand() *cobra.Command {
	options := &harvestOptions{}

	cmd := &cobra.Command{
		Use:   "harvest <page-url>",
		Short: "List the visible images of a web page",
		Long: `Fetches the page and prints its visible <img> sources in document order.
blob: sources are downloaded and printed as data URLs; sources that cannot be
resolved are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			harvester := harvest.New(harvest.NewHTTPFetcher(nil), harvest.WithConcurrency(options.concurrency))
			images, err := harvester.HarvestURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd, map[string][]string{"images": images})
		},
	}

	cmd.Flags().IntVar(&options.concurrency, "concurrency", 8, "maximum number of images resolved at once")
	return cmd
}
