package translation

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/overlingo-project/overlingo/pkg/typeset"
)

type RegionOptions struct {
	// Per-region limit on a translation call. Zero waits indefinitely.
	Timeout time.Duration
}

// TranslateRegions translates regions one at a time, in order. A failed
// translation falls back to the region's source text.
func TranslateRegions(ctx context.Context, translator Translator, regions []typeset.Region, options RegionOptions) []typeset.TranslatedRegion {
	translated := make([]typeset.TranslatedRegion, 0, len(regions))
	for i, region := range regions {
		translated = append(translated, typeset.TranslatedRegion{
			Region:         region,
			TranslatedText: translateRegion(ctx, translator, i, region, options),
		})
	}
	return translated
}

func translateRegion(ctx context.Context, translator Translator, index int, region typeset.Region, options RegionOptions) string {
	if strings.TrimSpace(region.SourceText) == "" {
		return ""
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	text, err := translator.Translate(ctx, region.SourceText)
	if err != nil {
		log.Warn().Err(err).Int("region", index).Str("text", region.SourceText).Msg("Failed to translate region, keeping source text")
		return region.SourceText
	}
	return text
}
