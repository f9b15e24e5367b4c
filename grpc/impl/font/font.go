package font

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"

	pb "github.com/overlingo-project/overlingo/grpc"
)

type FontProvider interface {
	// Returns the font for the given language.
	GetFontByLanguage(language pb.Language) *truetype.Font
}

type fontProvider struct {
	fonts    map[pb.Language]*truetype.Font
	fallback *truetype.Font
}

// Note: We are renaming every font to the name of the font face and documenting the original font source below.
// Japanese Sanserif Font
// Ref: https://seed.line.me/index_jp.html

// Korean Sanserif Font
// Ref: https://fontesk.com/pretendard-typeface/

// English and Portuguese Sanserif Font
// Ref: https://fonts.google.com/noto/specimen/Noto+Sans
const fontFile = "SansSerif-Regular.ttf"

// New loads <basePath>/<Language>/SansSerif-Regular.ttf for every language.
// A missing file falls back to the embedded Go font, which covers Latin
// scripts only.
func New(basePath string) (FontProvider, error) {
	fallback, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse the Go font: %w", err)
	}

	fp := &fontProvider{
		fonts:    map[pb.Language]*truetype.Font{},
		fallback: fallback,
	}
	for _, language := range []pb.Language{
		pb.Language_LANGUAGE_EN_US,
		pb.Language_LANGUAGE_KO_KR,
		pb.Language_LANGUAGE_JA_JP,
		pb.Language_LANGUAGE_PT_BR,
	} {
		path := filepath.Join(basePath, languageDirectory(language), fontFile)
		f, err := parseFontFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("language", language.String()).Str("path", path).Msg("Font not found, using the Go font")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s font: %w", language, err)
		}
		fp.fonts[language] = f
	}
	return fp, nil
}

func (fp *fontProvider) GetFontByLanguage(language pb.Language) *truetype.Font {
	if f, ok := fp.fonts[language]; ok {
		return f
	}
	// Defaults to English for all other languages as it uses Latin alphabet which is widely recognized,
	// ensuring the service can still function properly even when an unsupported language code is provided.
	if f, ok := fp.fonts[pb.Language_LANGUAGE_EN_US]; ok && !isCJK(language) {
		return f
	}
	return fp.fallback
}

func isCJK(language pb.Language) bool {
	return language == pb.Language_LANGUAGE_KO_KR || language == pb.Language_LANGUAGE_JA_JP
}

func parseFontFile(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return truetype.Parse(fontBytes)
}

func languageDirectory(language pb.Language) string {
	switch language {
	case pb.Language_LANGUAGE_KO_KR:
		return "Korean"
	case pb.Language_LANGUAGE_JA_JP:
		return "Japanese"
	case pb.Language_LANGUAGE_PT_BR:
		return "Portuguese"
	default:
		return "English"
	}
}
