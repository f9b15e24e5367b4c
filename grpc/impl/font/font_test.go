package font

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/freetype/truetype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"

	pb "github.com/overlingo-project/overlingo/grpc"
)

func TestNewFallsBackToGoFont(t *testing.T) {
	provider, err := New(t.TempDir())
	require.NoError(t, err)

	regular := provider.GetFontByLanguage(pb.Language_LANGUAGE_EN_US)
	require.NotNil(t, regular)
	assert.Equal(t, "Go Regular", regular.Name(truetype.NameIDFontFullName))
	assert.Same(t, regular, provider.GetFontByLanguage(pb.Language_LANGUAGE_KO_KR))
}

func TestNewLoadsLanguageFonts(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "English"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "English", fontFile), gobold.TTF, 0o644))

	provider, err := New(base)
	require.NoError(t, err)

	english := provider.GetFontByLanguage(pb.Language_LANGUAGE_EN_US)
	assert.Equal(t, "Go Bold", english.Name(truetype.NameIDFontFullName))
	// Latin languages without their own font share the English one.
	assert.Same(t, english, provider.GetFontByLanguage(pb.Language_LANGUAGE_PT_BR))
	assert.Same(t, english, provider.GetFontByLanguage(pb.Language_LANGUAGE_UNSPECIFIED))
	// CJK languages never get a Latin-only English font.
	assert.Equal(t, "Go Regular", provider.GetFontByLanguage(pb.Language_LANGUAGE_JA_JP).Name(truetype.NameIDFontFullName))
}

func TestNewRejectsCorruptFont(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "Korean"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "Korean", fontFile), []byte("not a font"), 0o644))

	_, err := New(base)

	assert.ErrorContains(t, err, "failed to load LANGUAGE_KO_KR font")
}
