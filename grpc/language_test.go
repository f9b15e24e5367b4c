package grpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		input   string
		want    Language
		wantErr bool
	}{
		{input: "LANGUAGE_KO_KR", want: Language_LANGUAGE_KO_KR},
		{input: "ja_jp", want: Language_LANGUAGE_JA_JP},
		{input: "pt-BR", want: Language_LANGUAGE_PT_BR},
		{input: " EN_US ", want: Language_LANGUAGE_EN_US},
		{input: "klingon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLanguage(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLanguageString(t *testing.T) {
	assert.Equal(t, "LANGUAGE_KO_KR", Language_LANGUAGE_KO_KR.String())
	assert.Equal(t, "LANGUAGE_42", Language(42).String())
}

func TestRequestJSONUsesLanguageNames(t *testing.T) {
	data, err := Codec{}.Marshal(&TranslateTextRequest{Text: "hola", TargetLanguage: Language_LANGUAGE_EN_US})
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"hola","targetLanguage":"LANGUAGE_EN_US"}`, string(data))

	var request TranslateTextRequest
	require.NoError(t, Codec{}.Unmarshal([]byte(`{"text":"hi","targetLanguage":"ko-KR"}`), &request))
	assert.Equal(t, Language_LANGUAGE_KO_KR, request.GetTargetLanguage())

	assert.Error(t, json.Unmarshal([]byte(`{"targetLanguage":"xx"}`), &request))
}

func TestGettersAreNilSafe(t *testing.T) {
	var request *RetypesetImageRequest
	assert.Nil(t, request.GetImage())
	assert.False(t, request.GetInpaint())
	assert.Equal(t, Language_LANGUAGE_UNSPECIFIED, request.GetTargetLanguage())

	var response *RetypesetImageResponse
	assert.Empty(t, response.GetUriImage())
}
