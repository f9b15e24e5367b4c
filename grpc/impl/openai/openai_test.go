package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/overlingo-project/overlingo/grpc"
	"github.com/overlingo-project/overlingo/pkg/translation"
)

type fakeChat struct {
	answers  []string
	errs     []error
	requests []openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	i := len(f.requests)
	f.requests = append(f.requests, request)
	if i < len(f.errs) && f.errs[i] != nil {
		return openai.ChatCompletionResponse{}, f.errs[i]
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.answers[i]}}},
	}, nil
}

func TestTranslateParsesFencedJSON(t *testing.T) {
	chat := &fakeChat{answers: []string{"```json\n{\"translation\": \"안녕하세요\"}\n```"}}

	got, err := New(chat, openai.GPT3Dot5Turbo, 0).Translate(context.Background(), "Hello", TargetLanguageKO_KR)

	require.NoError(t, err)
	assert.Equal(t, "안녕하세요", got)
	require.Len(t, chat.requests, 1)
	assert.Equal(t, openai.GPT3Dot5Turbo, chat.requests[0].Model)
	assert.Equal(t, translation.Prompt("Korean", "Hello"), chat.requests[0].Messages[0].Content)
}

func TestTranslateRetriesMalformedAnswers(t *testing.T) {
	chat := &fakeChat{
		answers: []string{"", "I think it means hello", `{"translation": "Olá"}`},
		errs:    []error{errors.New("rate limited")},
	}

	got, err := New(chat, "gpt-4o", 0).Translate(context.Background(), "Hello", TargetLanguagePT_BR)

	require.NoError(t, err)
	assert.Equal(t, "Olá", got)
	assert.Len(t, chat.requests, 3)
}

func TestTranslateGivesUpAfterMaxRetries(t *testing.T) {
	chat := &fakeChat{answers: []string{"no", "no", "no", "no", "no", "no"}}

	_, err := New(chat, "gpt-4o", 0).Translate(context.Background(), "Hello", TargetLanguageEN_US)

	assert.ErrorIs(t, err, translation.ErrMalformedTranslation)
	assert.Len(t, chat.requests, 5)
}

func TestTranslatorBindsLanguage(t *testing.T) {
	chat := &fakeChat{answers: []string{`{"translation": "こんにちは"}`}}

	got, err := Translator(New(chat, "gpt-4o", 0), pb.Language_LANGUAGE_JA_JP).Translate(context.Background(), "Hello")

	require.NoError(t, err)
	assert.Equal(t, "こんにちは", got)
	assert.Contains(t, chat.requests[0].Messages[0].Content, "Translate to Japanese")
}

func TestToTargetLanguageDefaultsToEnglish(t *testing.T) {
	assert.Equal(t, TargetLanguageEN_US, ToTargetLanguage(pb.Language_LANGUAGE_UNSPECIFIED))
	assert.Equal(t, TargetLanguageKO_KR, ToTargetLanguage(pb.Language_LANGUAGE_KO_KR))
}
