package openai

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	pb "github.com/overlingo-project/overlingo/grpc"
	yaOpenai "github.com/overlingo-project/overlingo/pkg/openai"
	"github.com/overlingo-project/overlingo/pkg/translation"
)

// Client translates one text at a time through a chat completion model.
type Client interface {
	Translate(ctx context.Context, text string, targetLanguage TargetLanguage) (string, error)
}

type client struct {
	chat  yaOpenai.Client
	model string
	// Used to delay the next request when the model fails or answers in the wrong shape.
	backoffDuration time.Duration
	maxRetries      uint64
}

// New accepts any chat completion client, e.g. the OpenAI adapter or the Gemini adapter.
func New(chat yaOpenai.Client, model string, backoffDuration time.Duration) Client {
	return &client{
		chat:            chat,
		model:           model,
		backoffDuration: backoffDuration,
		maxRetries:      4,
	}
}

// TargetLanguage is the language name placed in the prompt.
type TargetLanguage string

const (
	TargetLanguageEN_US TargetLanguage = "English"
	TargetLanguageKO_KR TargetLanguage = "Korean"
	TargetLanguageJA_JP TargetLanguage = "Japanese"
	TargetLanguagePT_BR TargetLanguage = "Portuguese"
)

func ToTargetLanguage(targetLanguage pb.Language) TargetLanguage {
	switch targetLanguage {
	case pb.Language_LANGUAGE_KO_KR:
		return TargetLanguageKO_KR
	case pb.Language_LANGUAGE_JA_JP:
		return TargetLanguageJA_JP
	case pb.Language_LANGUAGE_PT_BR:
		return TargetLanguagePT_BR
	default:
		return TargetLanguageEN_US
	}
}

func (c *client) Translate(ctx context.Context, text string, targetLanguage TargetLanguage) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: translation.Prompt(string(targetLanguage), text),
			},
		},
		Temperature: 0.3,
	}

	return backoff.RetryWithData(func() (string, error) {
		response, err := c.chat.CreateChatCompletion(ctx, request)
		if err != nil {
			log.Warn().Err(err).Str("model", c.model).Msg("Chat completion failed")
			return "", err
		}
		content, err := yaOpenai.GetCompletionContent(response)
		if err != nil {
			return "", err
		}
		translated, err := translation.ParseTranslation(content)
		if err != nil {
			log.Warn().Err(err).Str("content", content).Msg("Unexpected translation shape")
			return "", err
		}
		return translated, nil
	}, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.backoffDuration), c.maxRetries),
		ctx,
	))
}

// Translator binds the client to one target language.
func Translator(c Client, targetLanguage pb.Language) translation.Translator {
	language := ToTargetLanguage(targetLanguage)
	return translation.Func(func(ctx context.Context, text string) (string, error) {
		return c.Translate(ctx, text, language)
	})
}
