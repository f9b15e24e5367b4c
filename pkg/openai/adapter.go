package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

// Client is the chat completion surface shared by the OpenAI adapter and the
// Gemini adapter in grpc/impl/genai.
type Client interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type adapter struct {
	client *openai.Client
}

func NewAdapter(client *openai.Client) Client {
	return &adapter{client: client}
}

func (a *adapter) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return a.client.CreateChatCompletion(ctx, request)
}

var ErrNoChoices = errors.New("no choices in response")

// GetCompletionContent returns the content of the first choice.
func GetCompletionContent(response openai.ChatCompletionResponse) (string, error) {
	if len(response.Choices) == 0 {
		return "", ErrNoChoices
	}
	return response.Choices[0].Message.Content, nil
}
