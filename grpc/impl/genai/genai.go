// Package genai serves chat completion requests with Gemini so it can stand in
// for the OpenAI client.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"

	"github.com/overlingo-project/overlingo/pkg/harvest"
	yaOpenai "github.com/overlingo-project/overlingo/pkg/openai"
)

var (
	ErrInvalidModel = errors.New("invalid model")
	ErrNoResponse   = errors.New("no response from model")
)

type client struct {
	genaiClient *genai.Client
}

func New(genaiClient *genai.Client) yaOpenai.Client {
	return &client{genaiClient: genaiClient}
}

type GenaiModel string

const (
	GenaiModelFlash GenaiModel = "gemini-1.5-flash"
	GenaiModelPro   GenaiModel = "gemini-1.5-pro"
)

// CreateChatCompletion accepts any request the OpenAI adapter does, so callers
// can swap the two. All messages but the last become chat history. Image parts
// must be data URLs; Gemini cannot fetch remote images.
func (c *client) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if err := validateModel(request.Model); err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	if len(request.Messages) == 0 {
		return openai.ChatCompletionResponse{}, errors.New("no messages in request")
	}

	genaiModel := c.genaiClient.GenerativeModel(request.Model)

	history, err := toHistory(request.Messages[:len(request.Messages)-1])
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	chatSession := genaiModel.StartChat()
	chatSession.History = history

	parts, err := toGenaiParts(request.Messages[len(request.Messages)-1])
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	resp, err := chatSession.SendMessage(ctx, parts...)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return openai.ChatCompletionResponse{}, ErrNoResponse
	}

	return openai.ChatCompletionResponse{
		Model: request.Model,
		Choices: []openai.ChatCompletionChoice{
			{
				Message: openai.ChatCompletionMessage{
					Role:    openai.ChatMessageRoleAssistant,
					Content: toText(resp.Candidates[0].Content.Parts),
				},
			},
		},
	}, nil
}

// System messages have no Gemini role and are sent as prefixed user turns.
func toHistory(messages []openai.ChatCompletionMessage) ([]*genai.Content, error) {
	history := []*genai.Content{}
	for _, message := range messages {
		if message.Role == openai.ChatMessageRoleSystem {
			history = append(history, &genai.Content{
				Parts: []genai.Part{genai.Text("System: " + message.Content)},
				Role:  "user",
			})
			continue
		}
		parts, err := toGenaiParts(message)
		if err != nil {
			return nil, err
		}
		history = append(history, &genai.Content{
			Parts: parts,
			Role:  toGenaiRole(message.Role),
		})
	}
	return history, nil
}

func toGenaiParts(message openai.ChatCompletionMessage) ([]genai.Part, error) {
	var parts []genai.Part
	if message.MultiContent != nil {
		for _, content := range message.MultiContent {
			if content.Type == openai.ChatMessagePartTypeImageURL && content.ImageURL != nil {
				data, mimeType, err := harvest.ParseDataURL(content.ImageURL.URL)
				if err != nil {
					return nil, fmt.Errorf("image part: %w", err)
				}
				parts = append(parts, genai.Blob{
					MIMEType: mimeType,
					Data:     data,
				})
				continue
			}
			parts = append(parts, genai.Text(content.Text))
		}
	} else if message.Content != "" {
		parts = append(parts, genai.Text(message.Content))
	}
	return parts, nil
}

func toGenaiRole(role string) string {
	switch role {
	case openai.ChatMessageRoleAssistant:
		return "model"
	default:
		return "user"
	}
}

func toText(parts []genai.Part) string {
	var text strings.Builder
	for _, part := range parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String()
}

func validateModel(model string) error {
	switch GenaiModel(model) {
	case GenaiModelFlash, GenaiModelPro:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidModel, model)
	}
}
