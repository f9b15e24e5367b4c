// Package translation defines the single-text Translator collaborator, the
// parsing of model output shaped as {"translation": "..."} and the sequential
// translation of detected regions.
package translation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedTranslation = errors.New("malformed translation")

// Translator maps one source text to its translation.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Func adapts a function to a Translator.
type Func func(ctx context.Context, text string) (string, error)

func (f Func) Translate(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Identity returns the source text unchanged. Used when no model is configured.
type Identity struct{}

func (Identity) Translate(ctx context.Context, text string) (string, error) {
	return text, nil
}

// Prompt asks a model for exactly one translation in the JSON shape ParseTranslation reads.
func Prompt(targetLanguage string, text string) string {
	return fmt.Sprintf(
		"Translate to %s, only one answer, json format with attribute 'translation' containing the %s translated sentence, no explanation needed: %s",
		targetLanguage, strings.ToLower(targetLanguage), text,
	)
}

// ParseTranslation reads {"translation": "..."} from model output, optionally
// wrapped in a fenced code block.
func ParseTranslation(raw string) (string, error) {
	var response struct {
		Translation *string `json:"translation"`
	}
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedTranslation, err)
	}
	if response.Translation == nil {
		return "", fmt.Errorf("%w: missing translation attribute", ErrMalformedTranslation)
	}
	return *response.Translation, nil
}

// StripCodeFence removes a surrounding ``` block and its language tag.
// E.g., "```json\n{...}\n```" -> "{...}"
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if newline := strings.IndexByte(text, '\n'); newline != -1 {
		text = text[newline+1:]
	} else {
		// Single-line fence. E.g., "```json {...}```"
		text = strings.TrimLeft(text, "abcdefghijklmnopqrstuvwxyz")
	}
	if end := strings.LastIndex(text, "```"); end != -1 {
		text = text[:end]
	}
	return strings.TrimSpace(text)
}
