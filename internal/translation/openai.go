package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranslator translates words with an OpenAI chat model
type OpenAITranslator struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAITranslator creates a new translator instance. An empty model
// selects gpt-4o-mini.
func NewOpenAITranslator(apiKey, model string) *OpenAITranslator {
	return NewOpenAITranslatorWithConfig(openai.DefaultConfig(apiKey), apiKey, model)
}

// NewOpenAITranslatorWithConfig creates a translator using a custom client
// configuration, e.g. a different base URL
func NewOpenAITranslatorWithConfig(config openai.ClientConfig, apiKey, model string) *OpenAITranslator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITranslator{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

// Name returns the provider name
func (t *OpenAITranslator) Name() string {
	return "openai"
}

// Translate translates an English word to targetLang
func (t *OpenAITranslator) Translate(ctx context.Context, word, targetLang string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("OpenAI: %w", ErrNoAPIKey)
	}

	req := openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt(word, targetLang),
			},
		},
		MaxTokens:   50,
		Temperature: 0.3,
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
