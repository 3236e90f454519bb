package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no Gemini model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiTranslator translates words with a Google Gemini model
type GeminiTranslator struct {
	model  string
	client *genai.Client
}

// NewGeminiTranslator creates a translator backed by the Gemini API
func NewGeminiTranslator(ctx context.Context, apiKey, model string) (*GeminiTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrNoAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTranslator{model: model, client: client}, nil
}

// Name returns the provider name
func (g *GeminiTranslator) Name() string {
	return "gemini"
}

// Translate translates an English word to targetLang
func (g *GeminiTranslator) Translate(ctx context.Context, word, targetLang string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.3),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt(word, targetLang)), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return text, nil
}
