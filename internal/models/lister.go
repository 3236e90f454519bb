package models

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
	out    io.Writer
}

// NewLister creates a new model lister
func NewLister(apiKey string) *Lister {
	return NewListerWithConfig(openai.DefaultConfig(apiKey), apiKey, os.Stdout)
}

// NewListerWithConfig creates a model lister with a custom client
// configuration that writes to out
func NewListerWithConfig(config openai.ClientConfig, apiKey string, out io.Writer) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
		out:    out,
	}
}

// ListAvailableModels lists the chat models usable for translation
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .abbrevsearch.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		if isChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)

	fmt.Fprintln(l.out, "Chat/Translation Models:")
	if len(chatModels) == 0 {
		fmt.Fprintln(l.out, "  No chat models found")
		return nil
	}
	for _, model := range chatModels {
		marker := ""
		if model == openai.GPT4oMini {
			marker = " (default)"
		}
		fmt.Fprintf(l.out, "  %s%s\n", model, marker)
	}

	return nil
}

// isChatModel reports whether id names a text chat model
func isChatModel(id string) bool {
	for _, skip := range []string{"tts", "audio", "realtime", "transcribe", "search", "image", "embedding"} {
		if strings.Contains(id, skip) {
			return false
		}
	}
	return strings.HasPrefix(id, "gpt-") || strings.HasPrefix(id, "chatgpt-") ||
		strings.HasPrefix(id, "o1") || strings.HasPrefix(id, "o3") || strings.HasPrefix(id, "o4")
}
