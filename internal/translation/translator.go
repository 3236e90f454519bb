package translation

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoAPIKey is returned when a provider is used without credentials
var ErrNoAPIKey = errors.New("translation API key not found")

// DefaultTargetLang is the language code translations are requested in
const DefaultTargetLang = "zh-CN"

// Translator translates a single word into a target language
type Translator interface {
	// Translate returns the translation of word into targetLang
	Translate(ctx context.Context, word, targetLang string) (string, error)

	// Name returns the provider name
	Name() string
}

// Result pairs a word with its translation
type Result struct {
	Word string
	Text string
}

// languageNames maps common language codes to names the models understand
var languageNames = map[string]string{
	"zh-CN": "Simplified Chinese",
	"zh-TW": "Traditional Chinese",
	"ja":    "Japanese",
	"ko":    "Korean",
	"de":    "German",
	"fr":    "French",
	"es":    "Spanish",
	"it":    "Italian",
	"pt":    "Portuguese",
	"ru":    "Russian",
	"bg":    "Bulgarian",
}

// LanguageName returns a readable name for a language code, or the code
// itself when it is not known
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}

func prompt(word, targetLang string) string {
	return fmt.Sprintf("Translate the English word '%s' to %s. Respond with only the translation, nothing else.",
		word, LanguageName(targetLang))
}
