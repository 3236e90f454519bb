package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// resetViper restores the global viper instance when the test ends
func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "abbrevsearch [words...]" {
		t.Errorf("Expected Use to be 'abbrevsearch [words...]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Abbreviation searcher") {
		t.Errorf("Expected Short description to contain 'Abbreviation searcher'")
	}

	// Test that flags are set up
	flagNames := []string{
		"config", "words", "words-file", "workers", "dry-run", "no-progress",
		"list-models", "verbose", "dict-path", "dict-url", "lang", "provider",
		"model", "skip-failed",
	}

	for _, name := range flagNames {
		t.Run("flag_"+name, func(t *testing.T) {
			var flag *pflag.Flag
			if name == "config" {
				flag = cmd.PersistentFlags().Lookup(name)
			} else {
				flag = cmd.Flags().Lookup(name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", name)
			}
		})
	}

	if usage := cmd.Flags().Lookup("skip-failed").Usage; !strings.Contains(usage, "circuit breaker is open") {
		t.Errorf("Expected --skip-failed help to explain breaker skips, got %q", usage)
	}

	if cmd.Flags().ShorthandLookup("w") == nil {
		t.Error("Expected -w shorthand for --words")
	}
}

func TestParseWordsFlag(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	var gotArgs []string
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		gotArgs = args
		return nil
	}
	cmd.SetArgs([]string{"-w", "Software", "and", "SysTem", "security"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !reflect.DeepEqual(flags.Words, []string{"Software"}) {
		t.Errorf("Words = %q, want [Software]", flags.Words)
	}
	if !reflect.DeepEqual(gotArgs, []string{"and", "SysTem", "security"}) {
		t.Errorf("args = %q, want [and SysTem security]", gotArgs)
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	langFlag := cmd.Flags().Lookup("lang")
	if langFlag == nil {
		t.Fatal("lang flag not found")
	}
	if langFlag.DefValue != "zh-CN" {
		t.Errorf("Expected default lang to be zh-CN, got %s", langFlag.DefValue)
	}

	providerFlag := cmd.Flags().Lookup("provider")
	if providerFlag == nil {
		t.Fatal("provider flag not found")
	}
	if providerFlag.DefValue != "openai" {
		t.Errorf("Expected default provider to be openai, got %s", providerFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantLang  string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `translation:
  lang: de
  openai_key: test-key
dictionary:
  path: /test/words`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			wantLang: "de",
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				t.Setenv("HOME", t.TempDir())
				return ""
			},
			wantLang: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Chdir(t.TempDir())

			InitConfig(tt.setupFunc(t))

			if got := viper.GetString("translation.lang"); got != tt.wantLang {
				t.Errorf("translation.lang = %q, want %q", got, tt.wantLang)
			}

			// Test environment variable prefix and key replacement
			t.Setenv("ABBREVSEARCH_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
			t.Setenv("ABBREVSEARCH_SEARCH_WORKERS", "3")
			if viper.GetInt("search.workers") != 3 {
				t.Error("Nested key not loaded from environment")
			}
		})
	}
}

func TestInitConfig_DotEnv(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ABBREVSEARCH_TRANSLATION_PROVIDER=gemini\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("ABBREVSEARCH_TRANSLATION_PROVIDER") })

	InitConfig("")

	if got := viper.GetString("translation.provider"); got != "gemini" {
		t.Errorf("translation.provider = %q, want gemini", got)
	}
}

func TestApplyConfig(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	viper.Set("translation.lang", "fr")
	viper.Set("dictionary.url", "http://example.com/words.zip")
	cmd.Flags().Set("provider", "gemini")
	cmd.Flags().Set("workers", "5")
	cmd.Flags().Set("words", "HeRe,are")

	ApplyConfig(flags)

	if flags.TargetLang != "fr" {
		t.Errorf("TargetLang = %s, want fr", flags.TargetLang)
	}
	if flags.DictURL != "http://example.com/words.zip" {
		t.Errorf("DictURL = %s, want http://example.com/words.zip", flags.DictURL)
	}
	if flags.Provider != "gemini" {
		t.Errorf("Provider = %s, want gemini", flags.Provider)
	}
	if flags.Workers != 5 {
		t.Errorf("Workers = %d, want 5", flags.Workers)
	}
	if !reflect.DeepEqual(flags.Words, []string{"HeRe", "are"}) {
		t.Errorf("Words = %q, want [HeRe are]", flags.Words)
	}
}

func TestGetOpenAIKey(t *testing.T) {
	tests := []struct {
		name      string
		envKey    string
		configKey string
		expected  string
	}{
		{"from environment", "env-test-key", "config-test-key", "env-test-key"},
		{"from config when no env", "", "config-test-key", "config-test-key"},
		{"empty when neither set", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("OPENAI_API_KEY", tt.envKey)

			if tt.configKey != "" {
				viper.Set("translation.openai_key", tt.configKey)
			}

			if got := GetOpenAIKey(); got != tt.expected {
				t.Errorf("GetOpenAIKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetGeminiKey(t *testing.T) {
	tests := []struct {
		name      string
		gemini    string
		google    string
		configKey string
		expected  string
	}{
		{"gemini env wins", "gemini-key", "google-key", "config-key", "gemini-key"},
		{"google env fallback", "", "google-key", "config-key", "google-key"},
		{"from config", "", "", "config-key", "config-key"},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			t.Setenv("GEMINI_API_KEY", tt.gemini)
			t.Setenv("GOOGLE_API_KEY", tt.google)

			if tt.configKey != "" {
				viper.Set("translation.gemini_key", tt.configKey)
			}

			if got := GetGeminiKey(); got != tt.expected {
				t.Errorf("GetGeminiKey() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	quiet, err := NewLogger(false)
	if err != nil {
		t.Fatalf("NewLogger(false) failed: %v", err)
	}
	if quiet.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug level should be disabled without verbose")
	}

	verbose, err := NewLogger(true)
	if err != nil {
		t.Fatalf("NewLogger(true) failed: %v", err)
	}
	if !verbose.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug level should be enabled with verbose")
	}
}
