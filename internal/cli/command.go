package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/abbrevsearch/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "abbrevsearch [words...]",
		Short: "Abbreviation searcher for group names",
		Long: `abbrevsearch searches for abbreviations of a group name that are
real English words.

Upper-case letters mark the letters each word may contribute; a word
without any upper-case letter may contribute any of its letters. Every
abbreviation found in the dictionary is translated and printed together
with the group name spelling it.

Examples:
  abbrevsearch                                   # Search the default words
  abbrevsearch -w Software and SysTem security   # Search the given words
  abbrevsearch --words-file words.txt --lang de  # Read words from a file
  abbrevsearch --dry-run HeRe are THe            # Skip translation`,
		Args:         cobra.ArbitraryArgs,
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.abbrevsearch.yaml)")

	// Local flags
	cmd.Flags().StringSliceVarP(&flags.Words, "words", "w", nil, "Words to abbreviate, e.g. Software and SysTem security (remaining arguments are appended)")
	cmd.Flags().StringVar(&flags.WordsFile, "words-file", "", "Read words from file (one or more per line)")
	cmd.Flags().IntVar(&flags.Workers, "workers", 0, "Worker pool size (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Only list valid words, skip translation")
	cmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable progress bars")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List available OpenAI models for the current API key")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Dictionary flags
	cmd.Flags().StringVar(&flags.DictPath, "dict-path", "", "Local word list (default: $XDG_DATA_HOME/abbrevsearch/words)")
	cmd.Flags().StringVar(&flags.DictURL, "dict-url", "", "Word list download URL, zip or plain text (default: NLTK words corpus)")

	// Translation flags
	cmd.Flags().StringVar(&flags.TargetLang, "lang", flags.TargetLang, "Target language code for translations")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: openai or gemini")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Translation model (default: gpt-4o-mini or gemini-2.0-flash)")
	cmd.Flags().BoolVar(&flags.SkipFailed, "skip-failed", false, "Skip words whose translation fails instead of aborting; while the circuit breaker is open after repeated failures, words are skipped without calling the provider")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("search.words", cmd.Flags().Lookup("words"))
	viper.BindPFlag("search.words_file", cmd.Flags().Lookup("words-file"))
	viper.BindPFlag("search.workers", cmd.Flags().Lookup("workers"))
	viper.BindPFlag("output.no_progress", cmd.Flags().Lookup("no-progress"))
	viper.BindPFlag("dictionary.path", cmd.Flags().Lookup("dict-path"))
	viper.BindPFlag("dictionary.url", cmd.Flags().Lookup("dict-url"))
	viper.BindPFlag("translation.lang", cmd.Flags().Lookup("lang"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.skip_failed", cmd.Flags().Lookup("skip-failed"))
}

// ApplyConfig copies config file and environment values into flags.
// Flags given on the command line keep precedence.
func ApplyConfig(flags *Flags) {
	flags.Words = viper.GetStringSlice("search.words")
	flags.WordsFile = viper.GetString("search.words_file")
	flags.Workers = viper.GetInt("search.workers")
	flags.NoProgress = viper.GetBool("output.no_progress")
	flags.DictPath = viper.GetString("dictionary.path")
	flags.DictURL = viper.GetString("dictionary.url")
	flags.TargetLang = viper.GetString("translation.lang")
	flags.Provider = viper.GetString("translation.provider")
	flags.Model = viper.GetString("translation.model")
	flags.SkipFailed = viper.GetBool("translation.skip_failed")
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// Load a .env file if present; real environment variables win
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".abbrevsearch" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".abbrevsearch")
	}

	// Environment variables, e.g. ABBREVSEARCH_TRANSLATION_LANG
	viper.SetEnvPrefix("ABBREVSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if key := os.Getenv(env); key != "" {
			return key
		}
	}

	return viper.GetString("translation.gemini_key")
}
