package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"codeberg.org/snonux/abbrevsearch/internal/abbrev"
	"codeberg.org/snonux/abbrevsearch/internal/batch"
	"codeberg.org/snonux/abbrevsearch/internal/cli"
	"codeberg.org/snonux/abbrevsearch/internal/dictionary"
	"codeberg.org/snonux/abbrevsearch/internal/translation"
)

// breakerMaxFailures is how many consecutive provider failures open the
// circuit breaker
const breakerMaxFailures = 3

// breakerOpenTimeout is how long the open breaker fails calls fast before a
// single trial call reaches the provider again
const breakerOpenTimeout = 5 * time.Second

// CorpusLoader provides the dictionary corpus
type CorpusLoader interface {
	Load(ctx context.Context) (*dictionary.Corpus, error)
}

// Processor handles the main search logic
type Processor struct {
	flags      *cli.Flags
	corpus     CorpusLoader
	translator translation.Translator
	out        io.Writer
	errOut     io.Writer
	logger     *zap.Logger
}

// Option configures a Processor
type Option func(*Processor)

// WithCorpusLoader replaces the on-disk dictionary store
func WithCorpusLoader(loader CorpusLoader) Option {
	return func(p *Processor) {
		p.corpus = loader
	}
}

// WithTranslator replaces the provider selected by the flags
func WithTranslator(tr translation.Translator) Option {
	return func(p *Processor) {
		p.translator = tr
	}
}

// WithOutput sets where results and progress are written
func WithOutput(out, errOut io.Writer) Option {
	return func(p *Processor) {
		p.out = out
		p.errOut = errOut
	}
}

// WithLogger sets the processor logger
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Summary counts what a run produced
type Summary struct {
	Candidates int
	Valid      int
	Translated int
}

// NewProcessor creates a new search processor
func NewProcessor(flags *cli.Flags, opts ...Option) *Processor {
	p := &Processor{
		flags:  flags,
		out:    os.Stdout,
		errOut: os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.corpus == nil {
		p.corpus = dictionary.NewStore(flags.DictPath, flags.DictURL, dictionary.WithLogger(p.logger))
	}
	return p
}

// Words returns the input words: the words file if given, otherwise the
// words flag, otherwise the default list
func (p *Processor) Words() ([]string, error) {
	if p.flags.WordsFile != "" {
		return batch.ReadWordsFile(p.flags.WordsFile)
	}
	if words := batch.SplitAll(p.flags.Words); len(words) > 0 {
		return words, nil
	}
	return abbrev.DefaultWords(), nil
}

// Run searches for valid abbreviations and prints them
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	words, err := p.Words()
	if err != nil {
		return nil, err
	}

	sets := abbrev.BuildLetterSets(words)
	for i, set := range sets {
		p.logger.Debug("letter set", zap.String("word", words[i]), zap.Stringer("letters", set))
	}

	if _, err := abbrev.Count(sets); err != nil {
		return nil, fmt.Errorf("%d input words: %w", len(words), err)
	}
	candidates := abbrev.Combinations(sets)
	summary := &Summary{Candidates: len(candidates)}

	fmt.Fprintln(p.errOut, "[Searching valid combinations...]")
	corpus, err := p.corpus.Load(ctx)
	if err != nil {
		return nil, err
	}

	valid, err := dictionary.Filter(ctx, corpus, candidates, dictionary.FilterOptions{
		Workers:  p.flags.Workers,
		Progress: p.progressWriter(),
		Logger:   p.logger,
	})
	if err != nil {
		return nil, err
	}
	summary.Valid = len(valid)

	if p.flags.DryRun {
		for _, word := range valid {
			fmt.Fprintf(p.out, "%s %s\n", word, abbrev.FormatGroupName(words, word))
		}
		p.printSummary(summary)
		return summary, nil
	}

	tr, err := p.translatorFor(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(p.errOut, "[Translating...]")
	results, err := translation.TranslateAll(ctx, tr, valid, p.flags.TargetLang, translation.Options{
		Workers:    p.flags.Workers,
		SkipFailed: p.flags.SkipFailed,
		Progress:   p.progressWriter(),
		Logger:     p.logger,
	})
	if err != nil {
		return nil, err
	}
	summary.Translated = len(results)

	for _, r := range results {
		fmt.Fprintf(p.out, "%s %s %s\n", r.Word, r.Text, abbrev.FormatGroupName(words, r.Word))
	}

	p.printSummary(summary)
	return summary, nil
}

// translatorFor returns the configured provider behind a circuit breaker
func (p *Processor) translatorFor(ctx context.Context) (translation.Translator, error) {
	if p.translator != nil {
		return p.translator, nil
	}

	var tr translation.Translator
	switch p.flags.Provider {
	case "", "openai":
		key := cli.GetOpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("OpenAI: %w (set OPENAI_API_KEY or use --dry-run)", translation.ErrNoAPIKey)
		}
		tr = translation.NewOpenAITranslator(key, p.flags.Model)
	case "gemini":
		gemini, err := translation.NewGeminiTranslator(ctx, cli.GetGeminiKey(), p.flags.Model)
		if err != nil {
			return nil, err
		}
		tr = gemini
	default:
		return nil, fmt.Errorf("unknown translation provider: %s", p.flags.Provider)
	}

	p.logger.Debug("translation provider ready",
		zap.String("provider", tr.Name()),
		zap.String("lang", p.flags.TargetLang))
	p.translator = translation.NewBreakerTranslator(tr, breakerMaxFailures, breakerOpenTimeout, p.logger)
	return p.translator, nil
}

func (p *Processor) progressWriter() io.Writer {
	if p.flags.NoProgress {
		return nil
	}
	return p.errOut
}

func (p *Processor) printSummary(s *Summary) {
	fmt.Fprintf(p.errOut, "Candidates: %d, valid words: %d", s.Candidates, s.Valid)
	if !p.flags.DryRun {
		fmt.Fprintf(p.errOut, ", translated: %d", s.Translated)
		if skipped := s.Valid - s.Translated; skipped > 0 {
			fmt.Fprintf(p.errOut, ", skipped: %d", skipped)
		}
	}
	fmt.Fprintln(p.errOut)
}
