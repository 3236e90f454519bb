package translation

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"codeberg.org/snonux/abbrevsearch/internal/progress"
	"codeberg.org/snonux/abbrevsearch/internal/workpool"
)

// Options configures TranslateAll
type Options struct {
	Workers    int         // Pool size, 0 means one per CPU
	SkipFailed bool        // Drop failed words instead of aborting
	Progress   io.Writer   // Progress bar destination, nil disables it
	Logger     *zap.Logger // Optional
}

// TranslateAll translates every word with one call per word. Results come
// back in the order the calls finished, not in input order.
//
// By default the first failure cancels the outstanding calls and is
// returned. With SkipFailed the failing word is logged and left out.
func TranslateAll(ctx context.Context, tr Translator, words []string, targetLang string, opts Options) ([]Result, error) {
	if len(words) == 0 {
		return nil, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bar := progress.New(len(words), "translating", opts.Progress)
	results, err := workpool.Collect(ctx, words, opts.Workers, func(ctx context.Context, word string) (Result, error) {
		text, err := tr.Translate(ctx, word, targetLang)
		_ = bar.Add(1)
		if err != nil {
			if opts.SkipFailed && ctx.Err() == nil {
				logger.Warn("translation failed, skipping word",
					zap.String("word", word),
					zap.String("provider", tr.Name()),
					zap.Error(err))
				return Result{}, workpool.ErrSkip
			}
			return Result{}, fmt.Errorf("failed to translate %q: %w", word, err)
		}
		return Result{Word: word, Text: text}, nil
	})
	if err != nil {
		return nil, err
	}
	_ = bar.Finish()

	logger.Debug("translations finished",
		zap.Int("requested", len(words)),
		zap.Int("translated", len(results)))
	return results, nil
}
