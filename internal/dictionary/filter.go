package dictionary

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"codeberg.org/snonux/abbrevsearch/internal/progress"
	"codeberg.org/snonux/abbrevsearch/internal/workpool"
)

// FilterOptions configures Filter
type FilterOptions struct {
	Workers  int         // Pool size, 0 means one per CPU
	Progress io.Writer   // Progress bar destination, nil disables it
	Logger   *zap.Logger // Optional
}

// Filter returns the candidates found in the corpus, in their original order.
func Filter(ctx context.Context, corpus *Corpus, candidates []string, opts FilterOptions) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	workers := workpool.Workers(opts.Workers)
	logger.Debug("filtering candidates",
		zap.Int("candidates", len(candidates)),
		zap.Int("workers", workers),
		zap.Int("corpus_size", corpus.Len()))

	bar := progress.New(len(candidates), "checking", opts.Progress)
	found, err := workpool.Map(ctx, candidates, workers, func(_ context.Context, candidate string) (bool, error) {
		ok := corpus.Contains(candidate)
		_ = bar.Add(1)
		return ok, nil
	})
	if err != nil {
		return nil, fmt.Errorf("dictionary filter failed: %w", err)
	}
	_ = bar.Finish()

	var valid []string
	for i, ok := range found {
		if ok {
			valid = append(valid, candidates[i])
		}
	}

	logger.Debug("filter finished", zap.Int("valid", len(valid)))
	return valid, nil
}
