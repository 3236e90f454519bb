package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codeberg.org/snonux/abbrevsearch/internal/cli"
	"codeberg.org/snonux/abbrevsearch/internal/models"
	"codeberg.org/snonux/abbrevsearch/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Config file and environment fill in anything not given as a flag
	cli.ApplyConfig(flags)

	// Positional arguments continue the --words list
	flags.Words = append(flags.Words, args...)

	logger, err := cli.NewLogger(flags.Verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx)
	}

	proc := processor.NewProcessor(flags, processor.WithLogger(logger))
	summary, err := proc.Run(ctx)
	if err != nil {
		return err
	}

	logger.Debug("search finished",
		zap.Int("candidates", summary.Candidates),
		zap.Int("valid", summary.Valid),
		zap.Int("translated", summary.Translated))
	return nil
}

// commandContext returns the command context, which is nil unless the
// command was started through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
