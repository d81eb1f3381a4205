package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"codeberg.org/snonux/vide/internal/archive"
	"codeberg.org/snonux/vide/internal/cli"
	"codeberg.org/snonux/vide/internal/history"
	"codeberg.org/snonux/vide/internal/models"
	"codeberg.org/snonux/vide/internal/processor"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute command
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := cmd.Context()

	logger, err := cli.NewLogger(flags.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// Output settings may come from the config file
	flags.JSON = viper.GetBool("output.json")
	flags.ImageLinks = viper.GetBool("output.image_links")

	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.BackendConfig(), cmd.OutOrStdout())
		return lister.ListAvailableModels(ctx)
	}

	// Handle --archive-history flag
	if flags.Archive {
		archivePath, err := archive.ArchiveHistory(cli.HistoryPath())
		if archivePath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "History archived to: %s\n", archivePath)
		}
		if err != nil {
			return fmt.Errorf("failed to archive history: %w", err)
		}
		return nil
	}

	// Handle --history flag
	if flags.ShowHistory > 0 {
		return showHistory(cmd, flags, logger)
	}

	if flags.BatchFile == "" && len(args) == 0 {
		return cmd.Help()
	}

	dir, err := cli.ResolveDirection(flags)
	if err != nil {
		return err
	}

	// Create processor
	proc, err := processor.NewProcessor(ctx, flags, cmd.OutOrStdout(), logger)
	if err != nil {
		return err
	}
	defer proc.Close()

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch(ctx, dir)
	}

	if err := proc.ProcessSingle(ctx, args[0], dir); err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	return nil
}

func showHistory(cmd *cobra.Command, flags *cli.Flags, logger *zap.Logger) error {
	store, err := history.Open(cli.HistoryPath())
	if err != nil {
		return err
	}

	proc := processor.New(flags, nil, store, cmd.OutOrStdout(), logger)
	defer proc.Close()

	return proc.ShowHistory(cmd.Context(), flags.ShowHistory)
}
