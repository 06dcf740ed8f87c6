package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanq16/scenefetch/internal/config"
	"github.com/tanq16/scenefetch/internal/output"
)

var errMissingFiles = errors.New("some files are missing")

const sizeWarning = "The full dataset is several terabytes. Continue with the download?"

func newFetchCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fetch CONFIG",
		Short: "Download meta files and the selected scenes",
		Long: `Download meta files and the selected scenes described by a YAML config.

Existing local files are skipped, so an interrupted run can simply be started again.
A file cut short by killing the process is also considered present on the next run;
delete it by hand if you know the previous run was interrupted while writing it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter()
			cfg, err := loadConfig(args[0], p)
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}
			if !cfg.DryRun && !assumeYes && !p.confirm(sizeWarning) {
				output.PrintWarning("Aborted")
				return nil
			}
			return runFetch(cmd.Context(), cfg)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only check that remote files exist")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check CONFIG",
		Short: "Check that every selected remote file exists without downloading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0], newPrompter())
			if err != nil {
				return err
			}
			cfg.DryRun = true
			return runFetch(cmd.Context(), cfg)
		},
	}
}

func runFetch(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	o, err := newOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	assets, err := plannedAssets(cfg)
	if err != nil {
		return err
	}
	output.PrintPlan(assets, cfg.DownloadScenes, cfg.DownloadSplits, cfg.DryRun)

	report, err := o.Run(ctx)
	output.PrintReport(report)
	if err != nil {
		return err
	}
	if !report.Successful() {
		log.Debug().Str("op", "cmd/fetch").Int("missing", len(report.Missing)).Msg("run finished with missing files")
		return errMissingFiles
	}
	return nil
}

// plannedAssets is the asset list shown before a run; metadata-only runs have none.
func plannedAssets(cfg *config.Config) ([]string, error) {
	if cfg.MetadataOnly {
		return nil, nil
	}
	return cfg.AssetsToDownload()
}
