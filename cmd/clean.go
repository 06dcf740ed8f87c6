package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tanq16/scenefetch/internal/output"
)

func newCleanCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "clean CONFIG",
		Short: "Remove archive and partial files left by an interrupted run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(args[0], newPrompter())
			if err != nil {
				return err
			}
			if dryRun {
				cfg.DryRun = true
			}
			o, err := newOrchestrator(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			removed, err := o.Clean()
			if err != nil {
				return err
			}
			output.PrintCleaned(removed, cfg.DryRun)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Only list the files that would be removed")
	return cmd
}
