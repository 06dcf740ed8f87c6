package cmd

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/tanq16/scenefetch/internal/utils"
)

var (
	debug     bool
	logFile   string
	assumeYes bool
	closeLog  = func() error { return nil }
)

var ScenefetchVersion = "dev"

var rootCmd = &cobra.Command{
	Use:           "scenefetch",
	Short:         "Scenefetch downloads ScanNet++ scenes and metadata, resuming where it left off",
	Version:       ScenefetchVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		closer, err := utils.InitLogger(debug, logFile)
		if err != nil {
			return err
		}
		closeLog = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Str("op", "cmd/root").Err(err).Msg("scenefetch failed")
		closeLog()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append JSON logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the dataset size confirmation")

	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newCleanCmd())
}
