package app

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/HRPortal/HRPortal/internal/daemon"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	devMode bool

	startCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the HRPortal web service",
		PreRun: func(_ *cobra.Command, _ []string) {
			// a missing .env is fine, the environment may be set already
			if err := godotenv.Load(); err == nil {
				log.Debug().Msg("loaded .env")
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(devMode)
			if err != nil {
				return err
			}

			d, err := daemon.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)
