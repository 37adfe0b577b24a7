// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/HRPortal/HRPortal/internal/config"
	"github.com/HRPortal/HRPortal/internal/logger"
)

const (
	// EnvPrefix prefixes the environment variables bound to flags.
	EnvPrefix = "HRPORTAL"

	keyConfig = "config"
)

var rootCmd = &cobra.Command{
	Use:   "hrportal",
	Short: "HRPortal is the HR portal backend",
	Long: `HRPortal serves the HR portal. Users sign in through the identity
provider and are mirrored into the local store on their first request.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(keyConfig, "./etc/", "Directory holding main.toml")

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()
	_ = viper.BindPFlag(keyConfig, rootCmd.PersistentFlags().Lookup(keyConfig)) //nolint:errcheck
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration from --config or HRPORTAL_CONFIG and
// initializes the global logger.
func loadConfig(devMode bool) (*config.Config, error) {
	cfg, err := config.ReadConfig(viper.GetString(keyConfig))
	if err != nil {
		return nil, err
	}

	if devMode {
		cfg.DevMode = true
	}

	if err = logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	return &cfg, nil
}
