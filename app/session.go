package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/HRPortal/HRPortal/internal/identity"
)

// ErrNoDevSecret is returned when dev tokens are requested without a secret.
var ErrNoDevSecret = errors.New("IdentityProvider.DevSessionSecret is not set")

func init() { //nolint: gochecknoinits
	devTokenCmd.Flags().StringVar(&devTokenSubject, "sub", "", "Subject the token is issued for")
	devTokenCmd.Flags().DurationVar(&devTokenTTL, "ttl", time.Hour, "Token lifetime")
	_ = devTokenCmd.MarkFlagRequired("sub") //nolint:errcheck

	sessionCmd.AddCommand(devTokenCmd)
	rootCmd.AddCommand(sessionCmd)
}

var (
	devTokenSubject string
	devTokenTTL     time.Duration

	sessionCmd = &cobra.Command{
		Use:   "session",
		Short: "Session token helpers",
	}

	devTokenCmd = &cobra.Command{
		Use:   "dev-token",
		Short: "Print an HS256 session token accepted by a dev mode daemon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(true)
			if err != nil {
				return err
			}

			idp := cfg.IdentityProvider
			if idp.DevSessionSecret == "" {
				return ErrNoDevSecret
			}

			token, err := identity.SignDevSession(idp.DevSessionSecret, idp.Issuer, devTokenSubject,
				"dev_"+devTokenSubject, devTokenTTL)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)

			return err
		},
	}
)
