package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HRPortal/HRPortal/internal/auth"
	"github.com/HRPortal/HRPortal/internal/db"
	"github.com/HRPortal/HRPortal/internal/db/models"
)

func init() { //nolint: gochecknoinits
	setRoleCmd.Flags().StringVar(&setRoleID, "id", "", "Subject id of the user")
	setRoleCmd.Flags().StringVar(&setRoleRole, "role", "", "admin, national_leader, manager or employee")
	_ = setRoleCmd.MarkFlagRequired("id")   //nolint:errcheck
	_ = setRoleCmd.MarkFlagRequired("role") //nolint:errcheck

	userCmd.AddCommand(setRoleCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	setRoleID   string
	setRoleRole string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	setRoleCmd = &cobra.Command{
		Use:   "set-role",
		Short: "Set the role of a user that has signed in before",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(false)
			if err != nil {
				return err
			}

			conn, err := db.Open(cfg)
			if err != nil {
				return err
			}

			defer db.Close(conn) //nolint:errcheck

			if err = auth.NewService(conn).SetRole(cmd.Context(), setRoleID, models.Role(setRoleRole)); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", setRoleID, setRoleRole)

			return err
		},
	}
)
