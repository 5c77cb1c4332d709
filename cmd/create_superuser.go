package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warehouse-crm/auth-service/internal/core/domain"
	"github.com/warehouse-crm/auth-service/internal/core/ports"
)

var superuserFlags struct {
	username string
	email    string
	password string
	role     string
}

var createSuperuserCmd = &cobra.Command{
	Use:   "create-superuser",
	Short: "Creates an active superuser account",
	Long: `Creates an active superuser account without going through the access rules.

The password is read from --password or, when omitted, from SUPERUSER_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := superuserFlags.password
		if password == "" {
			password = os.Getenv("SUPERUSER_PASSWORD")
		}
		if password == "" {
			return errors.New("a password is required (--password or SUPERUSER_PASSWORD)")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		account, err := a.accounts.CreateSuperuser(cmd.Context(), ports.SuperuserInput{
			Username: superuserFlags.username,
			Email:    superuserFlags.email,
			Password: password,
			Role:     domain.Role(superuserFlags.role),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "superuser %q created (id %s, role %s)\n", account.Username, account.ID, account.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createSuperuserCmd)

	f := createSuperuserCmd.Flags()
	f.StringVar(&superuserFlags.username, "username", "", "login name (required)")
	f.StringVar(&superuserFlags.email, "email", "", "email address")
	f.StringVar(&superuserFlags.password, "password", "", "password, prefer SUPERUSER_PASSWORD")
	f.StringVar(&superuserFlags.role, "role", string(domain.RoleSuperAdmin), "role of the new account")
	_ = createSuperuserCmd.MarkFlagRequired("username")
}
