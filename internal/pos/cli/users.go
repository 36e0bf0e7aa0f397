package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukahq/dukapos/pkg/possdk"
)

func (t *terminal) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage backend user accounts",
	}
	cmd.AddCommand(t.usersCreateCmd())
	return cmd
}

func (t *terminal) usersCreateCmd() *cobra.Command {
	var req possdk.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account (first-run setup)",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := t.requireUser(cmd.Context())
			if err != nil {
				return err
			}
			if !admin.IsAdmin() {
				return fmt.Errorf("user creation requires an admin account")
			}

			if req.Password == "" {
				if req.Password, err = promptPassword("Password for new user: "); err != nil {
					return err
				}
			}

			user, err := t.app.API().CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Username")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email (optional)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name (optional)")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name (optional)")
	cmd.Flags().StringVar(&req.Tenant, "tenant", "", "Tenant the user belongs to (optional)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}
