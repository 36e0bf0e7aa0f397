package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func (t *terminal) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := t.requireUser(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("username:  %s\n", user.Username)
			if user.Email != "" {
				fmt.Printf("email:     %s\n", user.Email)
			}
			if name := strings.TrimSpace(user.FirstName + " " + user.LastName); name != "" {
				fmt.Printf("name:      %s\n", name)
			}
			if user.Tenant != "" {
				fmt.Printf("tenant:    %s\n", user.Tenant)
			}
			fmt.Printf("admin:     %t\n", user.IsAdmin())

			if exp, ok := t.app.Session().TokenExpiry(); ok {
				fmt.Printf("token exp: %s (%s)\n",
					exp.Format(time.RFC3339), time.Until(exp).Round(time.Second))
			}
			return nil
		},
	}
}
