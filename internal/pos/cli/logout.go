package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (t *terminal) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			t.app.Session().Logout()
			fmt.Println("logged out")
			return nil
		},
	}
}
