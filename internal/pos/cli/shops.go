package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (t *terminal) shopsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shops",
		Short: "List shop locations (IDs feed sell --shop)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			shops, err := t.app.API().Shops(cmd.Context())
			if err != nil {
				return err
			}
			if len(shops) == 0 {
				fmt.Println("no shops configured")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCODE\tNAME")
			for _, s := range shops {
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Code, s.Name)
			}
			return w.Flush()
		},
	}
}
