package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukahq/dukapos/pkg/possdk"
)

func (t *terminal) tenantsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "Inspect and bootstrap tenants",
	}
	cmd.AddCommand(t.tenantsListCmd(), t.tenantsCreateCmd())
	return cmd
}

func (t *terminal) tenantsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tenants visible to the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			tenants, err := t.app.API().Tenants(cmd.Context())
			if err != nil {
				return err
			}
			if len(tenants) == 0 {
				fmt.Println("no tenants configured")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tTIMEZONE")
			for _, tn := range tenants {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", tn.ID, tn.Name, tn.Currency, tn.Timezone)
			}
			return w.Flush()
		},
	}
}

func (t *terminal) tenantsCreateCmd() *cobra.Command {
	var req possdk.CreateTenantRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tenant (first-run setup)",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := t.requireUser(cmd.Context())
			if err != nil {
				return err
			}
			if !user.IsAdmin() {
				return fmt.Errorf("tenant setup requires an admin account")
			}

			tenant, err := t.app.API().CreateTenant(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("created tenant %s (%s)\n", tenant.Name, tenant.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Tenant name")
	cmd.Flags().StringVar(&req.Slug, "slug", "", "URL slug (optional)")
	cmd.Flags().StringVar(&req.Currency, "currency", "KES", "Reporting currency")
	cmd.Flags().StringVar(&req.Timezone, "timezone", "Africa/Nairobi", "Tenant timezone")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}
