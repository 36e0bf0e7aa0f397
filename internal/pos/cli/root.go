// Package cli implements the dukapos terminal commands. Every command runs
// against a shared Application so the session, keystore and gateway client
// are wired once per invocation.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukahq/dukapos/internal/pos/app"
	"github.com/dukahq/dukapos/pkg/possdk"
)

type terminal struct {
	app *app.Application
}

// Execute builds the command tree and runs it.
func Execute() error {
	t := &terminal{}
	return t.rootCmd().Execute()
}

func (t *terminal) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pos",
		Short: "Point-of-sale terminal for the Duka backend",
		Long: `pos is a point-of-sale terminal for the Duka retail backend.

It keeps an authenticated session in a local encrypted keystore, rides
out access-token expiry transparently, and exposes the day-to-day shop
operations: product lookup, stock checks, cart checkout, notifications
and the analytics reports.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(app.LoadConfig())
			if err != nil {
				return err
			}
			t.app = application
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return t.app.Close()
		},
	}

	cmd.AddCommand(
		t.loginCmd(),
		t.logoutCmd(),
		t.whoamiCmd(),
		t.productsCmd(),
		t.stockCmd(),
		t.shopsCmd(),
		t.tenantsCmd(),
		t.usersCmd(),
		t.sellCmd(),
		t.notificationsCmd(),
		t.analyticsCmd(),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// The root PersistentPreRunE still runs, which keeps Close happy.
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pos version %s\n", app.BuildVersion)
		},
	}
}

// requireUser restores the persisted session and fails with a friendly error
// when no valid credentials are on disk.
func (t *terminal) requireUser(ctx context.Context) (*possdk.User, error) {
	if err := t.app.Session().CheckAuth(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if !t.app.Session().IsAuthenticated() {
		return nil, errors.New(`not logged in, run "pos login" first`)
	}
	return t.app.Session().User(), nil
}
