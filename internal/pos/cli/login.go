package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dukahq/dukapos/internal/pos/routing"
)

func (t *terminal) loginCmd() *cobra.Command {
	var (
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if username == "" {
				if username, err = promptLine("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptPassword("Password: "); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			if err := t.app.Session().Login(ctx, username, password); err != nil {
				return err
			}

			user := t.app.Session().User()
			fmt.Printf("logged in as %s\n", user.Username)

			switch t.app.Resolver().Resolve(ctx, user) {
			case routing.DestinationSetup:
				fmt.Println("no tenant configured yet, run \"pos tenants create\" to finish setup")
			case routing.DestinationPOS:
				fmt.Println("shop attendant role detected, ready to sell")
			default:
				fmt.Println("ready")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func promptLine(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Piped input, fall back to a plain line read.
		return promptLine("")
	}
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}
