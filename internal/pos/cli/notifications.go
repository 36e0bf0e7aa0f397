package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (t *terminal) notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notify"},
		Short:   "Read and acknowledge the notification feed",
	}
	cmd.AddCommand(t.notificationsListCmd(), t.notificationsReadCmd(), t.notificationsReadAllCmd())
	return cmd
}

func (t *terminal) notificationsListCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}

			feed, err := t.app.API().Notifications(cmd.Context())
			if err != nil {
				return err
			}
			unread, err := t.app.API().UnreadCount(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTYPE\tTITLE\tREAD")
			for _, n := range feed {
				if unreadOnly && n.IsRead {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\n", n.ID, n.NotificationType, n.Title, n.IsRead)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("%d unread\n", unread)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only show unread notifications")
	return cmd
}

func (t *terminal) notificationsReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}
			return t.app.API().MarkRead(cmd.Context(), args[0])
		},
	}
}

func (t *terminal) notificationsReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := t.requireUser(cmd.Context()); err != nil {
				return err
			}
			return t.app.API().MarkAllRead(cmd.Context())
		},
	}
}
