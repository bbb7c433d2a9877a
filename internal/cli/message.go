package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var messageCmd = &cobra.Command{
	Use:   "message",
	Short: "Tasks and reports between the manager and technicians",
}

var messageTaskCmd = &cobra.Command{
	Use:   "task [intake-id] [body]",
	Short: "Send a task to the intake's assigned technician",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		msg, err := wire.MessageService().SendTask(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Tarea %s enviada a %s\n", msg.ID, msg.Recipient)
		return nil
	},
}

var messageReportCmd = &cobra.Command{
	Use:   "report [intake-id] [body]",
	Short: "Send a progress report to the shop manager",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleTechnician)
		if err != nil {
			return err
		}

		msg, err := wire.MessageService().SendReport(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("✓ Reporte %s enviado\n", msg.ID)
		return nil
	},
}

var messageInboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List your messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		unread, _ := cmd.Flags().GetBool("unread")

		messages, err := wire.MessageService().ListInbox(ctx, primary.InboxFilters{
			RecipientID: session.UserID,
			Category:    category,
			UnreadOnly:  unread,
		})
		if err != nil {
			return err
		}

		count, err := wire.MessageService().UnreadCount(ctx, session.UserID, category)
		if err != nil {
			return err
		}
		fmt.Printf("Sin leer: %d\n", count)

		if len(messages) == 0 {
			fmt.Println("No messages")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tINTAKE\tCATEGORY\tFROM\tBODY\tREAD")
		fmt.Fprintln(w, "--\t------\t--------\t----\t----\t----")
		for _, m := range messages {
			read := "no"
			if m.Read {
				read = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.IntakeID, m.Category, m.Sender, m.Body, read)
		}
		w.Flush()
		return nil
	},
}

var messageReadCmd = &cobra.Command{
	Use:   "read [message-id]",
	Short: "Mark a message as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		if err := wire.MessageService().MarkRead(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Mensaje %s leído\n", args[0])
		return nil
	},
}

var messageReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all your unread messages as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		if err := wire.MessageService().MarkAllRead(ctx, session.UserID, category); err != nil {
			return err
		}
		fmt.Println("✓ Mensajes marcados como leídos")
		return nil
	},
}

func init() {
	messageInboxCmd.Flags().String("category", "", "Filter by category (Tarea or Reporte)")
	messageInboxCmd.Flags().Bool("unread", false, "Only unread messages")

	messageReadAllCmd.Flags().String("category", "", "Only one category (Tarea or Reporte)")

	messageCmd.AddCommand(messageTaskCmd)
	messageCmd.AddCommand(messageReportCmd)
	messageCmd.AddCommand(messageInboxCmd)
	messageCmd.AddCommand(messageReadCmd)
	messageCmd.AddCommand(messageReadAllCmd)
}

// MessageCmd returns the message command
func MessageCmd() *cobra.Command {
	return messageCmd
}
