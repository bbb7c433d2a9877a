package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/wire"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Audit trail and consolidated service history",
}

var historyLogCmd = &cobra.Command{
	Use:   "log [intake-id]",
	Short: "Show an intake's service log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		entries, err := wire.HistoryService().ListLog(ctx, args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No log entries")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tCATEGORY\tDESCRIPTION\tBY")
		fmt.Fprintln(w, "----\t--------\t-----------\t--")
		for _, e := range entries {
			by := e.ActorName
			if by == "" {
				by = e.Actor
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Timestamp, e.Category, e.Description, by)
		}
		w.Flush()
		return nil
	},
}

var historyReportCmd = &cobra.Command{
	Use:   "report [query]",
	Short: "Full service history for intakes matching a customer name or plate",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		histories, err := wire.HistoryService().Report(ctx, query)
		if err != nil {
			return err
		}
		if len(histories) == 0 {
			fmt.Println("No matching intakes")
			return nil
		}

		for _, h := range histories {
			fmt.Printf("=== %s — %s, %s [%s]\n", h.Intake.ID, h.Intake.CustomerName, h.Intake.VehicleLabel, h.Intake.Status)
			fmt.Printf("    Motivo: %s\n", h.Intake.Reason)
			for _, e := range h.Entries {
				fmt.Printf("    %s  [%s] %s\n", e.Timestamp, e.Category, e.Description)
			}
			if h.Ledger != nil {
				fmt.Printf("    Pago: $%.2f / $%.2f — %s\n", h.Ledger.Paid, h.Ledger.Total, h.Ledger.Status)
				for _, e := range h.Ledger.History {
					fmt.Printf("      %s  $%.2f  %s\n", e.Timestamp, e.Amount, e.Method)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyLogCmd)
	historyCmd.AddCommand(historyReportCmd)
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	return historyCmd
}
