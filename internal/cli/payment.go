package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Manage the payment ledger",
}

var paymentPriceCmd = &cobra.Command{
	Use:   "price [intake-id] [total]",
	Short: "Set the total price for an intake",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleFrontDesk, primary.RoleManager)
		if err != nil {
			return err
		}

		var total float64
		if _, err := fmt.Sscanf(args[1], "%f", &total); err != nil {
			return fmt.Errorf("invalid total %q", args[1])
		}

		ledger, err := wire.PaymentService().SetPrice(ctx, args[0], total)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Precio de %s: $%.2f (%s)\n", ledger.IntakeID, ledger.Total, ledger.Status)
		return nil
	},
}

var paymentPayCmd = &cobra.Command{
	Use:   "pay [intake-id] [amount]",
	Short: "Record a payment against an intake's ledger",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleFrontDesk, primary.RoleManager)
		if err != nil {
			return err
		}

		var amount float64
		if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		method, _ := cmd.Flags().GetString("method")
		note, _ := cmd.Flags().GetString("note")
		confirm, _ := cmd.Flags().GetBool("confirm")

		ledger, err := wire.PaymentService().RecordPayment(ctx, primary.RecordPaymentRequest{
			IntakeID:           args[0],
			Amount:             amount,
			Method:             method,
			Note:               note,
			ConfirmOverpayment: confirm,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Pago de $%.2f (%s) registrado\n", amount, method)
		fmt.Printf("  Pagado: $%.2f / $%.2f — %s", ledger.Paid, ledger.Total, ledger.Status)
		if ledger.Pending > 0 {
			fmt.Printf(" (pendiente $%.2f)", ledger.Pending)
		}
		fmt.Println()
		return nil
	},
}

var paymentShowCmd = &cobra.Command{
	Use:   "show [intake-id]",
	Short: "Show an intake's ledger and payment history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		ledger, err := wire.PaymentService().GetLedger(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Ledger: %s (ingreso %s)\n", ledger.ID, ledger.IntakeID)
		fmt.Printf("Total: $%.2f  Pagado: $%.2f  Pendiente: $%.2f\n", ledger.Total, ledger.Paid, ledger.Pending)
		fmt.Printf("Estado: %s\n", ledger.Status)
		if len(ledger.History) > 0 {
			fmt.Println("Historial:")
			for _, e := range ledger.History {
				note := ""
				if e.Note != "" {
					note = " — " + e.Note
				}
				fmt.Printf("  %s  $%.2f  %s  (%s)%s\n", e.Timestamp, e.Amount, e.Method, e.ActorID, note)
			}
		}
		return nil
	},
}

var paymentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every ledger, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		ledgers, err := wire.PaymentService().ListLedgers(ctx)
		if err != nil {
			return err
		}
		if len(ledgers) == 0 {
			fmt.Println("No ledgers found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tINTAKE\tTOTAL\tPAID\tPENDING\tSTATUS")
		fmt.Fprintln(w, "--\t------\t-----\t----\t-------\t------")
		for _, l := range ledgers {
			fmt.Fprintf(w, "%s\t%s\t$%.2f\t$%.2f\t$%.2f\t%s\n",
				l.ID, l.IntakeID, l.Total, l.Paid, l.Pending, l.Status)
		}
		w.Flush()
		return nil
	},
}

var paymentSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Billing summary for the current month and year",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		summary, err := wire.PaymentService().FinancialSummary(ctx, time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return err
		}

		fmt.Printf("Mes:  facturado $%.2f, cobrado $%.2f\n", summary.MonthBilled, summary.MonthPaid)
		fmt.Printf("Año:  facturado $%.2f, cobrado $%.2f\n", summary.YearBilled, summary.YearPaid)
		fmt.Printf("Ledgers: %d pagados, %d parciales, %d pendientes\n",
			summary.CountPaid, summary.CountPartial, summary.CountPending)
		return nil
	},
}

func init() {
	paymentPayCmd.Flags().StringP("method", "m", "Efectivo", "Payment method (Efectivo, Tarjeta, Transferencia, ...)")
	paymentPayCmd.Flags().String("note", "", "Optional note")
	paymentPayCmd.Flags().Bool("confirm", false, "Accept an amount above the pending balance")

	paymentCmd.AddCommand(paymentPriceCmd)
	paymentCmd.AddCommand(paymentPayCmd)
	paymentCmd.AddCommand(paymentShowCmd)
	paymentCmd.AddCommand(paymentListCmd)
	paymentCmd.AddCommand(paymentSummaryCmd)
}

// PaymentCmd returns the payment command
func PaymentCmd() *cobra.Command {
	return paymentCmd
}
