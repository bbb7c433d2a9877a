package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/cli"
	"github.com/example/taller/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "taller",
		Short:   "Taller - auto body shop management",
		Version: version.String(),
		Long: `Taller manages the day-to-day of an auto body shop: customers,
vehicles, service intakes, deadlines, payments and the task channel
between the manager and the technicians.`,
	}

	// Session
	rootCmd.AddCommand(cli.LoginCmd())
	rootCmd.AddCommand(cli.LogoutCmd())
	rootCmd.AddCommand(cli.WhoamiCmd())

	// Registry and workflow
	rootCmd.AddCommand(cli.UserCmd())
	rootCmd.AddCommand(cli.CustomerCmd())
	rootCmd.AddCommand(cli.VehicleCmd())
	rootCmd.AddCommand(cli.IntakeCmd())
	rootCmd.AddCommand(cli.DeadlineCmd())
	rootCmd.AddCommand(cli.PaymentCmd())
	rootCmd.AddCommand(cli.MessageCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	// Store management
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
