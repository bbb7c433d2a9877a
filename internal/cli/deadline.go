package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/taller/internal/core/deadline"
	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var deadlineCmd = &cobra.Command{
	Use:   "deadline",
	Short: "Manage intake deadlines",
}

var deadlineSetCmd = &cobra.Command{
	Use:   "set [intake-id]",
	Short: "Attach an elapsed-time budget to an intake and start the clock",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		days, _ := cmd.Flags().GetInt("days")
		hours, _ := cmd.Flags().GetInt("hours")
		minutes, _ := cmd.Flags().GetInt("minutes")

		err = wire.DeadlineService().SetDeadline(ctx, primary.SetDeadlineRequest{
			IntakeID: args[0],
			Days:     days,
			Hours:    hours,
			Minutes:  minutes,
		})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Plazo asignado a %s: %dd %dh %dm\n", args[0], days, hours, minutes)
		return nil
	},
}

var deadlineFinishCmd = &cobra.Command{
	Use:   "finish [intake-id]",
	Short: "Close an active deadline and record the outcome",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		outcome, err := wire.DeadlineService().FinishDeadline(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("✓ Plazo finalizado: %s (%.1f%% del plazo)\n",
			categoryColor(outcome.Category).Sprint(outcome.Category), outcome.Percent)
		fmt.Printf("  %s\n", outcome.Summary)
		return nil
	},
}

var deadlineWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live countdown view for every active deadline",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, err := requireSession()
		if err != nil {
			return err
		}

		service := wire.DeadlineService()
		if len(service.Readings(time.Now())) == 0 {
			fmt.Println("No active deadlines")
			return nil
		}

		ticker := service.StartTicker(printReadings)
		defer ticker.Stop()

		printReadings(service.Readings(time.Now()))

		// Block until interrupted; the cron scheduler redraws every second.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		return nil
	},
}

func printReadings(readings []primary.DeadlineReading) {
	fmt.Print("\033[H\033[2J")
	fmt.Println("INGRESO    AVANCE   RESTANTE        ESTADO")
	for _, r := range readings {
		remaining := deadline.FormatDuration(r.Remaining)
		if r.Remaining < 0 {
			remaining = "-" + remaining
		}
		fmt.Printf("%-10s %6.1f%%  %-15s %s\n",
			r.IntakeID, r.Percent, remaining, bandColor(r.Band).Sprint(r.Band))
	}
}

func bandColor(band string) *color.Color {
	switch deadline.Band(band) {
	case deadline.BandOnTime:
		return color.New(color.FgGreen)
	case deadline.BandCaution:
		return color.New(color.FgYellow)
	case deadline.BandUrgent:
		return color.New(color.FgHiRed)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func categoryColor(category string) *color.Color {
	switch deadline.Category(category) {
	case deadline.CategoryEarly:
		return color.New(color.FgGreen)
	case deadline.CategoryNormal:
		return color.New(color.FgCyan)
	case deadline.CategoryUrgent:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func init() {
	deadlineSetCmd.Flags().Int("days", 0, "Budget days")
	deadlineSetCmd.Flags().Int("hours", 0, "Budget hours")
	deadlineSetCmd.Flags().Int("minutes", 0, "Budget minutes")

	deadlineCmd.AddCommand(deadlineSetCmd)
	deadlineCmd.AddCommand(deadlineFinishCmd)
	deadlineCmd.AddCommand(deadlineWatchCmd)
}

// DeadlineCmd returns the deadline command
func DeadlineCmd() *cobra.Command {
	return deadlineCmd
}
