package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var intakeCmd = &cobra.Command{
	Use:   "intake",
	Short: "Manage service intakes",
}

var intakeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Open a service intake for a customer's vehicle",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleFrontDesk, primary.RoleManager)
		if err != nil {
			return err
		}

		customerID, _ := cmd.Flags().GetString("customer")
		vehicleID, _ := cmd.Flags().GetString("vehicle")
		reason, _ := cmd.Flags().GetString("reason")

		intake, err := wire.IntakeService().CreateIntake(ctx, primary.CreateIntakeRequest{
			CustomerID: customerID,
			VehicleID:  vehicleID,
			Reason:     reason,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Ingreso %s: %s — %s\n", intake.ID, intake.VehicleLabel, intake.Reason)
		return nil
	},
}

var intakeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List intakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, session, err := requireSession()
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		unassigned, _ := cmd.Flags().GetBool("unassigned")
		mine, _ := cmd.Flags().GetBool("mine")

		filters := primary.IntakeFilters{
			Status:         status,
			UnassignedOnly: unassigned,
		}
		if mine {
			filters.AssignedTo = session.UserID
		}

		intakes, err := wire.IntakeService().ListIntakes(ctx, filters)
		if err != nil {
			return err
		}
		if len(intakes) == 0 {
			fmt.Println("No intakes found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCUSTOMER\tVEHICLE\tSTATUS\tTECHNICIAN")
		fmt.Fprintln(w, "--\t--------\t-------\t------\t----------")
		for _, i := range intakes {
			tech := i.AssignedToName
			if tech == "" {
				tech = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", i.ID, i.CustomerName, i.VehicleLabel, i.Status, tech)
		}
		w.Flush()
		return nil
	},
}

var intakeShowCmd = &cobra.Command{
	Use:   "show [intake-id]",
	Short: "Show intake details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		intake, err := wire.IntakeService().GetIntake(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Ingreso: %s\n", intake.ID)
		fmt.Printf("Cliente: %s (%s)\n", intake.CustomerName, intake.CustomerID)
		fmt.Printf("Vehículo: %s\n", intake.VehicleLabel)
		fmt.Printf("Motivo: %s\n", intake.Reason)
		fmt.Printf("Estado: %s\n", intake.Status)
		if intake.AssignedTo != "" {
			fmt.Printf("Técnico: %s (%s)\n", intake.AssignedToName, intake.AssignedTo)
		}
		fmt.Printf("Creado: %s\n", intake.CreatedAt)
		if intake.CompletedAt != "" {
			fmt.Printf("Entregado: %s\n", intake.CompletedAt)
		}
		if intake.DeadlineStart != "" {
			state := "finalizado"
			if intake.DeadlineActive {
				state = "activo"
			}
			fmt.Printf("Plazo: %dd %dh %dm (%s)\n",
				intake.DeadlineDays, intake.DeadlineHours, intake.DeadlineMinutes, state)
		}
		return nil
	},
}

var intakeAssignCmd = &cobra.Command{
	Use:   "assign [intake-id] [technician-id]",
	Short: "Assign a technician to an intake",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		if err := wire.IntakeService().AssignTechnician(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("✓ Ingreso %s asignado a %s\n", args[0], args[1])
		return nil
	},
}

var intakeStatusCmd = &cobra.Command{
	Use:   "status [intake-id] [new-status]",
	Short: "Advance an intake through the shop-floor progression",
	Long: `Move an intake to a new status. The canonical order is
Ingreso, Diagnóstico, Hojalatería, Pintura, Ensamble, Listo, Entregado.
Backward moves are corrections and need --force.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleTechnician, primary.RoleManager)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		err = wire.IntakeService().SetStatus(ctx, primary.SetStatusRequest{
			IntakeID: args[0],
			Status:   args[1],
			Force:    force,
		})
		if err != nil {
			return err
		}
		fmt.Printf("✓ Ingreso %s ahora en: %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	intakeCreateCmd.Flags().String("customer", "", "Customer ID")
	intakeCreateCmd.Flags().String("vehicle", "", "Vehicle ID")
	intakeCreateCmd.Flags().String("reason", "", "Service reason")
	_ = intakeCreateCmd.MarkFlagRequired("customer")
	_ = intakeCreateCmd.MarkFlagRequired("vehicle")
	_ = intakeCreateCmd.MarkFlagRequired("reason")

	intakeListCmd.Flags().String("status", "", "Filter by status")
	intakeListCmd.Flags().Bool("unassigned", false, "Only intakes without a technician")
	intakeListCmd.Flags().Bool("mine", false, "Only intakes assigned to you")

	intakeStatusCmd.Flags().Bool("force", false, "Allow a backward move as an explicit correction")

	intakeCmd.AddCommand(intakeCreateCmd)
	intakeCmd.AddCommand(intakeListCmd)
	intakeCmd.AddCommand(intakeShowCmd)
	intakeCmd.AddCommand(intakeAssignCmd)
	intakeCmd.AddCommand(intakeStatusCmd)
}

// IntakeCmd returns the intake command
func IntakeCmd() *cobra.Command {
	return intakeCmd
}
