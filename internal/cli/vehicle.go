package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage the vehicle registry",
}

var vehicleCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a vehicle",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		make, _ := cmd.Flags().GetString("make")
		model, _ := cmd.Flags().GetString("model")
		plate, _ := cmd.Flags().GetString("plate")
		year, _ := cmd.Flags().GetString("year")
		color, _ := cmd.Flags().GetString("color")

		vehicle, err := wire.VehicleService().CreateVehicle(ctx, primary.CreateVehicleRequest{
			Make:  make,
			Model: model,
			Plate: plate,
			Year:  year,
			Color: color,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Vehículo %s registrado: %s %s (%s)\n", vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Plate)
		return nil
	},
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		vehicles, err := wire.VehicleService().ListVehicles(ctx, all)
		if err != nil {
			return err
		}
		printVehicles(vehicles)
		return nil
	},
}

var vehicleSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search vehicles by make, model or plate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		vehicles, err := wire.VehicleService().SearchVehicles(ctx, args[0])
		if err != nil {
			return err
		}
		printVehicles(vehicles)
		return nil
	},
}

var vehicleUpdateCmd = &cobra.Command{
	Use:   "update [vehicle-id]",
	Short: "Update a vehicle's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		make, _ := cmd.Flags().GetString("make")
		model, _ := cmd.Flags().GetString("model")
		plate, _ := cmd.Flags().GetString("plate")
		year, _ := cmd.Flags().GetString("year")
		color, _ := cmd.Flags().GetString("color")

		if make == "" && model == "" && plate == "" && year == "" && color == "" {
			return fmt.Errorf("nothing to update (set --make, --model, --plate, --year or --color)")
		}

		err = wire.VehicleService().UpdateVehicle(ctx, primary.UpdateVehicleRequest{
			VehicleID: args[0],
			Make:      make,
			Model:     model,
			Plate:     plate,
			Year:      year,
			Color:     color,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Vehículo %s actualizado\n", args[0])
		return nil
	},
}

var vehicleDeleteCmd = &cobra.Command{
	Use:   "delete [vehicle-id]",
	Short: "Deactivate a vehicle, releasing its plate",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireSession()
		if err != nil {
			return err
		}

		if err := wire.VehicleService().DeleteVehicle(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Vehículo %s desactivado\n", args[0])
		return nil
	},
}

func printVehicles(vehicles []*primary.Vehicle) {
	if len(vehicles) == 0 {
		fmt.Println("No vehicles found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMAKE\tMODEL\tPLATE\tYEAR\tCOLOR")
	fmt.Fprintln(w, "--\t----\t-----\t-----\t----\t-----")
	for _, v := range vehicles {
		year := v.Year
		if year == "" {
			year = "-"
		}
		color := v.Color
		if color == "" {
			color = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", v.ID, v.Make, v.Model, v.Plate, year, color)
	}
	w.Flush()
}

func init() {
	vehicleCreateCmd.Flags().String("make", "", "Vehicle make")
	vehicleCreateCmd.Flags().String("model", "", "Vehicle model")
	vehicleCreateCmd.Flags().String("plate", "", "License plate")
	vehicleCreateCmd.Flags().String("year", "", "Model year")
	vehicleCreateCmd.Flags().String("color", "", "Color")
	_ = vehicleCreateCmd.MarkFlagRequired("make")
	_ = vehicleCreateCmd.MarkFlagRequired("model")
	_ = vehicleCreateCmd.MarkFlagRequired("plate")

	vehicleListCmd.Flags().Bool("all", false, "Include deactivated vehicles")

	vehicleUpdateCmd.Flags().String("make", "", "New make")
	vehicleUpdateCmd.Flags().String("model", "", "New model")
	vehicleUpdateCmd.Flags().String("plate", "", "New plate")
	vehicleUpdateCmd.Flags().String("year", "", "New year")
	vehicleUpdateCmd.Flags().String("color", "", "New color")

	vehicleCmd.AddCommand(vehicleCreateCmd)
	vehicleCmd.AddCommand(vehicleListCmd)
	vehicleCmd.AddCommand(vehicleSearchCmd)
	vehicleCmd.AddCommand(vehicleUpdateCmd)
	vehicleCmd.AddCommand(vehicleDeleteCmd)
}

// VehicleCmd returns the vehicle command
func VehicleCmd() *cobra.Command {
	return vehicleCmd
}
