package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the taller database",
		Long:  `Initialize the taller database at ~/.taller/taller.db with the required schema and default staff accounts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := db.GetDBPath()
			if err != nil {
				return fmt.Errorf("failed to get database path: %w", err)
			}

			fmt.Printf("Initializing taller database at %s\n", dbPath)

			database, err := db.GetDB()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			fmt.Println("✓ Database initialized successfully")

			if err := db.SeedDefaultUsers(database); err != nil {
				return fmt.Errorf("failed to seed default users: %w", err)
			}
			fmt.Println("✓ Default staff accounts ready")

			if seed {
				if err := db.SeedFixtures(database); err != nil {
					return fmt.Errorf("failed to seed fixtures: %w", err)
				}
				fmt.Println("✓ Development fixtures loaded")
			}

			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  taller login gerente")
			fmt.Println("  taller customer create \"Juan Pérez\" --phone 555-0100")

			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Load development fixtures")
	return cmd
}
