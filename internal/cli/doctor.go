package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/db"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the taller environment",
		Long: `Health check for the taller installation.

Validates:
- Data directory (~/.taller/)
- Database reachability and foreign-key enforcement
- Seeded staff roles
- Stored session

Examples:
  taller doctor           # Run full health check
  taller doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkDataDir(),
				checkDatabase(),
				checkRoles(),
				checkSession(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == "✗" {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Println("Check              Status")
				fmt.Println("─────────────────────────")
				for _, r := range results {
					fmt.Printf("%-18s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				hasDetails := false
				for _, r := range results {
					if r.Status != "✓" && r.Details != "" {
						if !hasDetails {
							fmt.Println("Details:")
							hasDetails = true
						}
						fmt.Printf("\n%s:\n%s\n", r.Name, r.Details)
					}
				}

				if hasErrors {
					fmt.Println("\n⚠ Issues found. Run 'taller init' to set up the store.")
				} else {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// checkDataDir validates the ~/.taller directory
func checkDataDir() CheckResult {
	result := CheckResult{Name: "Data directory"}

	home, err := os.UserHomeDir()
	if err != nil {
		result.Status = "✗"
		result.Details = fmt.Sprintf("cannot resolve home directory: %v", err)
		return result
	}

	dir := filepath.Join(home, ".taller")
	info, err := os.Stat(dir)
	if err != nil {
		result.Status = "✗"
		result.Details = fmt.Sprintf("%s does not exist (run 'taller init')", dir)
		return result
	}
	if !info.IsDir() {
		result.Status = "✗"
		result.Details = fmt.Sprintf("%s is not a directory", dir)
		return result
	}

	result.Status = "✓"
	return result
}

// checkDatabase validates the store is reachable with foreign keys on
func checkDatabase() CheckResult {
	result := CheckResult{Name: "Database"}

	database, err := db.GetDB()
	if err != nil {
		result.Status = "✗"
		result.Details = fmt.Sprintf("cannot open database: %v", err)
		return result
	}

	if err := database.Ping(); err != nil {
		result.Status = "✗"
		result.Details = fmt.Sprintf("database unreachable: %v", err)
		return result
	}

	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil || fk != 1 {
		result.Status = "⚠"
		result.Details = "foreign key enforcement is off"
		return result
	}

	result.Status = "✓"
	return result
}

// checkRoles validates the seeded staff roles exist
func checkRoles() CheckResult {
	result := CheckResult{Name: "Staff roles"}

	database, err := db.GetDB()
	if err != nil {
		result.Status = "✗"
		result.Details = fmt.Sprintf("cannot open database: %v", err)
		return result
	}

	missing := []string{}
	for _, role := range []string{"Ejecutivo", "Gerente"} {
		var count int
		err := database.QueryRow(
			"SELECT COUNT(*) FROM users WHERE role = ? AND active = 1", role,
		).Scan(&count)
		if err != nil {
			result.Status = "✗"
			result.Details = fmt.Sprintf("cannot query users: %v", err)
			return result
		}
		if count == 0 {
			missing = append(missing, role)
		}
	}

	if len(missing) > 0 {
		result.Status = "⚠"
		result.Details = fmt.Sprintf("no active account for roles %v (run 'taller init')", missing)
		return result
	}

	result.Status = "✓"
	return result
}

// checkSession reports whether a login is stored
func checkSession() CheckResult {
	result := CheckResult{Name: "Session"}

	session, err := currentSession()
	if err != nil {
		result.Status = "✗"
		result.Details = fmt.Sprintf("cannot read session: %v", err)
		return result
	}
	if session == nil {
		result.Status = "⚠"
		result.Details = "not logged in (run 'taller login')"
		return result
	}

	result.Status = "✓"
	return result
}
