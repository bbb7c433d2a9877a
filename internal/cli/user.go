package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/ports/primary"
	"github.com/example/taller/internal/wire"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
}

var userRegisterCmd = &cobra.Command{
	Use:   "register [username]",
	Short: "Register a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		password, _ := cmd.Flags().GetString("password")
		displayName, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		user, err := wire.AuthService().RegisterUser(ctx, primary.RegisterUserRequest{
			Username:    args[0],
			Password:    password,
			DisplayName: displayName,
			Role:        role,
		})
		if err != nil {
			return err
		}

		fmt.Printf("✓ Usuario %s creado: %s (%s)\n", user.ID, user.DisplayName, roleLabel(user.Role))
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		role, _ := cmd.Flags().GetString("role")
		all, _ := cmd.Flags().GetBool("all")

		users, err := wire.AuthService().ListUsers(ctx, role, !all)
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tROLE\tACTIVE")
		fmt.Fprintln(w, "--\t--------\t----\t----\t------")
		for _, u := range users {
			active := "yes"
			if !u.Active {
				active = "no"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.DisplayName, u.Role, active)
		}
		w.Flush()
		return nil
	},
}

var userDeactivateCmd = &cobra.Command{
	Use:   "deactivate [user-id]",
	Short: "Deactivate a staff account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _, err := requireRole(primary.RoleManager)
		if err != nil {
			return err
		}

		if err := wire.AuthService().DeactivateUser(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Usuario %s desactivado\n", args[0])
		return nil
	},
}

func init() {
	userRegisterCmd.Flags().StringP("password", "p", "", "Password for the new account")
	userRegisterCmd.Flags().StringP("name", "n", "", "Display name")
	userRegisterCmd.Flags().StringP("role", "r", "", "Role: Ejecutivo, Gerente or Tecnico")
	_ = userRegisterCmd.MarkFlagRequired("password")
	_ = userRegisterCmd.MarkFlagRequired("name")
	_ = userRegisterCmd.MarkFlagRequired("role")

	userListCmd.Flags().StringP("role", "r", "", "Filter by role")
	userListCmd.Flags().Bool("all", false, "Include deactivated accounts")

	userCmd.AddCommand(userRegisterCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userDeactivateCmd)
}

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	return userCmd
}
