package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/taller/internal/config"
	"github.com/example/taller/internal/wire"
)

// LoginCmd returns the login command.
func LoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and store the session for subsequent commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := args[0]

			if password == "" {
				fmt.Print("Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			identity, err := wire.AuthService().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			dir, err := config.DefaultDir()
			if err != nil {
				return err
			}
			session := &config.Session{
				UserID:      identity.UserID,
				Role:        identity.Role,
				DisplayName: identity.DisplayName,
			}
			if err := config.SaveSession(dir, session); err != nil {
				return err
			}

			fmt.Printf("✓ Sesión iniciada: %s (%s)\n", identity.DisplayName, roleLabel(identity.Role))
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

// LogoutCmd returns the logout command.
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.DefaultDir()
			if err != nil {
				return err
			}
			if err := config.ClearSession(dir); err != nil {
				return err
			}
			fmt.Println("✓ Sesión cerrada")
			return nil
		},
	}
}

// WhoamiCmd returns the whoami command.
func WhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := currentSession()
			if err != nil {
				return err
			}
			if session == nil {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Printf("%s (%s) [%s]\n", session.DisplayName, roleLabel(session.Role), session.UserID)
			return nil
		},
	}
}
