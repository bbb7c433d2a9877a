package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Session is the persisted login state for the CLI. It survives between
// invocations so staff log in once per shift, not once per command.
type Session struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"` // Ejecutivo, Gerente or Tecnico
	DisplayName string `json:"display_name"`
}

// DefaultDir returns the directory holding the session file and the
// database, ~/.taller.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".taller"), nil
}

// LoadSession reads session.json from the given directory. A missing file
// means nobody is logged in and returns (nil, nil).
func LoadSession(dir string) (*Session, error) {
	path := filepath.Join(dir, "session.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return &session, nil
}

// SaveSession writes session.json to the given directory.
func SaveSession(dir string, session *Session) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	path := filepath.Join(dir, "session.json")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// ClearSession removes the session file. Clearing an absent session is not
// an error.
func ClearSession(dir string) error {
	path := filepath.Join(dir, "session.json")
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
