package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const credFileName = "credentials.json"

// tokenEnvVar overrides the credentials file when set; useful for CI and
// for driving the client with a pre-issued token.
const tokenEnvVar = "INVOICEGEN_TOKEN"

type credentials struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

func envToken() string {
	return strings.TrimSpace(os.Getenv(tokenEnvVar))
}

func credFilePath(dir string) string {
	return filepath.Join(dir, credFileName)
}

// readCredentials returns nil without error when no file exists.
func readCredentials(dir string) (*credentials, error) {
	b, err := os.ReadFile(credFilePath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return &c, nil
}

func writeCredentials(dir, token string) error {
	if token == "" {
		return fmt.Errorf("empty token")
	}
	// ensure the state dir exists with 0700
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	c := credentials{Token: token, CreatedAt: time.Now()}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	// write with 0600 (owner-only)
	if err := os.WriteFile(credFilePath(dir), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func deleteCredentials(dir string) error {
	if err := os.Remove(credFilePath(dir)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}
