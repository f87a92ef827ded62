package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gaigemini/dockling/internal/config"
	"github.com/gaigemini/dockling/internal/engine"
)

// resolveCredentials assembles registry credentials for a push.
//
// Resolution order: command-line flags, then configuration (including
// DOCKLING_REGISTRY_USERNAME / DOCKLING_REGISTRY_PASSWORD environment
// variables), then an interactive prompt for whatever is still missing.
// The password prompt reads without echo. The prompt blocks until the
// operator answers; no timeout is applied.
//
// Parameters:
//   - cfg: Resolved configuration (registry host and optional credentials)
//   - username: Username from the --username flag (may be empty)
//   - password: Password from the --password flag (may be empty)
//
// Returns:
//   - Credentials ready for engine.Login and engine.Push
//   - An error if reading from the terminal fails
func resolveCredentials(cfg *config.Config, username, password string) (engine.Credentials, error) {
	creds := engine.Credentials{
		Username:      username,
		Password:      password,
		ServerAddress: cfg.Registry.Host,
	}

	if creds.Username == "" {
		creds.Username = cfg.Registry.Username
	}
	if creds.Password == "" {
		creds.Password = cfg.Registry.Password
	}

	reader := bufio.NewReader(os.Stdin)

	if creds.Username == "" {
		fmt.Printf("Username for %s: ", cfg.Registry.Host)
		line, err := reader.ReadString('\n')
		if err != nil {
			return engine.Credentials{}, fmt.Errorf("failed to read username: %w", err)
		}
		creds.Username = strings.TrimSpace(line)
	}

	if creds.Password == "" {
		fmt.Printf("Password for %s@%s: ", creds.Username, cfg.Registry.Host)
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return engine.Credentials{}, fmt.Errorf("failed to read password: %w", err)
		}
		creds.Password = string(secret)
	}

	return creds, nil
}
