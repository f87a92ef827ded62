package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/gaigemini/dockling/internal/logger"
)

// Profile identifies the environment the API server runs in.
type Profile string

const (
	// ProfileDev is the development profile: debug on, auth disabled.
	ProfileDev Profile = "dev"

	// ProfileTest is the test profile: isolated upload directory.
	ProfileTest Profile = "test"

	// ProfileProd is the production profile: debug must stay disabled.
	ProfileProd Profile = "prod"
)

// EnvSettings holds the environment-dependent settings used by the local
// bootstrap. Values are resolved from per-profile defaults, then overridden
// by variables from .env / env/<profile>.env and the process environment.
type EnvSettings struct {
	// Profile is the active environment profile.
	Profile Profile

	// Debug enables auto-reload and verbose server behavior.
	Debug bool

	// LogLevel is the server log level name (DEBUG, INFO, WARNING, ...).
	LogLevel string

	// UploadDir is the directory for uploaded documents, relative to the
	// project directory.
	UploadDir string
}

// LoadEnv resolves environment settings for the project directory.
//
// Resolution order mirrors the API server's own configuration loader:
//  1. dir/.env is loaded (without overriding existing process variables)
//     to pick up the APP_ENV profile selector.
//  2. Per-profile defaults are applied (dev/test/prod).
//  3. dir/env/<profile>.env is loaded, again without overriding the
//     process environment.
//  4. UPLOAD_DIR, DEBUG and LOG_LEVEL variables override the defaults.
//
// An unknown APP_ENV value falls back to the dev profile with a warning.
// Enabling DEBUG under the prod profile is a fatal misconfiguration.
func LoadEnv(dir string) (*EnvSettings, error) {
	if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
		logger.Debug("Loaded environment selector from %s", filepath.Join(dir, ".env"))
	}

	profile := Profile(strings.ToLower(os.Getenv("APP_ENV")))
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
	case "":
		profile = ProfileDev
	default:
		logger.Warn("Unknown APP_ENV %q, falling back to dev profile", profile)
		profile = ProfileDev
	}

	settings := defaultsForProfile(profile)

	envFile := filepath.Join(dir, "env", string(profile)+".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load environment file %s: %w", envFile, err)
		}
		logger.Debug("Loaded environment file %s", envFile)
	} else {
		logger.Warn("Environment file %s not found, using defaults", envFile)
	}

	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		settings.UploadDir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		settings.LogLevel = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DEBUG value %q: %w", v, err)
		}
		settings.Debug = debug
	}

	if settings.Profile == ProfileProd && settings.Debug {
		return nil, fmt.Errorf("DEBUG must be disabled in production")
	}

	return settings, nil
}

// defaultsForProfile returns the built-in settings for a profile, matching
// the API server's dev/test/prod configuration classes.
func defaultsForProfile(profile Profile) *EnvSettings {
	switch profile {
	case ProfileTest:
		return &EnvSettings{
			Profile:   ProfileTest,
			Debug:     true,
			LogLevel:  "CRITICAL",
			UploadDir: "test_uploads",
		}
	case ProfileProd:
		return &EnvSettings{
			Profile:   ProfileProd,
			Debug:     false,
			LogLevel:  "WARNING",
			UploadDir: "uploads",
		}
	default:
		return &EnvSettings{
			Profile:   ProfileDev,
			Debug:     true,
			LogLevel:  "DEBUG",
			UploadDir: "uploads",
		}
	}
}
