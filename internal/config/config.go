// Package config provides configuration management for the dockling CLI.
//
// This package handles all configuration-related functionality including:
//   - Registry settings (host, repository, credentials)
//   - Build settings (context directory, Dockerfile, GPU probe image)
//   - Bootstrap settings (virtualenv, requirements, server module and port)
//
// Configuration is resolved with viper in the following priority order:
//   1. Environment variables prefixed with DOCKLING_ (e.g. DOCKLING_REGISTRY_HOST)
//   2. A dockling.yaml config file in the working directory or ~/.dockling
//   3. Built-in defaults matching the gai.co.id deployment
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultRegistryHost is the container registry the image is pushed to.
	DefaultRegistryHost = "registry.gai.co.id"

	// DefaultRepository is the image repository within the registry.
	DefaultRepository = "gai/docling_api"

	// DefaultVersion is the tag used when no version argument is given.
	DefaultVersion = "latest"

	// DefaultBuildContext is the directory used as the image build context.
	DefaultBuildContext = "."

	// DefaultDockerfile is the Dockerfile path relative to the build context.
	DefaultDockerfile = "Dockerfile"

	// DefaultGPUProbeImage is the diagnostic image run to detect a
	// GPU-capable container runtime. The probe runs nvidia-smi inside it.
	DefaultGPUProbeImage = "nvidia/cuda:12.2.0-base-ubuntu22.04"

	// DefaultConfigDirName is the per-user configuration directory name.
	DefaultConfigDirName = ".dockling"

	// configFileName is the base name of the config file (dockling.yaml).
	configFileName = "dockling"
)

const (
	// DefaultVenvDir is the virtualenv directory created by bootstrap.
	DefaultVenvDir = "venv"

	// DefaultRequirementsFile is the pip requirements manifest.
	DefaultRequirementsFile = "requirements.txt"

	// DefaultServerModule is the ASGI application started by bootstrap.
	DefaultServerModule = "app.main:app"

	// DefaultServerHost is the address the API server binds to.
	DefaultServerHost = "0.0.0.0"

	// DefaultServerPort is the port the API server listens on. The container
	// image exposes the same port.
	DefaultServerPort = 8000
)

// Config represents the complete dockling configuration.
//
// The zero value is not usable; obtain instances through Load or
// NewDefaultConfig so defaults are populated.
type Config struct {
	// Registry holds registry host, repository and optional credentials.
	Registry RegistryConfig `mapstructure:"registry"`

	// Build holds image build settings.
	Build BuildConfig `mapstructure:"build"`

	// Bootstrap holds local environment bootstrap settings.
	Bootstrap BootstrapConfig `mapstructure:"bootstrap"`
}

// RegistryConfig represents the remote registry configuration.
type RegistryConfig struct {
	// Host is the registry hostname (e.g. "registry.gai.co.id").
	Host string `mapstructure:"host"`

	// Repository is the image repository name (e.g. "gai/docling_api").
	Repository string `mapstructure:"repository"`

	// Username is an optional pre-supplied registry username. When empty,
	// deploy and push prompt for it interactively.
	Username string `mapstructure:"username"`

	// Password is an optional pre-supplied registry password. When empty,
	// deploy and push prompt for it interactively without echo.
	Password string `mapstructure:"password"`
}

// BuildConfig represents the image build configuration.
type BuildConfig struct {
	// Context is the build context directory.
	Context string `mapstructure:"context"`

	// Dockerfile is the Dockerfile path relative to the context.
	Dockerfile string `mapstructure:"dockerfile"`

	// GPUProbeImage is the diagnostic image used for the GPU runtime probe.
	GPUProbeImage string `mapstructure:"gpu_probe_image"`
}

// BootstrapConfig represents the local environment bootstrap configuration.
type BootstrapConfig struct {
	// Dir is the project directory the bootstrap runs in.
	Dir string `mapstructure:"dir"`

	// VenvDir is the virtualenv directory, relative to Dir.
	VenvDir string `mapstructure:"venv_dir"`

	// Requirements is the pip requirements file, relative to Dir.
	Requirements string `mapstructure:"requirements"`

	// Module is the ASGI module passed to uvicorn (e.g. "app.main:app").
	Module string `mapstructure:"module"`

	// Host is the address the server binds to.
	Host string `mapstructure:"host"`

	// Port is the port the server listens on.
	Port int `mapstructure:"port"`
}

// NewDefaultConfig creates a configuration instance with built-in defaults
// and no file or environment resolution. Primarily useful in tests.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load resolves the configuration from defaults, an optional config file,
// and DOCKLING_* environment variables.
//
// Parameters:
//   - configFile: explicit config file path; empty string searches the
//     working directory and ~/.dockling for dockling.yaml
//
// Returns:
//   - The resolved configuration
//   - An error if the config file exists but cannot be read or parsed
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("registry.host", DefaultRegistryHost)
	v.SetDefault("registry.repository", DefaultRepository)
	v.SetDefault("registry.username", "")
	v.SetDefault("registry.password", "")
	v.SetDefault("build.context", DefaultBuildContext)
	v.SetDefault("build.dockerfile", DefaultDockerfile)
	v.SetDefault("build.gpu_probe_image", DefaultGPUProbeImage)
	v.SetDefault("bootstrap.dir", ".")
	v.SetDefault("bootstrap.venv_dir", DefaultVenvDir)
	v.SetDefault("bootstrap.requirements", DefaultRequirementsFile)
	v.SetDefault("bootstrap.module", DefaultServerModule)
	v.SetDefault("bootstrap.host", DefaultServerHost)
	v.SetDefault("bootstrap.port", DefaultServerPort)

	// DOCKLING_REGISTRY_HOST overrides registry.host, and so on.
	v.SetEnvPrefix("DOCKLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, DefaultConfigDirName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if configFile == "" {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.Registry.Host = DefaultRegistryHost
	cfg.Registry.Repository = DefaultRepository
	cfg.Build.Context = DefaultBuildContext
	cfg.Build.Dockerfile = DefaultDockerfile
	cfg.Build.GPUProbeImage = DefaultGPUProbeImage
	cfg.Bootstrap.Dir = "."
	cfg.Bootstrap.VenvDir = DefaultVenvDir
	cfg.Bootstrap.Requirements = DefaultRequirementsFile
	cfg.Bootstrap.Module = DefaultServerModule
	cfg.Bootstrap.Host = DefaultServerHost
	cfg.Bootstrap.Port = DefaultServerPort
}
