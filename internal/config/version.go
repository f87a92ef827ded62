package config

// Build information. Populated at build time via -ldflags:
//
//	go build -ldflags "-X github.com/gaigemini/dockling/internal/config.Version=v1.2.3 \
//	  -X github.com/gaigemini/dockling/internal/config.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/gaigemini/dockling/internal/config.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the dockling client version.
	Version = "dev"

	// GitCommit is the git commit the binary was built from.
	GitCommit = "unknown"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)
