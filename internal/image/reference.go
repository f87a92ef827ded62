// Package image provides image reference construction and validation for
// the deployment commands.
//
// References are assembled from the configured registry host, repository
// name and a version tag, and validated against the distribution reference
// grammar before any engine operation uses them.
package image

import (
	"fmt"

	"github.com/distribution/reference"
)

// LatestTag is the floating tag aliasing the most recent deployment.
const LatestTag = "latest"

// Reference identifies a fully qualified, tagged image.
type Reference struct {
	// Host is the registry hostname (e.g. "registry.gai.co.id").
	Host string

	// Repository is the repository name within the registry
	// (e.g. "gai/docling_api").
	Repository string

	// Version is the tag (e.g. "1.2.3" or "latest").
	Version string
}

// NewReference builds a Reference from its parts. An empty version defaults
// to the latest tag.
func NewReference(host, repository, version string) Reference {
	if version == "" {
		version = LatestTag
	}
	return Reference{
		Host:       host,
		Repository: repository,
		Version:    version,
	}
}

// String returns the fully qualified reference, host/repository:version.
func (r Reference) String() string {
	return fmt.Sprintf("%s/%s:%s", r.Host, r.Repository, r.Version)
}

// Name returns the reference without its tag, host/repository.
func (r Reference) Name() string {
	return fmt.Sprintf("%s/%s", r.Host, r.Repository)
}

// IsLatest reports whether the reference carries the floating latest tag.
func (r Reference) IsLatest() bool {
	return r.Version == LatestTag
}

// Latest returns the same image name re-tagged as latest.
func (r Reference) Latest() Reference {
	return Reference{
		Host:       r.Host,
		Repository: r.Repository,
		Version:    LatestTag,
	}
}

// Validate checks the reference against the distribution reference grammar.
// The reference must be fully qualified (registry host included) and carry
// a syntactically valid tag.
func (r Reference) Validate() error {
	named, err := reference.ParseNamed(r.String())
	if err != nil {
		return fmt.Errorf("invalid image reference %q: %w", r.String(), err)
	}
	if _, ok := named.(reference.Tagged); !ok {
		return fmt.Errorf("invalid image reference %q: missing tag", r.String())
	}
	return nil
}
