// Package registry provides direct registry access that does not go through
// the container engine daemon: listing published tags and probing registry
// reachability.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/remote/transport"

	"github.com/gaigemini/dockling/internal/logger"
)

// Client queries a single image repository on a registry.
type Client struct {
	host       string
	repository string
	keychain   authn.Keychain
}

// NewClient creates a registry client for host/repository. Credentials are
// resolved from the standard docker config keychain (~/.docker/config.json),
// so a prior `docker login` or `dockling deploy` login is honored.
func NewClient(host, repository string) *Client {
	return &Client{
		host:       host,
		repository: repository,
		keychain:   authn.DefaultKeychain,
	}
}

// repo parses the configured host/repository into a repository reference.
func (c *Client) repo() (name.Repository, error) {
	repo, err := name.NewRepository(fmt.Sprintf("%s/%s", c.host, c.repository))
	if err != nil {
		return name.Repository{}, fmt.Errorf("invalid repository %s/%s: %w", c.host, c.repository, err)
	}
	return repo, nil
}

// ListTags returns the tags currently published for the repository, sorted
// lexically.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	repo, err := c.repo()
	if err != nil {
		return nil, err
	}

	tags, err := remote.List(repo,
		remote.WithContext(ctx),
		remote.WithAuthFromKeychain(c.keychain),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags for %s: %w", repo.Name(), err)
	}

	sort.Strings(tags)
	return tags, nil
}

// Ping reports whether the registry is reachable.
//
// Any HTTP-level answer from the registry counts as reachable, including
// authentication or authorization errors: those prove the host is up and
// speaking the registry protocol. Only transport failures (DNS, refused
// connection, TLS) are reported as unreachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListTags(ctx)
	if err == nil {
		return nil
	}

	var terr *transport.Error
	if errors.As(err, &terr) {
		logger.Debug("Registry %s answered with status %d", c.host, terr.StatusCode)
		return nil
	}

	return fmt.Errorf("registry %s is not reachable: %w", c.host, err)
}
