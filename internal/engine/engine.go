// Package engine wraps the Docker SDK operations needed by the deployment
// commands: daemon reachability, image build, tag, registry login, push,
// and the best-effort GPU runtime probe.
//
// The package owns a single Docker API client created from the environment
// (DOCKER_HOST, DOCKER_TLS_VERIFY, DOCKER_CERT_PATH) with API version
// negotiation, matching how the daemon is reached elsewhere in production.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	"golang.org/x/term"

	"github.com/gaigemini/dockling/internal/logger"
)

// pingTimeout bounds the daemon reachability probe. Everything else runs
// without an internal deadline; builds and pushes take as long as they take.
const pingTimeout = 5 * time.Second

// Credentials identify an account on a container registry.
type Credentials struct {
	// Username is the registry account name.
	Username string

	// Password is the registry account password or token.
	Password string

	// ServerAddress is the registry host the credentials belong to.
	ServerAddress string
}

// authConfig converts the credentials to the Docker API auth structure.
func (c Credentials) authConfig() registry.AuthConfig {
	return registry.AuthConfig{
		Username:      c.Username,
		Password:      c.Password,
		ServerAddress: c.ServerAddress,
	}
}

// Engine provides image build, tag and push operations against the local
// container engine.
//
// All methods are safe for sequential use from a single goroutine, which is
// how the deployment sequence drives them. The zero value is not usable;
// create instances with New.
type Engine struct {
	client *client.Client

	// out receives streamed build/push progress. Defaults to stdout.
	out io.Writer
}

// New creates an Engine backed by a Docker API client configured from the
// environment with API version negotiation.
//
// Client creation does not contact the daemon; reachability is verified
// separately by Ping so the deployment sequence can surface an engine
// outage as its own fatal step.
//
// Returns:
//   - An initialized Engine
//   - An error if the client cannot be constructed (malformed DOCKER_HOST etc.)
func New() (*Engine, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Engine{
		client: cli,
		out:    os.Stdout,
	}, nil
}

// SetOutput redirects streamed build/push progress. Used by tests.
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Ping verifies the container engine daemon is reachable.
//
// The probe is bounded by a 5-second timeout. A failure here is fatal for
// every deployment command: nothing can be built or pushed without the
// daemon.
func (e *Engine) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := e.client.Ping(ctx); err != nil {
		return fmt.Errorf("Docker daemon is not accessible: %w", err)
	}

	logger.Debug("Docker daemon reachable")
	return nil
}

// Close releases the underlying Docker client resources.
func (e *Engine) Close() error {
	return e.client.Close()
}

// streamMessages renders a Docker JSON message stream (build or push
// progress) to the engine output, returning the server-side error embedded
// in the stream, if any.
func (e *Engine) streamMessages(r io.Reader) error {
	out := e.out
	if out == nil {
		out = os.Stdout
	}

	var fd uintptr
	isTerminal := false
	if f, ok := out.(*os.File); ok {
		fd = f.Fd()
		isTerminal = term.IsTerminal(int(fd))
	}

	if err := jsonmessage.DisplayJSONMessagesStream(r, out, fd, isTerminal, nil); err != nil {
		var jsonErr *jsonmessage.JSONError
		if errors.As(err, &jsonErr) {
			return fmt.Errorf("%s", jsonErr.Message)
		}
		return err
	}

	return nil
}
