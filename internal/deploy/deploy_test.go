package deploy

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaigemini/dockling/internal/config"
	"github.com/gaigemini/dockling/internal/engine"
)

// fakeEngine records the operations the deployer drives, in order, and
// fails whichever steps the test arms.
type fakeEngine struct {
	calls []string

	pingErr  error
	gpuErr   error
	buildErr error
	loginErr error
	pushErr  error

	buildOpts engine.BuildOptions
	tagSource string
	tagTarget string
	pushed    []string
}

func (f *fakeEngine) Ping(ctx context.Context) error {
	f.calls = append(f.calls, "ping")
	return f.pingErr
}

func (f *fakeEngine) ProbeGPU(ctx context.Context, probeImage string) error {
	f.calls = append(f.calls, "gpu")
	return f.gpuErr
}

func (f *fakeEngine) Build(ctx context.Context, opts engine.BuildOptions) error {
	f.calls = append(f.calls, "build")
	f.buildOpts = opts
	return f.buildErr
}

func (f *fakeEngine) Tag(ctx context.Context, source, target string) error {
	f.calls = append(f.calls, "tag")
	f.tagSource = source
	f.tagTarget = target
	return nil
}

func (f *fakeEngine) Login(ctx context.Context, creds engine.Credentials) error {
	f.calls = append(f.calls, "login")
	return f.loginErr
}

func (f *fakeEngine) Push(ctx context.Context, ref string, creds engine.Credentials) error {
	f.calls = append(f.calls, "push "+ref)
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, ref)
	return nil
}

func newTestDeployer(eng ContainerEngine) (*Deployer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return New(eng, config.NewDefaultConfig(), out), out
}

func TestRunDefaultVersionSkipsLatestAlias(t *testing.T) {
	eng := &fakeEngine{}
	d, _ := newTestDeployer(eng)

	pushed, err := d.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Equal(t, []string{"registry.gai.co.id/gai/docling_api:latest"}, pushed)
	require.Equal(t, []string{
		"ping",
		"gpu",
		"build",
		"login",
		"push registry.gai.co.id/gai/docling_api:latest",
	}, eng.calls)
	require.NotContains(t, eng.calls, "tag")
}

func TestRunVersionPushesBothTags(t *testing.T) {
	eng := &fakeEngine{}
	d, out := newTestDeployer(eng)

	pushed, err := d.Run(context.Background(), Options{Version: "1.2.3"})
	require.NoError(t, err)

	require.Equal(t, []string{
		"registry.gai.co.id/gai/docling_api:1.2.3",
		"registry.gai.co.id/gai/docling_api:latest",
	}, pushed)

	require.Equal(t, []string{"registry.gai.co.id/gai/docling_api:1.2.3"}, eng.buildOpts.Tags)
	require.Equal(t, "registry.gai.co.id/gai/docling_api:1.2.3", eng.tagSource)
	require.Equal(t, "registry.gai.co.id/gai/docling_api:latest", eng.tagTarget)

	// The summary lists every pushed reference.
	require.Contains(t, out.String(), "registry.gai.co.id/gai/docling_api:1.2.3")
	require.Contains(t, out.String(), "registry.gai.co.id/gai/docling_api:latest")
	require.Contains(t, out.String(), "docker pull registry.gai.co.id/gai/docling_api:1.2.3")
}

func TestRunEngineUnreachableAbortsBeforeBuild(t *testing.T) {
	eng := &fakeEngine{pingErr: errors.New("daemon down")}
	d, _ := newTestDeployer(eng)

	_, err := d.Run(context.Background(), Options{Version: "1.2.3"})
	require.Error(t, err)

	require.Equal(t, []string{"ping"}, eng.calls)
}

func TestRunGPUFailureIsAdvisory(t *testing.T) {
	eng := &fakeEngine{gpuErr: errors.New("no nvidia runtime")}
	d, _ := newTestDeployer(eng)

	pushed, err := d.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Contains(t, eng.calls, "build")
	require.Len(t, pushed, 1)
}

func TestRunBuildFailureAbortsBeforeLogin(t *testing.T) {
	eng := &fakeEngine{buildErr: errors.New("RUN step failed")}
	d, _ := newTestDeployer(eng)

	_, err := d.Run(context.Background(), Options{})
	require.Error(t, err)

	require.NotContains(t, eng.calls, "login")
	require.Empty(t, eng.pushed)
}

func TestRunLoginFailureAbortsBeforePush(t *testing.T) {
	eng := &fakeEngine{loginErr: errors.New("unauthorized")}
	d, _ := newTestDeployer(eng)

	_, err := d.Run(context.Background(), Options{Version: "1.2.3"})
	require.Error(t, err)

	require.Contains(t, eng.calls, "build")
	require.Empty(t, eng.pushed)
}

func TestRunSkipPushStopsAfterTagging(t *testing.T) {
	eng := &fakeEngine{}
	d, out := newTestDeployer(eng)

	pushed, err := d.Run(context.Background(), Options{Version: "1.2.3", SkipPush: true})
	require.NoError(t, err)
	require.Empty(t, pushed)

	require.Equal(t, []string{"ping", "gpu", "build", "tag"}, eng.calls)
	require.Contains(t, out.String(), "Build complete")
}

func TestRunSkipBuildPushesExistingImage(t *testing.T) {
	eng := &fakeEngine{}
	d, _ := newTestDeployer(eng)

	pushed, err := d.Run(context.Background(), Options{Version: "1.2.3", SkipBuild: true})
	require.NoError(t, err)

	require.Equal(t, []string{
		"ping",
		"tag",
		"login",
		"push registry.gai.co.id/gai/docling_api:1.2.3",
		"push registry.gai.co.id/gai/docling_api:latest",
	}, eng.calls)
	require.Len(t, pushed, 2)
	require.NotContains(t, eng.calls, "gpu")
	require.NotContains(t, eng.calls, "build")
}

func TestRunRejectsInvalidVersion(t *testing.T) {
	eng := &fakeEngine{}
	d, _ := newTestDeployer(eng)

	_, err := d.Run(context.Background(), Options{Version: "not a tag"})
	require.Error(t, err)
	require.Empty(t, eng.calls)
}
