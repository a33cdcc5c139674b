package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkin100/i-am-reviewed/internal/adapter/hostcli"
	"github.com/darkin100/i-am-reviewed/internal/adapter/platform"
	"github.com/darkin100/i-am-reviewed/internal/config"
	"github.com/darkin100/i-am-reviewed/internal/domain"
)

// fakeRunner records every command and replays a queue of canned responses.
type fakeRunner struct {
	commands  []hostcli.Command
	responses []fakeResponse
}

type fakeResponse struct {
	result hostcli.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, cmd hostcli.Command) (hostcli.Result, error) {
	f.commands = append(f.commands, cmd)
	if len(f.responses) == 0 {
		return hostcli.Result{}, nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next.result, next.err
}

func (f *fakeRunner) respond(result hostcli.Result, err error) {
	f.responses = append(f.responses, fakeResponse{result: result, err: err})
}

func TestResolve(t *testing.T) {
	runner := &fakeRunner{}
	env := config.SnapshotFromMap(nil)

	t.Run("github", func(t *testing.T) {
		p, err := platform.Resolve("github", runner, env)
		require.NoError(t, err)
		assert.Equal(t, "github", p.Name())
	})

	t.Run("gitlab", func(t *testing.T) {
		p, err := platform.Resolve("gitlab", runner, env)
		require.NoError(t, err)
		assert.Equal(t, "gitlab", p.Name())
	})

	t.Run("matching ignores case and whitespace", func(t *testing.T) {
		p, err := platform.Resolve("  GitHub ", runner, env)
		require.NoError(t, err)
		assert.Equal(t, "github", p.Name())
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := platform.Resolve("bitbucket", runner, env)
		var unknown *platform.UnknownProviderError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "bitbucket", unknown.Name)
		assert.Contains(t, err.Error(), "bitbucket")
	})
}

// Both adapters must normalize their platform's payload into the same
// metadata shape.
func TestMetadataNormalizationEquivalence(t *testing.T) {
	want := domain.ChangeMetadata{
		Title:        "Add rate limiter",
		Description:  "Token bucket per client.",
		Author:       "jdoe",
		SourceBranch: "feat/rate-limit",
		TargetBranch: "main",
	}
	target := domain.ReviewTarget{Repository: "acme/widgets", Number: 42}
	ctx := context.Background()

	ghRunner := &fakeRunner{}
	ghRunner.respond(hostcli.Result{Stdout: `{
		"title": "Add rate limiter",
		"body": "Token bucket per client.",
		"author": {"login": "jdoe"},
		"headRefName": "feat/rate-limit",
		"baseRefName": "main"
	}`}, nil)
	ghMeta, err := platform.NewGitHub(ghRunner, config.SnapshotFromMap(nil)).FetchMetadata(ctx, target)
	require.NoError(t, err)

	glRunner := &fakeRunner{}
	glRunner.respond(hostcli.Result{Stdout: `{
		"title": "Add rate limiter",
		"description": "Token bucket per client.",
		"author": {"username": "jdoe"},
		"source_branch": "feat/rate-limit",
		"target_branch": "main"
	}`}, nil)
	glMeta, err := platform.NewGitLab(glRunner, config.SnapshotFromMap(nil)).FetchMetadata(ctx, target)
	require.NoError(t, err)

	assert.Equal(t, want, ghMeta)
	assert.Equal(t, want, glMeta)
	assert.Equal(t, ghMeta, glMeta)
}
