package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/darkin100/i-am-reviewed/internal/adapter/hostcli"
	"github.com/darkin100/i-am-reviewed/internal/config"
	"github.com/darkin100/i-am-reviewed/internal/domain"
	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
)

// GitLab reviews merge requests through the glab CLI.
type GitLab struct {
	runner hostcli.Runner
	env    config.Snapshot
}

var _ review.Host = (*GitLab)(nil)

var (
	gitlabRepository = config.Requirement{Names: []string{"CI_PROJECT_PATH", "REPOSITORY"}}
	gitlabNumber     = config.Requirement{Names: []string{"CI_MERGE_REQUEST_IID", "PR_NUMBER"}}
	gitlabToken      = config.Requirement{Names: []string{"GITLAB_TOKEN"}}
)

// NewGitLab constructs the GitLab adapter over the given runner and
// environment snapshot.
func NewGitLab(runner hostcli.Runner, env config.Snapshot) *GitLab {
	return &GitLab{runner: runner, env: env}
}

// Name implements review.Host.
func (g *GitLab) Name() string { return "gitlab" }

// MissingEnv implements review.Host.
func (g *GitLab) MissingEnv() []string {
	return missingFrom(g.env, gitlabRepository, gitlabNumber, gitlabToken)
}

// Target implements review.Host.
func (g *GitLab) Target() (domain.ReviewTarget, error) {
	return resolveTarget(g.env, gitlabRepository, gitlabNumber)
}

// host is the GitLab instance hostname, from the CI-provided server host or
// the public default.
func (g *GitLab) host() string {
	if host, ok := g.env.Lookup("CI_SERVER_HOST"); ok {
		return host
	}
	return "gitlab.com"
}

// SetupAuth implements review.Host. glab keeps its own credential store, so the
// token is registered once up front. Without a token the adapter relies on an
// existing local glab session.
func (g *GitLab) SetupAuth(ctx context.Context) error {
	token, ok := gitlabToken.Resolve(g.env)
	if !ok {
		return nil
	}
	_, err := g.run(ctx, "auth", "login", "--token", token, "--hostname", g.host())
	if err != nil {
		return fmt.Errorf("authenticating glab: %w", err)
	}
	return nil
}

func (g *GitLab) run(ctx context.Context, args ...string) (string, error) {
	result, err := g.runner.Run(ctx, hostcli.Command{
		Executable: "glab",
		Args:       args,
		Env: map[string]string{
			"NO_COLOR": "1",
			"CLICOLOR": "0",
		},
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &hostcli.ExitError{Executable: "glab", ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	return result.Stdout, nil
}

type gitlabMergeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      struct {
		Username string `json:"username"`
	} `json:"author"`
	SourceBranch string `json:"source_branch"`
	TargetBranch string `json:"target_branch"`
}

// FetchMetadata implements review.Host.
func (g *GitLab) FetchMetadata(ctx context.Context, target domain.ReviewTarget) (domain.ChangeMetadata, error) {
	out, err := g.run(ctx,
		"mr", "view", fmt.Sprintf("%d", target.Number),
		"-R", target.Repository,
		"-F", "json",
	)
	if err != nil {
		return domain.ChangeMetadata{}, fmt.Errorf("fetching merge request metadata: %w", err)
	}

	var mr gitlabMergeRequest
	if err := json.Unmarshal([]byte(out), &mr); err != nil {
		return domain.ChangeMetadata{}, fmt.Errorf("parsing glab mr view output: %w", err)
	}

	return domain.ChangeMetadata{
		Title:        mr.Title,
		Description:  mr.Description,
		Author:       mr.Author.Username,
		SourceBranch: mr.SourceBranch,
		TargetBranch: mr.TargetBranch,
	}, nil
}

// FetchDiff implements review.Host.
func (g *GitLab) FetchDiff(ctx context.Context, target domain.ReviewTarget) (string, error) {
	out, err := g.run(ctx, "mr", "diff", fmt.Sprintf("%d", target.Number), "-R", target.Repository)
	if err != nil {
		return "", fmt.Errorf("fetching merge request diff: %w", err)
	}
	return out, nil
}

// PostComment implements review.Host.
func (g *GitLab) PostComment(ctx context.Context, target domain.ReviewTarget, body string) error {
	_, err := g.run(ctx,
		"mr", "note", fmt.Sprintf("%d", target.Number),
		"-R", target.Repository,
		"--message", body,
	)
	if err != nil {
		return fmt.Errorf("posting merge request note: %w", err)
	}
	return nil
}

// ReviewURL implements review.Host.
func (g *GitLab) ReviewURL(target domain.ReviewTarget) string {
	return fmt.Sprintf("https://%s/%s/-/merge_requests/%d", g.host(), target.Repository, target.Number)
}
