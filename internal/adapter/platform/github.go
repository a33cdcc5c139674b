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

// GitHub reviews pull requests through the gh CLI.
type GitHub struct {
	runner hostcli.Runner
	env    config.Snapshot
}

var _ review.Host = (*GitHub)(nil)

// Environment requirements, in precedence order. The platform-specific name
// wins when both are set.
var (
	githubRepository = config.Requirement{Names: []string{"GITHUB_REPOSITORY", "REPOSITORY"}}
	githubNumber     = config.Requirement{Names: []string{"PR_NUMBER"}}
	githubToken      = config.Requirement{Names: []string{"GH_TOKEN", "GITHUB_TOKEN"}}
)

// NewGitHub constructs the GitHub adapter over the given runner and
// environment snapshot.
func NewGitHub(runner hostcli.Runner, env config.Snapshot) *GitHub {
	return &GitHub{runner: runner, env: env}
}

// Name implements review.Host.
func (g *GitHub) Name() string { return "github" }

// MissingEnv implements review.Host.
func (g *GitHub) MissingEnv() []string {
	return missingFrom(g.env, githubRepository, githubNumber, githubToken)
}

// Target implements review.Host.
func (g *GitHub) Target() (domain.ReviewTarget, error) {
	return resolveTarget(g.env, githubRepository, githubNumber)
}

// SetupAuth implements review.Host. gh reads GH_TOKEN from the environment, so
// authentication is per-command env passthrough and there is nothing to run
// up front.
func (g *GitHub) SetupAuth(ctx context.Context) error {
	return nil
}

// commandEnv builds the per-command environment: the token for gh plus
// color suppression so JSON output stays parseable.
func (g *GitHub) commandEnv() map[string]string {
	env := map[string]string{
		"NO_COLOR": "1",
		"CLICOLOR": "0",
	}
	if token, ok := githubToken.Resolve(g.env); ok {
		env["GH_TOKEN"] = token
	}
	return env
}

// run executes gh with the given arguments and returns stripped stdout. A
// non-zero exit becomes a hostcli.ExitError carrying gh's stderr verbatim.
func (g *GitHub) run(ctx context.Context, args ...string) (string, error) {
	result, err := g.runner.Run(ctx, hostcli.Command{
		Executable: "gh",
		Args:       args,
		Env:        g.commandEnv(),
	})
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", &hostcli.ExitError{Executable: "gh", ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	return stripANSI(result.Stdout), nil
}

type githubPullRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
	HeadRefName string `json:"headRefName"`
	BaseRefName string `json:"baseRefName"`
}

// FetchMetadata implements review.Host.
func (g *GitHub) FetchMetadata(ctx context.Context, target domain.ReviewTarget) (domain.ChangeMetadata, error) {
	out, err := g.run(ctx,
		"-R", target.Repository,
		"pr", "view", fmt.Sprintf("%d", target.Number),
		"--json", "title,body,author,headRefName,baseRefName",
	)
	if err != nil {
		return domain.ChangeMetadata{}, fmt.Errorf("fetching pull request metadata: %w", err)
	}

	var pr githubPullRequest
	if err := json.Unmarshal([]byte(out), &pr); err != nil {
		return domain.ChangeMetadata{}, fmt.Errorf("parsing gh pr view output: %w", err)
	}

	return domain.ChangeMetadata{
		Title:        pr.Title,
		Description:  pr.Body,
		Author:       pr.Author.Login,
		SourceBranch: pr.HeadRefName,
		TargetBranch: pr.BaseRefName,
	}, nil
}

// FetchDiff implements review.Host.
func (g *GitHub) FetchDiff(ctx context.Context, target domain.ReviewTarget) (string, error) {
	out, err := g.run(ctx, "-R", target.Repository, "pr", "diff", fmt.Sprintf("%d", target.Number))
	if err != nil {
		return "", fmt.Errorf("fetching pull request diff: %w", err)
	}
	return out, nil
}

// PostComment implements review.Host.
func (g *GitHub) PostComment(ctx context.Context, target domain.ReviewTarget, body string) error {
	_, err := g.run(ctx,
		"-R", target.Repository,
		"pr", "comment", fmt.Sprintf("%d", target.Number),
		"--body", body,
	)
	if err != nil {
		return fmt.Errorf("posting pull request comment: %w", err)
	}
	return nil
}

// ReviewURL implements review.Host.
func (g *GitHub) ReviewURL(target domain.ReviewTarget) string {
	return fmt.Sprintf("https://github.com/%s/pull/%d", target.Repository, target.Number)
}
