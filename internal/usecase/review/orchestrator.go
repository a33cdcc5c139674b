package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"

	"github.com/darkin100/i-am-reviewed/internal/config"
	"github.com/darkin100/i-am-reviewed/internal/domain"
)

// Stage sentinels. The run always exits 0 or 1; these let logs and tests
// tell the failing stage apart.
var (
	ErrAuth     = errors.New("auth setup failed")
	ErrMetadata = errors.New("metadata fetch failed")
	ErrDiff     = errors.New("diff fetch failed")
	ErrModel    = errors.New("review generation failed")
	ErrPost     = errors.New("comment post failed")
)

// OrchestratorDeps wires the orchestrator's collaborators.
type OrchestratorDeps struct {
	Host      Host
	Generator Generator
	Redactor  Redactor // optional
	Env       config.Snapshot

	// MaxDiffBytes bounds the diff included in the prompt. Zero disables
	// truncation.
	MaxDiffBytes int

	// Instructions are extra reviewer instructions from config.
	Instructions string
}

// Orchestrator runs the single-shot review flow: validate, fetch, prompt,
// generate, post. One attempt per stage; the first failure ends the run.
type Orchestrator struct {
	deps OrchestratorDeps
}

// NewOrchestrator wires the orchestrator dependencies.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{deps: deps}
}

func (o *Orchestrator) validateDependencies() error {
	if o.deps.Host == nil {
		return errors.New("host platform is required")
	}
	if o.deps.Generator == nil {
		return errors.New("generator is required")
	}
	// Redactor is optional
	return nil
}

// Run executes one review. Nothing is executed before the environment
// validates, so a misconfigured run fails with the complete list of missing
// variables and no side effects.
func (o *Orchestrator) Run(ctx context.Context) (domain.ReviewResult, error) {
	if err := o.validateDependencies(); err != nil {
		return domain.ReviewResult{}, err
	}

	log := clog.FromContext(ctx)

	if err := ValidateEnvironment(o.deps.Env, o.deps.Host); err != nil {
		return domain.ReviewResult{}, err
	}

	target, err := o.deps.Host.Target()
	if err != nil {
		return domain.ReviewResult{}, fmt.Errorf("resolving review target: %w", err)
	}
	log = log.With("platform", o.deps.Host.Name(), "repository", target.Repository, "number", target.Number)

	if err := o.deps.Host.SetupAuth(ctx); err != nil {
		return domain.ReviewResult{}, fmt.Errorf("%w: %w", ErrAuth, err)
	}

	log.InfoContext(ctx, "fetching change metadata")
	meta, err := o.deps.Host.FetchMetadata(ctx, target)
	if err != nil {
		return domain.ReviewResult{}, fmt.Errorf("%w: %w", ErrMetadata, err)
	}
	log.InfoContext(ctx, "metadata fetched", "title", meta.Title, "author", meta.Author)

	log.InfoContext(ctx, "fetching diff")
	diff, err := o.deps.Host.FetchDiff(ctx, target)
	if err != nil {
		return domain.ReviewResult{}, fmt.Errorf("%w: %w", ErrDiff, err)
	}

	diff, truncated := TruncateDiff(diff, o.deps.MaxDiffBytes)
	if truncated {
		log.WarnContext(ctx, "diff truncated to byte budget", "max_bytes", o.deps.MaxDiffBytes)
	}

	prompt := BuildPrompt(meta, diff, o.deps.Instructions)
	if o.deps.Redactor != nil {
		prompt = o.deps.Redactor.Redact(prompt)
	}

	log.InfoContext(ctx, "generating review")
	comment, err := o.deps.Generator.Generate(ctx, GenerateRequest{
		SystemInstruction: SystemInstruction,
		Prompt:            prompt,
	})
	if err != nil {
		return domain.ReviewResult{}, fmt.Errorf("%w: %w", ErrModel, err)
	}

	comment = StripMarkdownWrapper(comment)
	if comment == "" {
		return domain.ReviewResult{}, fmt.Errorf("%w: model returned an empty review", ErrModel)
	}

	log.InfoContext(ctx, "posting review comment")
	if err := o.deps.Host.PostComment(ctx, target, comment); err != nil {
		return domain.ReviewResult{}, fmt.Errorf("%w: %w", ErrPost, err)
	}

	url := o.deps.Host.ReviewURL(target)
	log.InfoContext(ctx, "review posted", "url", url)

	return domain.ReviewResult{
		Target:    target,
		Metadata:  meta,
		Comment:   comment,
		URL:       url,
		DiffBytes: len(diff),
		Truncated: truncated,
	}, nil
}
