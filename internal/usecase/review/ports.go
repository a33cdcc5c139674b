package review

import (
	"context"

	"github.com/darkin100/i-am-reviewed/internal/domain"
)

// Host is the outbound port for a Git-hosting platform (GitHub, GitLab).
// Implementations are bound to an environment snapshot at construction and
// serve exactly one review run.
type Host interface {
	// Name is the canonical lowercase platform name.
	Name() string

	// MissingEnv reports the platform's unsatisfied environment
	// requirements, as the names to surface to the user.
	MissingEnv() []string

	// Target resolves the repository and change number from the
	// environment. Call only after validation passes.
	Target() (domain.ReviewTarget, error)

	// SetupAuth prepares CLI authentication before the first operation.
	SetupAuth(ctx context.Context) error

	// FetchMetadata retrieves the change's title, description, author, and
	// branches.
	FetchMetadata(ctx context.Context, target domain.ReviewTarget) (domain.ChangeMetadata, error)

	// FetchDiff retrieves the unified diff of the change.
	FetchDiff(ctx context.Context, target domain.ReviewTarget) (string, error)

	// PostComment publishes body as a top-level comment on the change.
	PostComment(ctx context.Context, target domain.ReviewTarget, body string) error

	// ReviewURL is the web URL of the change.
	ReviewURL(target domain.ReviewTarget) string
}

// GenerateRequest is the payload for one model call.
type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
}

// Generator is the outbound port for the review model.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// Redactor scrubs secrets from text before it leaves the process.
type Redactor interface {
	Redact(input string) string
}
