// Package domain holds the provider-neutral types shared across the review
// pipeline.
package domain

import (
	"fmt"
	"strings"
)

// ReviewTarget identifies the pull/merge request to review. It is constructed
// once per process invocation and never mutated afterwards.
type ReviewTarget struct {
	// Repository in owner/name (GitHub) or group/project (GitLab) form.
	Repository string

	// Number is the PR number or MR IID.
	Number int
}

// NewReviewTarget validates and constructs a ReviewTarget.
func NewReviewTarget(repository string, number int) (ReviewTarget, error) {
	repository = strings.TrimSpace(repository)
	if repository == "" {
		return ReviewTarget{}, fmt.Errorf("repository identifier is required")
	}
	if number <= 0 {
		return ReviewTarget{}, fmt.Errorf("review target number must be positive, got %d", number)
	}
	return ReviewTarget{Repository: repository, Number: number}, nil
}

// ChangeMetadata is the normalized PR/MR descriptor. Both platform adapters
// produce the same shape; nothing downstream branches on the origin platform.
type ChangeMetadata struct {
	Title        string
	Description  string
	Author       string
	SourceBranch string
	TargetBranch string
}

// ReviewResult captures the outcome of a completed review run.
type ReviewResult struct {
	Target   ReviewTarget
	Metadata ChangeMetadata

	// Comment is the markdown body that was posted.
	Comment string

	// URL points at the reviewed PR/MR on the hosting platform.
	URL string

	// DiffBytes is the size of the diff that was reviewed, after any
	// truncation applied by the orchestrator.
	DiffBytes int

	// Truncated reports whether the diff was cut to fit the size budget.
	Truncated bool
}
