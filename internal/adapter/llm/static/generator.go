// Package static provides a canned generator that returns a fixed review
// comment. Useful for exercising the full pipeline without a live model, and
// as the orchestrator's test double.
package static

import (
	"context"

	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
)

// DryRunComment is the review posted when the static backend is selected
// and no custom comment is configured.
const DryRunComment = "Overall assessment: Looks good\n\n" +
	"This review was produced by the static backend; no model was consulted."

// Generator implements the usecase Generator port with a fixed response.
type Generator struct {
	comment string
}

var _ review.Generator = (*Generator)(nil)

// NewGenerator constructs a static Generator returning comment.
func NewGenerator(comment string) *Generator {
	return &Generator{comment: comment}
}

// Generate returns the canned comment regardless of the request.
func (g *Generator) Generate(_ context.Context, _ review.GenerateRequest) (string, error) {
	return g.comment, nil
}
