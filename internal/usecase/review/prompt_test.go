package review_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/darkin100/i-am-reviewed/internal/domain"
	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
)

func TestBuildPrompt(t *testing.T) {
	meta := domain.ChangeMetadata{
		Title:        "Add rate limiter",
		Description:  "Token bucket per client.",
		Author:       "jdoe",
		SourceBranch: "feat/rate-limit",
		TargetBranch: "main",
	}

	t.Run("renders metadata and diff", func(t *testing.T) {
		prompt := review.BuildPrompt(meta, "diff --git a/x b/x\n", "")

		assert.Contains(t, prompt, "Review this pull request:")
		assert.Contains(t, prompt, "Title: Add rate limiter")
		assert.Contains(t, prompt, "Description:\nToken bucket per client.")
		assert.Contains(t, prompt, "Branch: feat/rate-limit -> main")
		assert.Contains(t, prompt, "Author: jdoe")
		assert.Contains(t, prompt, "Changes:\ndiff --git a/x b/x")
		assert.True(t, strings.HasSuffix(prompt, "Provide your code review."))
	})

	t.Run("fills placeholders for missing metadata", func(t *testing.T) {
		prompt := review.BuildPrompt(domain.ChangeMetadata{}, "", "")

		assert.Contains(t, prompt, "Title: N/A")
		assert.Contains(t, prompt, "Description:\nNo description provided")
		assert.Contains(t, prompt, "Branch: N/A -> N/A")
		assert.Contains(t, prompt, "Author: N/A")
	})

	t.Run("includes extra instructions", func(t *testing.T) {
		prompt := review.BuildPrompt(meta, "", "Focus on concurrency bugs.")
		assert.Contains(t, prompt, "Instructions: Focus on concurrency bugs.")
	})
}

func TestTruncateDiff(t *testing.T) {
	t.Run("under budget untouched", func(t *testing.T) {
		diff, truncated := review.TruncateDiff("short diff", 1000)
		assert.False(t, truncated)
		assert.Equal(t, "short diff", diff)
	})

	t.Run("zero budget disables truncation", func(t *testing.T) {
		diff, truncated := review.TruncateDiff(strings.Repeat("x", 100), 0)
		assert.False(t, truncated)
		assert.Len(t, diff, 100)
	})

	t.Run("cuts at a line boundary", func(t *testing.T) {
		input := "line one\nline two\nline three\n"
		diff, truncated := review.TruncateDiff(input, len("line one\nline tw"))

		assert.True(t, truncated)
		assert.True(t, strings.HasPrefix(diff, "line one"))
		assert.NotContains(t, diff, "line tw")
		assert.Contains(t, diff, "[diff truncated]")
	})

	t.Run("never splits a multi-byte rune", func(t *testing.T) {
		input := strings.Repeat("é", 10) // 2 bytes per rune, no newline
		diff, truncated := review.TruncateDiff(input, 5)

		assert.True(t, truncated)
		assert.True(t, utf8.ValidString(diff))
		assert.True(t, strings.HasPrefix(diff, "éé"))
		assert.Contains(t, diff, "[diff truncated]")
	})
}

func TestStripMarkdownWrapper(t *testing.T) {
	t.Run("removes markdown wrapper", func(t *testing.T) {
		got := review.StripMarkdownWrapper("```markdown\n## Review\nLooks good\n```")
		assert.Equal(t, "## Review\nLooks good", got)
	})

	t.Run("removes bare wrapper", func(t *testing.T) {
		got := review.StripMarkdownWrapper("```\n## Review\nLooks good\n```")
		assert.Equal(t, "## Review\nLooks good", got)
	})

	t.Run("removes nested wrappers", func(t *testing.T) {
		got := review.StripMarkdownWrapper("```markdown\n```md\n## Review\n```\n```")
		assert.Equal(t, "## Review", got)
	})

	t.Run("clean text untouched", func(t *testing.T) {
		got := review.StripMarkdownWrapper("## Review\nLooks good")
		assert.Equal(t, "## Review\nLooks good", got)
	})

	t.Run("inner code blocks survive", func(t *testing.T) {
		input := "```markdown\n## Review\n```go\nfunc main() {}\n```\nLooks good\n```"
		got := review.StripMarkdownWrapper(input)
		assert.Contains(t, got, "```go\nfunc main() {}\n```")
		assert.False(t, strings.HasPrefix(got, "```markdown"))
	})

	t.Run("handles missing closing fence", func(t *testing.T) {
		got := review.StripMarkdownWrapper("```markdown\n## Review")
		assert.Equal(t, "## Review", got)
	})
}
