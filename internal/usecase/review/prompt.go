package review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/darkin100/i-am-reviewed/internal/domain"
)

// SystemInstruction steers the model toward a structured, constructive
// review.
const SystemInstruction = `You are a code reviewer analyzing a pull request.

Review the PR for:
- Obvious bugs or logic errors
- Code quality issues (complexity, readability)
- Potential security issues
- Missing error handling
- Best practice violations

Provide a concise review summary with:
1. Overall assessment (Looks good / Needs work / Has issues)
2. Key findings (list 3-5 most important issues)
3. Positive observations (what's done well)

Keep feedback constructive and actionable.
Format your response in markdown for GitHub.`

// truncationNotice marks a diff cut at the byte budget so the model knows it
// is reviewing a prefix.
const truncationNotice = "\n\n[diff truncated]"

// BuildPrompt renders the change metadata and diff into the model prompt.
// Extra instructions from config are prepended when present.
func BuildPrompt(meta domain.ChangeMetadata, diff, instructions string) string {
	var b strings.Builder

	b.WriteString("Review this pull request:\n\n")
	if instructions != "" {
		b.WriteString(fmt.Sprintf("Instructions: %s\n\n", instructions))
	}
	b.WriteString(fmt.Sprintf("Title: %s\n\n", orNA(meta.Title)))
	b.WriteString(fmt.Sprintf("Description:\n%s\n\n", orDefault(meta.Description, "No description provided")))
	b.WriteString(fmt.Sprintf("Branch: %s -> %s\n\n", orNA(meta.SourceBranch), orNA(meta.TargetBranch)))
	b.WriteString(fmt.Sprintf("Author: %s\n\n", orNA(meta.Author)))
	b.WriteString(fmt.Sprintf("Changes:\n%s\n\n", diff))
	b.WriteString("Provide your code review.")

	return b.String()
}

// TruncateDiff enforces the diff byte budget, cutting at a line boundary
// where possible. A zero or negative budget disables truncation.
func TruncateDiff(diff string, maxBytes int) (string, bool) {
	if maxBytes <= 0 || len(diff) <= maxBytes {
		return diff, false
	}

	// Never split a multi-byte rune at the budget.
	for maxBytes > 0 && !utf8.RuneStart(diff[maxBytes]) {
		maxBytes--
	}

	cut := diff[:maxBytes]
	if idx := strings.LastIndexByte(cut, '\n'); idx > 0 {
		cut = cut[:idx]
	}
	return cut + truncationNotice, true
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
