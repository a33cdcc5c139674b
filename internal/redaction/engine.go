// Package redaction scrubs credential material from text before it leaves
// the process. Diffs and PR descriptions routinely leak tokens; the prompt
// is scrubbed before the model call so secrets never reach a third party.
package redaction

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Engine performs regex-based secret detection and redaction.
type Engine struct {
	patterns []*regexp.Regexp
}

// NewEngine creates a redaction engine with the default secret patterns.
func NewEngine() *Engine {
	return &Engine{patterns: defaultPatterns()}
}

// Redact replaces every detected secret with a stable placeholder. The same
// secret always maps to the same placeholder, so a reviewer can still see
// that two occurrences are the same value.
func (e *Engine) Redact(input string) string {
	placeholders := make(map[string]string)

	for _, pattern := range e.patterns {
		for _, match := range pattern.FindAllString(input, -1) {
			if _, seen := placeholders[match]; seen {
				continue
			}
			placeholders[match] = placeholder(match)
		}
	}

	result := input
	for secret, replacement := range placeholders {
		result = strings.ReplaceAll(result, secret, replacement)
	}
	return result
}

// placeholder derives a stable marker from the secret's hash.
func placeholder(secret string) string {
	hash := sha256.Sum256([]byte(secret))
	return fmt.Sprintf("<REDACTED:%s>", hex.EncodeToString(hash[:])[:8])
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// GitHub tokens (classic and fine-grained)
		`gh[posr]_[a-zA-Z0-9]{20,}`,
		`github_pat_[a-zA-Z0-9_]{20,}`,
		// GitLab personal/project access tokens
		`glpat-[a-zA-Z0-9\-_]{20,}`,
		// Google API keys
		`AIza[0-9A-Za-z\-_]{35}`,
		// AWS Access Key ID
		`AKIA[0-9A-Z]{16}`,
		// OpenAI / Anthropic style keys
		`sk-[a-zA-Z0-9\-]{20,}`,
		// JWT tokens
		`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`,
		// Private keys (PEM format)
		`-----BEGIN\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----[\s\S]*?-----END\s+(?:RSA|EC|OPENSSH|DSA|ENCRYPTED)\s+PRIVATE\s+KEY-----`,
		// Slack tokens
		`xox[baprs]-[a-zA-Z0-9\-]{10,}`,
		// Bearer tokens in headers
		`Bearer\s+[a-zA-Z0-9_\-\.]+`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}
	return compiled
}
