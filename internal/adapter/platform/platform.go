// Package platform adapts Git-hosting platforms (GitHub, GitLab) behind a
// common interface. All platform interaction goes through the official CLI
// (gh, glab) via the hostcli runner; the CLIs own authentication, pagination,
// and API versioning.
package platform

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/darkin100/i-am-reviewed/internal/adapter/hostcli"
	"github.com/darkin100/i-am-reviewed/internal/config"
	"github.com/darkin100/i-am-reviewed/internal/domain"
	"github.com/darkin100/i-am-reviewed/internal/usecase/review"
)

// UnknownProviderError indicates a --provider value that names no supported
// platform.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q (supported: github, gitlab)", e.Name)
}

// Resolve maps a provider name to its platform adapter. Matching is
// case-insensitive so CI configs can say GitHub or GITLAB.
func Resolve(name string, runner hostcli.Runner, env config.Snapshot) (review.Host, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "github":
		return NewGitHub(runner, env), nil
	case "gitlab":
		return NewGitLab(runner, env), nil
	default:
		return nil, &UnknownProviderError{Name: name}
	}
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes terminal color codes. gh colorizes output in some
// environments even with NO_COLOR set, which corrupts JSON parsing.
func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}

// missingFrom collects the reported names of unsatisfied requirements,
// preserving order.
func missingFrom(env config.Snapshot, requirements ...config.Requirement) []string {
	var missing []string
	for _, req := range requirements {
		if _, ok := req.Resolve(env); !ok {
			missing = append(missing, req.MissingName())
		}
	}
	return missing
}

// resolveTarget builds a ReviewTarget from the repository and number
// requirements.
func resolveTarget(env config.Snapshot, repo, number config.Requirement) (domain.ReviewTarget, error) {
	repository, ok := repo.Resolve(env)
	if !ok {
		return domain.ReviewTarget{}, fmt.Errorf("%s is not set", repo.MissingName())
	}
	raw, ok := number.Resolve(env)
	if !ok {
		return domain.ReviewTarget{}, fmt.Errorf("%s is not set", number.MissingName())
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return domain.ReviewTarget{}, fmt.Errorf("parsing change number %q: %w", raw, err)
	}
	return domain.NewReviewTarget(repository, n)
}
