// Package git reads repository identity from the local checkout.
package git

import (
	"fmt"
	"strings"

	goGit "github.com/go-git/go-git/v5"
)

// OriginRepository derives the owner/name repository identifier from the
// checkout's origin remote. CI jobs always run inside a checkout, so this
// lets the repository environment variable be omitted.
func OriginRepository(repoDir string) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}

	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("resolve origin remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}

	repository, err := parseRemoteURL(urls[0])
	if err != nil {
		return "", err
	}
	return repository, nil
}

// parseRemoteURL extracts the owner/name path from an https or ssh remote URL.
func parseRemoteURL(raw string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	// scp-like ssh form: git@host:owner/name
	if !strings.Contains(trimmed, "://") {
		if _, path, ok := strings.Cut(trimmed, ":"); ok {
			return validatePath(path, raw)
		}
		return "", fmt.Errorf("unrecognized remote URL %q", raw)
	}

	// URL form: scheme://host/owner/name
	rest := trimmed[strings.Index(trimmed, "://")+3:]
	if _, path, ok := strings.Cut(rest, "/"); ok {
		return validatePath(path, raw)
	}
	return "", fmt.Errorf("unrecognized remote URL %q", raw)
}

func validatePath(path, raw string) (string, error) {
	path = strings.Trim(path, "/")
	if path == "" || !strings.Contains(path, "/") {
		return "", fmt.Errorf("remote URL %q has no owner/name path", raw)
	}
	return path, nil
}
