// Package git resolves the target repository identity from a local
// clone, so the gate can be run from inside a checkout without --repo.
package git

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := gogit.PlainOpen(path)
	return err == nil
}

// DetectRepository walks up from the current working directory to a git
// root and parses "owner/name" from the origin remote.
func DetectRepository() (owner, name string, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}

	// Walk up to find the git root
	path := cwd
	for {
		if IsGitRepo(path) {
			break
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", "", fmt.Errorf("%s is not inside a git repository", cwd)
		}
		path = parent
	}

	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return "", "", err
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("repository at %s has no origin remote: %w", path, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote of %s has no URL", path)
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL extracts owner and name from an https, ssh or scp-like
// git remote URL.
func ParseRemoteURL(raw string) (owner, name string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	var path string
	switch {
	case strings.Contains(s, "://"):
		u, parseErr := url.Parse(s)
		if parseErr != nil {
			return "", "", fmt.Errorf("remote url %q: %w", raw, parseErr)
		}
		path = strings.TrimPrefix(u.Path, "/")
	case strings.Contains(s, ":"):
		// scp-like syntax: git@github.com:owner/name
		path = strings.TrimPrefix(s[strings.LastIndex(s, ":")+1:], "/")
	default:
		return "", "", fmt.Errorf("unrecognized remote url %q", raw)
	}

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("remote url %q does not identify owner/name", raw)
	}
	return parts[0], parts[1], nil
}
