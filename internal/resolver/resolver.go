// Package resolver maps "owner/project" identifiers to raw-content and
// repository page URLs.
package resolver

import (
	"strings"

	"hassak.dev/internal/models"
)

const (
	DefaultRawBaseURL  = "https://raw.githubusercontent.com"
	DefaultCodeBaseURL = "https://github.com"
	DefaultBranch      = "main"
)

// Resolver builds URLs against a raw-content host and a code host.
// The zero value uses the public defaults.
type Resolver struct {
	RawBaseURL  string
	CodeBaseURL string
	Branch      string
}

// New returns a Resolver, substituting defaults for empty arguments.
func New(rawBaseURL, codeBaseURL, branch string) Resolver {
	return Resolver{
		RawBaseURL:  rawBaseURL,
		CodeBaseURL: codeBaseURL,
		Branch:      branch,
	}
}

// RawReadmeURL returns the README.md URL on the resolver's branch.
func (r Resolver) RawReadmeURL(repo string) (string, bool) {
	return r.rawReadmeURL(repo, r.Branch)
}

// RepoPageURL returns the human-facing repository URL.
func (r Resolver) RepoPageURL(repo string) (string, bool) {
	owner, project, ok := split(repo)
	if !ok {
		return "", false
	}
	return orDefault(r.CodeBaseURL, DefaultCodeBaseURL) + "/" + owner + "/" + project, true
}

// Resolve derives both links for repo.
func (r Resolver) Resolve(repo string) models.ResolvedLinks {
	var links models.ResolvedLinks
	links.RawReadmeURL, links.HasRawReadme = r.RawReadmeURL(repo)
	links.RepoPageURL, links.HasRepoPage = r.RepoPageURL(repo)
	return links
}

func (r Resolver) rawReadmeURL(repo, branch string) (string, bool) {
	owner, project, ok := split(repo)
	if !ok {
		return "", false
	}
	base := orDefault(r.RawBaseURL, DefaultRawBaseURL)
	return base + "/" + owner + "/" + project + "/" + orDefault(branch, DefaultBranch) + "/README.md", true
}

// RawReadmeURL resolves repo against the public raw-content host. An empty
// branch means "main".
func RawReadmeURL(repo, branch string) (string, bool) {
	return Resolver{}.rawReadmeURL(repo, branch)
}

// RepoPageURL resolves repo against the public code host.
func RepoPageURL(repo string) (string, bool) {
	return Resolver{}.RepoPageURL(repo)
}

// split takes the first two "/" separated segments; anything after the
// second separator is ignored.
func split(repo string) (owner, project string, ok bool) {
	parts := strings.SplitN(repo, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return strings.TrimSuffix(v, "/")
}
