package models

// ProjectEntry represents one showcased project
type ProjectEntry struct {
	Name string `json:"name" koanf:"name" validate:"required"`
	Repo string `json:"repo" koanf:"repo"` // "owner/project", may be malformed
}

// ResolvedLinks holds the URLs derived from a ProjectEntry's repo
type ResolvedLinks struct {
	RawReadmeURL string `json:"raw_readme_url,omitempty"`
	HasRawReadme bool   `json:"-"`
	RepoPageURL  string `json:"repo_page_url,omitempty"`
	HasRepoPage  bool   `json:"-"`
}

// ProjectResponse is a project entry as sent to the client
type ProjectResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Repo  string `json:"repo"`
	ResolvedLinks
}

// Link is a footer link
type Link struct {
	Name string `json:"name" koanf:"name" validate:"required"`
	Href string `json:"href" koanf:"href" validate:"required,url"`
}
