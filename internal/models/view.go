package models

// ProjectView is one project card of a page view
type ProjectView struct {
	ProjectResponse
	Readme ReadmeState `json:"readme"`
}

// SelectionResponse reports the keyboard selection of a page view
type SelectionResponse struct {
	Index *int `json:"index"` // nil when nothing is selected
}

// PageViewResponse is the full state of a page view
type PageViewResponse struct {
	ID        string            `json:"id"`
	Projects  []ProjectView     `json:"projects"`
	Selection SelectionResponse `json:"selection"`
}
