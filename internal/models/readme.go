package models

// ReadmeStatus is the lifecycle stage of one README retrieval
type ReadmeStatus string

const (
	ReadmeIdle     ReadmeStatus = "idle"
	ReadmeFetching ReadmeStatus = "fetching"
	ReadmeLoaded   ReadmeStatus = "loaded"
	ReadmeFailed   ReadmeStatus = "failed"
)

// ReadmeState is a snapshot of one project's README loader
type ReadmeState struct {
	Status     ReadmeStatus `json:"status"`
	Content    string       `json:"content,omitempty"`
	HasContent bool         `json:"has_content"`
	Visible    bool         `json:"visible"`
}
