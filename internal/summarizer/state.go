package summarizer

import "notesum/internal/summary"

// Status enumerates the lifecycle of the most recent request.
type Status string

const (
	StatusInitial Status = "initial"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is the observable outcome of the most recent request. Summary is set
// on success and Message on error.
type State struct {
	Status  Status
	Summary *summary.Summary
	Message string
}
