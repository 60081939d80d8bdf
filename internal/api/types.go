package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Summary describes a stored note in a transport-friendly format.
type Summary struct {
	ID             int64    `json:"id"`
	OriginalText   string   `json:"original_text"`
	SummarizedText string   `json:"summarized_text"`
	Bullets        []string `json:"bullets"`
	CreatedAt      string   `json:"created_at,omitempty"`
	Timestamp      int64    `json:"timestamp"`
	Pinned         bool     `json:"is_pinned"`
	Tags           []string `json:"tags"`
}

// SummaryList wraps a filtered collection of summaries.
type SummaryList struct {
	Query     string    `json:"query,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	Total     int       `json:"total"`
	Tags      []string  `json:"tags"`
	Summaries []Summary `json:"summaries"`
}

// SummaryResponse wraps a single summary.
type SummaryResponse struct {
	Summary Summary `json:"summary"`
}

// TagsResponse lists the distinct tags across all summaries.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// SummarizeRequest is the body accepted by POST /api/summarize.
type SummarizeRequest struct {
	Text   string   `json:"text"`
	Length int      `json:"length,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// UpdateRequest is the body accepted by PATCH /api/summaries/{id}. Nil
// fields are left untouched.
type UpdateRequest struct {
	SummarizedText *string   `json:"summarized_text,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
}

// PinResponse reports the new pinned state.
type PinResponse struct {
	ID     int64 `json:"id"`
	Pinned bool  `json:"is_pinned"`
}

// ErrorResponse is the body returned for failed requests. Message is suitable
// for display.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DependencyStatus captures availability of an external dependency.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// Status aggregates runtime information for API consumers.
type Status struct {
	Running      bool               `json:"running"`
	PID          int                `json:"pid"`
	DatabasePath string             `json:"database_path"`
	Summaries    int                `json:"summaries"`
	Model        string             `json:"model"`
	LLMReady     bool               `json:"llm_ready"`
	Busy         bool               `json:"busy"`
	LastState    string             `json:"last_state"`
	LastError    string             `json:"last_error,omitempty"`
	Dependencies []DependencyStatus `json:"dependencies"`
}
