package summarizer

import (
	"errors"
	"fmt"

	"notesum/internal/services"
)

// User-facing failure messages.
const (
	MessageRequestFailed = "API call failed. Check connection or API Key."
	MessageEmptyResponse = "Failed to get summary. The response was empty."
)

var (
	// ErrEmptyInput reports blank input; no model call is made.
	ErrEmptyInput = fmt.Errorf("%w: nothing to summarize", services.ErrValidation)
	// ErrBusy reports that another summarization is in flight.
	ErrBusy = fmt.Errorf("%w: a summary is already being generated", services.ErrBusy)
)

// Failure is returned when the model call fails or yields no text. Message is
// safe to show to users; Err carries the underlying cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return fmt.Sprintf("%s: %v", f.Message, f.Err)
}

func (f *Failure) Unwrap() []error {
	if f.Err == nil {
		return []error{services.ErrExternalTool}
	}
	return []error{services.ErrExternalTool, f.Err}
}

// UserMessage extracts the message to show for err.
func UserMessage(err error) string {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
