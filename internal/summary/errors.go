package summary

import "errors"

// ErrNotFound reports that no summary exists with the requested identifier.
var ErrNotFound = errors.New("summary not found")
