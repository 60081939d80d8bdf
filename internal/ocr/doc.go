// Package ocr feeds images through a text recognizer.
//
// Analyzer admits at most one recognition at a time: an image submitted while
// another is being processed is dropped rather than queued. Recognition
// failures are logged and otherwise ignored, and the text callback fires only
// for non-blank results.
package ocr
