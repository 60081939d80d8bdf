// Package tesseract wraps the tesseract command-line OCR engine.
//
// CLI.Recognize runs `tesseract IMAGE stdout -l LANG` and returns the
// recognized text. Failures are tagged with services.ErrExternalTool, or
// services.ErrTimeout when the per-image deadline expires.
package tesseract
