package ocr

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"notesum/internal/logging"
)

// Recognizer extracts text from an image file.
type Recognizer interface {
	Recognize(ctx context.Context, path string) (string, error)
}

// Analyzer runs a Recognizer with an at-most-one-in-flight guard.
type Analyzer struct {
	recognizer Recognizer
	onText     func(path, text string)
	logger     *slog.Logger
	busy       atomic.Bool
}

// NewAnalyzer builds an analyzer that reports recognized text to onText.
func NewAnalyzer(recognizer Recognizer, onText func(path, text string), logger *slog.Logger) *Analyzer {
	if onText == nil {
		onText = func(string, string) {}
	}
	return &Analyzer{
		recognizer: recognizer,
		onText:     onText,
		logger:     logging.NewComponentLogger(logger, "ocr"),
	}
}

// Busy reports whether a recognition is running.
func (a *Analyzer) Busy() bool {
	return a.busy.Load()
}

// Analyze recognizes the image at path. It returns false without doing any
// work when another recognition is already in flight.
func (a *Analyzer) Analyze(ctx context.Context, path string) bool {
	if !a.busy.CompareAndSwap(false, true) {
		a.logger.Debug("analyzer busy; dropping image", logging.String("path", path))
		return false
	}
	defer a.busy.Store(false)

	text, err := a.recognizer.Recognize(ctx, path)
	if err != nil {
		a.logger.Warn("text recognition failed", logging.String("path", path), logging.Error(err))
		return true
	}
	if strings.TrimSpace(text) == "" {
		a.logger.Debug("no text recognized", logging.String("path", path))
		return true
	}
	a.onText(path, text)
	return true
}

// ScanFiles feeds each path through the analyzer in order. Missing files are
// logged and skipped. It stops early only when ctx is done.
func (a *Analyzer) ScanFiles(ctx context.Context, paths []string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			a.logger.Warn("skipping unreadable image", logging.String("path", path), logging.Error(err))
			continue
		}
		a.Analyze(ctx, path)
	}
	return nil
}
