package tesseract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"notesum/internal/services"
)

var commandContext = exec.CommandContext

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary = strings.TrimSpace(binary); binary != "" {
			c.binary = binary
		}
	}
}

// WithLanguage selects the tesseract language pack.
func WithLanguage(lang string) Option {
	return func(c *CLI) {
		if lang = strings.TrimSpace(lang); lang != "" {
			c.language = lang
		}
	}
}

// WithTimeout bounds each recognition run.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// CLI wraps the tesseract binary.
type CLI struct {
	binary   string
	language string
	timeout  time.Duration
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "tesseract", language: "eng", timeout: 30 * time.Second}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary returns the executable the client runs.
func (c *CLI) Binary() string {
	return c.binary
}

// Recognize extracts text from the image at path.
func (c *CLI) Recognize(ctx context.Context, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", services.Wrap(services.ErrValidation, "tesseract", "recognize", "image path required", nil)
	}

	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	cmd := commandContext(runCtx, c.binary, path, "stdout", "-l", c.language) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", services.Wrap(services.ErrTimeout, "tesseract", "recognize", fmt.Sprintf("exceeded %s", c.timeout), err)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "command failed"
		}
		return "", services.Wrap(services.ErrExternalTool, "tesseract", "recognize", detail, err)
	}
	return normalizeOutput(stdout.String()), nil
}

// normalizeOutput trims trailing whitespace per line, drops the form feed
// tesseract appends after each page and collapses leading/trailing blank
// lines.
func normalizeOutput(raw string) string {
	raw = strings.ReplaceAll(raw, "\f", "")
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
