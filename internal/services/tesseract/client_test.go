package tesseract_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"notesum/internal/services"
	"notesum/internal/services/tesseract"
	"notesum/internal/testsupport"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-tesseract")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRecognizeReturnsNormalizedStdout(t *testing.T) {
	script := writeScript(t, "printf 'line one  \\nline two\\n\\f'\n")
	image := filepath.Join(t.TempDir(), "note.png")
	testsupport.WriteFile(t, image, 16)

	cli := tesseract.NewCLI(tesseract.WithBinary(script))
	text, err := cli.Recognize(context.Background(), image)
	if err != nil {
		t.Fatalf("Recognize returned error: %v", err)
	}
	if text != "line one\nline two" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestRecognizePassesArguments(t *testing.T) {
	script := writeScript(t, "echo \"$@\"\n")
	cli := tesseract.NewCLI(tesseract.WithBinary(script), tesseract.WithLanguage("deu"))
	text, err := cli.Recognize(context.Background(), "/tmp/page.png")
	if err != nil {
		t.Fatalf("Recognize returned error: %v", err)
	}
	if text != "/tmp/page.png stdout -l deu" {
		t.Fatalf("unexpected arguments %q", text)
	}
}

func TestRecognizeFailureIsExternalToolError(t *testing.T) {
	script := writeScript(t, "echo 'cannot read image' >&2\nexit 1\n")
	cli := tesseract.NewCLI(tesseract.WithBinary(script))
	_, err := cli.Recognize(context.Background(), "missing.png")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestRecognizeRequiresPath(t *testing.T) {
	cli := tesseract.NewCLI()
	if _, err := cli.Recognize(context.Background(), " "); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
