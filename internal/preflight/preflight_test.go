package preflight_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"notesum/internal/config"
	"notesum/internal/preflight"
	"notesum/internal/summary"
	"notesum/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	if result := preflight.CheckDirectoryAccess("data", dir); !result.Passed {
		t.Fatalf("expected pass for temp dir, got %s", result.Detail)
	}

	missing := filepath.Join(dir, "missing")
	if result := preflight.CheckDirectoryAccess("data", missing); result.Passed || !strings.Contains(result.Detail, "missing") {
		t.Fatalf("expected missing failure, got %+v", result)
	}

	file := filepath.Join(dir, "file")
	testsupport.WriteFile(t, file, 1)
	if result := preflight.CheckDirectoryAccess("data", file); result.Passed || !strings.Contains(result.Detail, "not a directory") {
		t.Fatalf("expected not-a-directory failure, got %+v", result)
	}
}

func TestCheckDirectoryAccessReadOnly(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root bypasses permission checks")
	}
	dir := filepath.Join(t.TempDir(), "ro")
	if err := os.Mkdir(dir, 0o500); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })
	if result := preflight.CheckDirectoryAccess("data", dir); result.Passed {
		t.Fatal("expected read-only directory to fail")
	}
}

func TestCheckDatabase(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewSummary(t, store, "a", "- b", "", 0)

	result := preflight.CheckDatabase(context.Background(), store)
	if !result.Passed {
		t.Fatalf("expected healthy database, got %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "1 summaries") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

type brokenStore struct{}

func (brokenStore) CheckHealth(context.Context) (summary.DatabaseHealth, error) {
	return summary.DatabaseHealth{DBPath: "/tmp/x.db", DatabaseExists: true}, os.ErrPermission
}

func TestCheckDatabaseError(t *testing.T) {
	if result := preflight.CheckDatabase(context.Background(), brokenStore{}); result.Passed {
		t.Fatal("expected failure")
	}
}

func TestCheckLLMKey(t *testing.T) {
	if result := preflight.CheckLLMKey("LLM", config.LLMConfig{}); result.Passed {
		t.Fatal("expected missing key to fail")
	}
	if result := preflight.CheckLLMKey("LLM", config.LLMConfig{APIKey: "k", Model: "m"}); !result.Passed {
		t.Fatalf("expected configured key to pass, got %s", result.Detail)
	}
}

func TestCheckLLMLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	good := preflight.CheckLLM(context.Background(), "LLM", config.LLMConfig{APIKey: "good", BaseURL: srv.URL, Model: "m", TimeoutSeconds: 5})
	if !good.Passed {
		t.Fatalf("expected live check to pass, got %s", good.Detail)
	}
	bad := preflight.CheckLLM(context.Background(), "LLM", config.LLMConfig{APIKey: "bad", BaseURL: srv.URL, Model: "m", TimeoutSeconds: 5})
	if bad.Passed || bad.Detail != "API key rejected" {
		t.Fatalf("expected rejected key, got %+v", bad)
	}
}

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	deps := preflight.CheckBinaries([]preflight.Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Blank"},
	})
	if len(deps) != 3 {
		t.Fatalf("expected 3 results, got %d", len(deps))
	}
	if !deps[0].Available || deps[0].Path != present || deps[0].Detail != "" {
		t.Fatalf("unexpected present result %+v", deps[0])
	}
	if deps[1].Available || deps[1].Detail == "" {
		t.Fatalf("unexpected missing result %+v", deps[1])
	}
	if deps[2].Detail != "command not configured" {
		t.Fatalf("unexpected blank result %+v", deps[2])
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries(""))
	store := testsupport.MustOpenStore(t, cfg)

	report := preflight.RunAll(context.Background(), cfg, store, preflight.Options{})
	if len(report.Results) != 4 {
		t.Fatalf("expected 4 results, got %+v", report.Results)
	}
	if !report.Ready() {
		t.Fatalf("expected ready report, got %+v", report)
	}
	if len(report.Dependencies) != 1 || !report.Dependencies[0].Available {
		t.Fatalf("expected stubbed OCR binary, got %+v", report.Dependencies)
	}

	cfg.LLM.APIKey = ""
	if preflight.RunAll(context.Background(), cfg, store, preflight.Options{}).Ready() {
		t.Fatal("expected missing key to make report not ready")
	}
}
