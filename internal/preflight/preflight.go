package preflight

import (
	"context"

	"notesum/internal/config"
	"notesum/internal/summary"
)

// Result reports the outcome of a single check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Report aggregates all checks.
type Report struct {
	Results      []Result     `json:"results"`
	Dependencies []Dependency `json:"dependencies"`
}

// Ready reports whether every check and every required dependency passed.
func (r Report) Ready() bool {
	for _, result := range r.Results {
		if !result.Passed {
			return false
		}
	}
	for _, dep := range r.Dependencies {
		if !dep.Optional && !dep.Available {
			return false
		}
	}
	return true
}

// HealthChecker is satisfied by *summary.Store.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (summary.DatabaseHealth, error)
}

// Options selects optional checks.
type Options struct {
	// LiveLLM issues a minimal completion request instead of only checking
	// that a key is configured.
	LiveLLM bool
}

// RunAll executes every check for cfg. A nil store skips the database check.
func RunAll(ctx context.Context, cfg *config.Config, store HealthChecker, opts Options) Report {
	if cfg == nil {
		return Report{}
	}
	results := []Result{
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if store != nil {
		results = append(results, CheckDatabase(ctx, store))
	}
	if opts.LiveLLM {
		results = append(results, CheckLLM(ctx, "LLM", cfg.GetLLM()))
	} else {
		results = append(results, CheckLLMKey("LLM", cfg.GetLLM()))
	}
	return Report{Results: results, Dependencies: CheckDependencies(cfg)}
}
