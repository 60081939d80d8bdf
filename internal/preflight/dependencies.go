package preflight

import (
	"fmt"
	"os/exec"
	"strings"

	"notesum/internal/config"
)

// Requirement names an external binary.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Dependency reports whether a Requirement was found on PATH.
type Dependency struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Path        string `json:"path,omitempty"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// Requirements lists the binaries notesum can use for cfg.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Tesseract",
			Command:     cfg.OCRBinary(),
			Description: "Extracts text from images for notesum scan",
			Optional:    true,
		},
	}
}

// CheckDependencies resolves the binaries notesum can use for cfg.
func CheckDependencies(cfg *config.Config) []Dependency {
	return CheckBinaries(Requirements(cfg))
}

// CheckBinaries resolves each requirement with exec.LookPath.
func CheckBinaries(requirements []Requirement) []Dependency {
	out := make([]Dependency, 0, len(requirements))
	for _, req := range requirements {
		dep := Dependency{
			Name:        req.Name,
			Command:     strings.TrimSpace(req.Command),
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if dep.Command == "" {
			dep.Detail = "command not configured"
			out = append(out, dep)
			continue
		}
		path, err := exec.LookPath(dep.Command)
		if err != nil {
			dep.Detail = fmt.Sprintf("binary %q not found", dep.Command)
			out = append(out, dep)
			continue
		}
		dep.Path = path
		dep.Available = true
		out = append(out, dep)
	}
	return out
}
