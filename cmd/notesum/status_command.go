package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"notesum/internal/preflight"
	"notesum/internal/summary"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var checkLLM bool
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check configuration, database and external dependencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *summary.Store) error {
				report := preflight.RunAll(cmd.Context(), ctx.configValue(), store, preflight.Options{LiveLLM: checkLLM})
				if asJSON {
					return writeJSON(cmd, struct {
						Ready bool `json:"ready"`
						preflight.Report
					}{Ready: report.Ready(), Report: report})
				}

				out := cmd.OutOrStdout()
				color := shouldColorize(out)
				fmt.Fprintln(out, renderSectionHeader("Checks", color))
				for _, result := range report.Results {
					kind := statusOK
					if !result.Passed {
						kind = statusError
					}
					fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, color))
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, renderSectionHeader("Dependencies", color))
				for _, dep := range report.Dependencies {
					kind := statusOK
					detail := dep.Path
					if !dep.Available {
						kind = statusError
						if dep.Optional {
							kind = statusWarn
						}
						detail = dep.Detail + " (" + dep.Description + ")"
					}
					fmt.Fprintln(out, renderStatusLine(dep.Name, kind, detail, color))
				}
				fmt.Fprintln(out)
				fmt.Fprintf(out, "Ready: %s\n", yesNo(report.Ready()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&checkLLM, "check-llm", false, "Send a test request to the LLM API")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
