package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"notesum/internal/export"
	"notesum/internal/fileutil"
	"notesum/internal/history"
	"notesum/internal/summary"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var output string
	var query string
	var tag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export summaries as Markdown, JSON or YAML",
		Long: "Export summaries as Markdown, JSON or YAML.\n\n" +
			"Writes to stdout unless --output is given. When --output names a directory\n" +
			"a file name such as notesum-work-20240301.md is chosen automatically.",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *summary.Store) error {
				records, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				doc := export.Build(records, history.Criteria{Query: query, Tag: tag}, time.Now())

				target := strings.TrimSpace(output)
				if target == "" || target == "-" {
					return export.Write(cmd.OutOrStdout(), format, doc)
				}
				if info, err := os.Stat(target); err == nil && info.IsDir() {
					target = filepath.Join(target, export.FileName(format, doc))
				}
				if err := fileutil.WriteAtomic(target, 0o644, func(w io.Writer) error {
					return export.Write(w, format, doc)
				}); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d summaries to %s\n", doc.Count, target)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "F", "markdown", "Output format: markdown, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory (default stdout)")
	cmd.Flags().StringVarP(&query, "search", "s", "", "Only export summaries matching this search")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only export summaries with this tag")
	return cmd
}
