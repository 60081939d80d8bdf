package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"notesum/internal/api"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiDim    = "\x1b[2m"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(enabled bool, color, value string) string {
	if !enabled || value == "" {
		return value
	}
	return color + value + ansiReset
}

// printSummary renders one summary as a heading followed by its bullets.
func printSummary(out io.Writer, s api.Summary, color bool) {
	header := fmt.Sprintf("#%d  %s", s.ID, formatTimestamp(time.UnixMilli(s.Timestamp)))
	if s.Pinned {
		header += "  [pinned]"
	}
	fmt.Fprintln(out, colorize(color, ansiBold, header))
	if len(s.Tags) > 0 {
		fmt.Fprintln(out, colorize(color, ansiDim, "tags: "+strings.Join(s.Tags, ", ")))
	}
	for _, bullet := range s.Bullets {
		fmt.Fprintf(out, "  • %s\n", bullet)
	}
}
