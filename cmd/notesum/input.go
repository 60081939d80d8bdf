package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const maxInputBytes = 4 << 20

// readInput resolves note text from --file, a "-" argument (stdin) or the
// joined positional arguments, in that order.
func readInput(cmd *cobra.Command, args []string, file string) (string, error) {
	if file = strings.TrimSpace(file); file != "" {
		if len(args) > 0 {
			return "", errors.New("pass either --file or text arguments, not both")
		}
		if file == "-" {
			return readAll(cmd.InOrStdin())
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] == "-" {
		return readAll(cmd.InOrStdin())
	}
	return strings.Join(args, " "), nil
}

func readAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func splitTags(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
