package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"notesum/internal/api"
	"notesum/internal/summarizer"
	"notesum/internal/summary"
)

func newSummarizeCommand(ctx *commandContext) *cobra.Command {
	var file string
	var length int
	var tags []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize [text|-]",
		Short: "Summarize note text into bullet points and store the result",
		Long: "Summarize note text into bullet points and store the result.\n\n" +
			"Text comes from the arguments, from stdin when the only argument is \"-\", or from --file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args, file)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *summary.Store) error {
				svc, err := ctx.newSummarizer(store)
				if err != nil {
					return err
				}
				cfg := ctx.configValue()
				effective := cfg.ClampLength(length)
				if !asJSON {
					fmt.Fprintf(cmd.ErrOrStderr(), "Summarizing (%s, ~%d words)...\n", summarizer.LengthLabel(effective), effective)
				}
				record, err := svc.Summarize(cmd.Context(), summarizer.Request{
					Text:   text,
					Length: length,
					Tags:   splitTags(tags),
				})
				if err != nil {
					if errors.Is(err, summarizer.ErrEmptyInput) {
						return errors.New("nothing to summarize: provide text, a file, or pipe input with -")
					}
					if msg := summarizer.UserMessage(err); msg != err.Error() {
						return fmt.Errorf("%s (%w)", msg, err)
					}
					return err
				}
				dto := api.FromSummary(record)
				if asJSON {
					return writeJSON(cmd, api.SummaryResponse{Summary: dto})
				}
				printSummary(cmd.OutOrStdout(), dto, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read note text from a file (- for stdin)")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "Approximate summary length in words (50-350)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag to attach (repeatable or comma separated)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output the stored summary as JSON")
	return cmd
}
