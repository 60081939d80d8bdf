package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"notesum/internal/api"
	"notesum/internal/ocr"
	"notesum/internal/services/tesseract"
	"notesum/internal/summarizer"
	"notesum/internal/summary"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var summarize bool
	var length int
	var tags []string

	cmd := &cobra.Command{
		Use:   "scan IMAGE...",
		Short: "Extract text from images, optionally summarizing it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerValue()
			recognizer := tesseract.NewCLI(
				tesseract.WithBinary(cfg.OCRBinary()),
				tesseract.WithLanguage(cfg.OCR.Language),
				tesseract.WithTimeout(time.Duration(cfg.OCR.TimeoutSeconds)*time.Second),
			)

			var texts []string
			analyzer := ocr.NewAnalyzer(recognizer, func(path, text string) {
				texts = append(texts, strings.TrimSpace(text))
				if !summarize {
					fmt.Fprintf(cmd.OutOrStdout(), "==> %s <==\n%s\n", path, strings.TrimSpace(text))
				}
			}, logger)

			if err := analyzer.ScanFiles(cmd.Context(), args); err != nil {
				return err
			}
			if len(texts) == 0 {
				return errors.New("no text recognized in the provided images")
			}
			if !summarize {
				return nil
			}

			return ctx.withStore(func(store *summary.Store) error {
				svc, err := ctx.newSummarizer(store)
				if err != nil {
					return err
				}
				record, err := svc.Summarize(cmd.Context(), summarizer.Request{
					Text:   strings.Join(texts, "\n\n"),
					Length: length,
					Tags:   splitTags(tags),
				})
				if err != nil {
					return fmt.Errorf("%s (%w)", summarizer.UserMessage(err), err)
				}
				printSummary(cmd.OutOrStdout(), api.FromSummary(record), shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&summarize, "summarize", "s", false, "Summarize the recognized text and store it")
	cmd.Flags().IntVarP(&length, "length", "l", 0, "Approximate summary length in words (50-350)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Tag to attach when summarizing")
	return cmd
}
