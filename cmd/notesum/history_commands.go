package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"notesum/internal/api"
	"notesum/internal/history"
	"notesum/internal/logging"
	"notesum/internal/summarizer"
	"notesum/internal/summary"
	"notesum/internal/textutil"
	"notesum/internal/watch"
)

const previewRunes = 60

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var query string
	var tag string
	var pinnedOnly bool
	var watchFlag bool
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"ls", "list"},
		Short:   "List stored summaries, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if watchFlag && asJSON {
				return errors.New("--watch cannot be combined with --json")
			}
			return ctx.withStore(func(store *summary.Store) error {
				view := history.NewView(store)
				view.SetQuery(query)
				view.SetTag(strings.TrimSpace(tag))

				render := func(snap history.Snapshot) error {
					records := applyListOptions(snap.Summaries, pinnedOnly, limit)
					if asJSON {
						return writeJSON(cmd, api.SummaryList{
							Query:     snap.Criteria.EffectiveQuery(),
							Tag:       snap.Criteria.Tag,
							Total:     snap.Total,
							Tags:      snap.Tags,
							Summaries: api.FromSummaries(records),
						})
					}
					renderHistory(cmd.OutOrStdout(), snap, records)
					return nil
				}

				snap, err := view.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				if !watchFlag {
					return render(snap)
				}
				return watchHistory(cmd.Context(), ctx, store, view, func(snap history.Snapshot) error {
					if shouldColorize(cmd.OutOrStdout()) {
						fmt.Fprint(cmd.OutOrStdout(), "\x1b[H\x1b[2J")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (Ctrl+C to stop)\n", time.Now().Format("15:04:05"))
					return render(snap)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&query, "search", "s", "", "Case-insensitive search across text and tags")
	cmd.Flags().StringVarP(&tag, "tag", "t", "", "Only show summaries with this tag")
	cmd.Flags().BoolVar(&pinnedOnly, "pinned", false, "Only show pinned summaries")
	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-render when the database changes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of summaries to show (0 for all)")
	return cmd
}

// watchHistory renders the current snapshot, then re-renders each time the
// database changes until the command context is cancelled.
func watchHistory(ctx context.Context, cmdCtx *commandContext, store *summary.Store, view *history.View, render func(history.Snapshot) error) error {
	cfg := cmdCtx.configValue()
	watcher := watch.New(store.Path(), time.Duration(cfg.Watch.DebounceMillis)*time.Millisecond, cmdCtx.loggerValue())
	signals, err := watcher.Run(ctx)
	if err != nil {
		return err
	}

	updates, cancel := view.Subscribe()
	defer cancel()

	if err := render(view.Snapshot()); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			if _, err := view.Refresh(ctx); err != nil {
				cmdCtx.loggerValue().Warn("history refresh failed", logging.Error(err))
			}
		case snap := <-updates:
			if err := render(snap); err != nil {
				return err
			}
		}
	}
}

func applyListOptions(records []*summary.Summary, pinnedOnly bool, limit int) []*summary.Summary {
	out := make([]*summary.Summary, 0, len(records))
	for _, record := range records {
		if pinnedOnly && !record.IsPinned {
			continue
		}
		out = append(out, record)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func renderHistory(out io.Writer, snap history.Snapshot, records []*summary.Summary) {
	if snap.Total == 0 {
		fmt.Fprintln(out, "No summaries yet. Create one with `notesum summarize`.")
		return
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No summaries match the current filters")
		return
	}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", record.ID),
			formatTimestamp(record.Timestamp),
			pinMarker(record.IsPinned),
			strings.Join(record.TagList(), ", "),
			textutil.Truncate(firstBullet(record.SummarizedText), previewRunes),
		})
	}
	fmt.Fprint(out, renderTable([]column{
		{Header: "ID", Right: true},
		{Header: "Created"},
		{Header: "Pin"},
		{Header: "Tags", MaxWidth: 24},
		{Header: "Summary"},
	}, rows))
	fmt.Fprintf(out, "%d of %d summaries", len(records), snap.Total)
	if len(snap.Tags) > 0 {
		fmt.Fprintf(out, " · tags: %s", strings.Join(snap.Tags, ", "))
	}
	fmt.Fprintln(out)
}

func firstBullet(text string) string {
	bullets := summarizer.ParseBullets(text)
	if len(bullets) == 0 {
		return ""
	}
	return bullets[0]
}

func pinMarker(pinned bool) string {
	if pinned {
		return "★"
	}
	return ""
}

func newTagsCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withSummaries(func(svc *api.SummaryService, _ *summary.Store) error {
				tags, err := svc.Tags(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, api.TagsResponse{Tags: tags})
				}
				if len(tags) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No tags")
					return nil
				}
				for _, tag := range tags {
					fmt.Fprintln(cmd.OutOrStdout(), tag)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool
	var related int
	var original bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a stored summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSummaryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withSummaries(func(svc *api.SummaryService, store *summary.Store) error {
				dto, err := svc.Describe(cmd.Context(), id)
				if err != nil {
					return err
				}
				if dto == nil {
					return fmt.Errorf("summary %d not found", id)
				}

				var matches []history.Match
				if related > 0 {
					all, err := store.List(cmd.Context())
					if err != nil {
						return err
					}
					target, err := store.GetByID(cmd.Context(), id)
					if err != nil {
						return err
					}
					matches = history.Related(target, all, related)
				}

				if asJSON {
					payload := struct {
						api.SummaryResponse
						Related []api.Summary `json:"related,omitempty"`
					}{SummaryResponse: api.SummaryResponse{Summary: *dto}}
					for _, m := range matches {
						payload.Related = append(payload.Related, api.FromSummary(m.Summary))
					}
					return writeJSON(cmd, payload)
				}

				out := cmd.OutOrStdout()
				color := shouldColorize(out)
				printSummary(out, *dto, color)
				if original {
					fmt.Fprintln(out)
					fmt.Fprintln(out, colorize(color, ansiDim, "Original:"))
					fmt.Fprintln(out, strings.TrimSpace(dto.OriginalText))
				}
				if related > 0 {
					fmt.Fprintln(out)
					if len(matches) == 0 {
						fmt.Fprintln(out, "No related summaries")
					}
					for _, m := range matches {
						fmt.Fprintf(out, "  #%d  %.0f%%  %s\n", m.Summary.ID, m.Score*100, textutil.Truncate(firstBullet(m.Summary.SummarizedText), previewRunes))
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	cmd.Flags().BoolVarP(&original, "original", "o", false, "Also print the original text")
	cmd.Flags().IntVarP(&related, "related", "r", 0, "List up to N summaries with similar content")
	return cmd
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var text string
	var file string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace the summary text of a stored summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSummaryID(args[0])
			if err != nil {
				return err
			}
			if (text == "") == (file == "") {
				return errors.New("provide exactly one of --text or --file")
			}
			if file != "" {
				if text, err = readInput(cmd, nil, file); err != nil {
					return err
				}
			}
			return ctx.withSummaries(func(svc *api.SummaryService, _ *summary.Store) error {
				dto, err := svc.Edit(cmd.Context(), id, text)
				if err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), *dto, shouldColorize(cmd.OutOrStdout()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New summary text")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the new summary text from a file (- for stdin)")
	return cmd
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	var clearTags bool

	cmd := &cobra.Command{
		Use:   "tag ID [TAG[,TAG...]]...",
		Short: "Replace the tags of a stored summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSummaryID(args[0])
			if err != nil {
				return err
			}
			tags := splitTags(args[1:])
			if len(tags) == 0 && !clearTags {
				return errors.New("provide tags or --clear")
			}
			return ctx.withSummaries(func(svc *api.SummaryService, _ *summary.Store) error {
				dto, err := svc.SetTags(cmd.Context(), id, tags)
				if err != nil {
					return err
				}
				if len(dto.Tags) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared tags on summary %d\n", id)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Summary %d tagged: %s\n", id, strings.Join(dto.Tags, ", "))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&clearTags, "clear", false, "Remove all tags")
	return cmd
}

func newPinCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pin ID",
		Short: "Toggle the pinned flag of a stored summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSummaryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withSummaries(func(svc *api.SummaryService, _ *summary.Store) error {
				dto, err := svc.TogglePin(cmd.Context(), id)
				if err != nil {
					return err
				}
				if dto.Pinned {
					fmt.Fprintf(cmd.OutOrStdout(), "Pinned summary %d\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Unpinned summary %d\n", id)
				}
				return nil
			})
		},
	}
}

func newDeleteCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a stored summary",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSummaryID(args[0])
			if err != nil {
				return err
			}
			return ctx.withSummaries(func(svc *api.SummaryService, _ *summary.Store) error {
				dto, err := svc.Describe(cmd.Context(), id)
				if err != nil {
					return err
				}
				if dto == nil {
					return fmt.Errorf("summary %d not found", id)
				}
				if !yes {
					prompt := fmt.Sprintf("Delete summary %d (%s)? [y/N] ", id, textutil.Truncate(firstBullet(dto.SummarizedText), 40))
					if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
						return nil
					}
				}
				if err := svc.Delete(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted summary %d\n", id)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
