package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"notesum/internal/history"
	"notesum/internal/services"
	"notesum/internal/summarizer"
	"notesum/internal/summary"
	"notesum/internal/textutil"
)

// Format names an output encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts a format name or common file extension.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "md", "markdown":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", services.Wrap(services.ErrValidation, "export", "parse format", fmt.Sprintf("unsupported format %q (want markdown, json or yaml)", value), nil)
	}
}

// Extension returns the file extension for f, without a dot.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "md"
	}
}

// Document is the exported payload.
type Document struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Query       string    `json:"query,omitempty" yaml:"query,omitempty"`
	Tag         string    `json:"tag,omitempty" yaml:"tag,omitempty"`
	Count       int       `json:"count" yaml:"count"`
	Summaries   []Entry   `json:"summaries" yaml:"summaries"`
}

// Entry is one exported summary.
type Entry struct {
	ID        int64     `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Pinned    bool      `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Tags      []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Bullets   []string  `json:"bullets" yaml:"bullets"`
	Summary   string    `json:"summary" yaml:"summary"`
	Original  string    `json:"original" yaml:"original"`
}

// Build filters records by criteria and converts them into a document.
func Build(records []*summary.Summary, criteria history.Criteria, now time.Time) Document {
	filtered := history.Filter(records, criteria)
	doc := Document{
		GeneratedAt: now.UTC(),
		Query:       criteria.EffectiveQuery(),
		Tag:         strings.TrimSpace(criteria.Tag),
		Count:       len(filtered),
		Summaries:   make([]Entry, 0, len(filtered)),
	}
	for _, record := range filtered {
		doc.Summaries = append(doc.Summaries, Entry{
			ID:        record.ID,
			CreatedAt: record.Timestamp.UTC(),
			Pinned:    record.IsPinned,
			Tags:      record.TagList(),
			Bullets:   summarizer.ParseBullets(record.SummarizedText),
			Summary:   record.SummarizedText,
			Original:  record.OriginalText,
		})
	}
	return doc
}

// Write encodes doc to w in the requested format.
func Write(w io.Writer, format Format, doc Document) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(doc)
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return encoder.Close()
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(doc))
		return err
	default:
		return fmt.Errorf("export: unsupported format %q", format)
	}
}

// FileName suggests an output file name such as notesum-work-20240301.md.
func FileName(format Format, doc Document) string {
	scope := textutil.Slug(doc.Tag, "all")
	return fmt.Sprintf("notesum-%s-%s.%s", scope, doc.GeneratedAt.Format("20060102"), format.Extension())
}

const headingRunes = 60

var titleCaser = cases.Title(language.Und)

// Markdown renders doc as a Markdown document with one section per summary.
func Markdown(doc Document) string {
	var b strings.Builder
	b.WriteString("# Summaries")
	if doc.Tag != "" {
		b.WriteString(" tagged ")
		b.WriteString(doc.Tag)
	}
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "_Exported %s", doc.GeneratedAt.Format("2006-01-02 15:04 MST"))
	if doc.Query != "" {
		fmt.Fprintf(&b, " · search %q", doc.Query)
	}
	fmt.Fprintf(&b, " · %d %s_\n", doc.Count, plural(doc.Count, "note", "notes"))

	for _, entry := range doc.Summaries {
		b.WriteString("\n## ")
		b.WriteString(heading(entry))
		b.WriteString("\n\n")

		meta := []string{entry.CreatedAt.Format("2006-01-02 15:04 MST")}
		if entry.Pinned {
			meta = append(meta, "pinned")
		}
		if len(entry.Tags) > 0 {
			tags := make([]string, len(entry.Tags))
			for i, tag := range entry.Tags {
				tags[i] = "`" + tag + "`"
			}
			meta = append(meta, strings.Join(tags, " "))
		}
		b.WriteString("_" + strings.Join(meta, " · ") + "_\n\n")

		if len(entry.Bullets) == 0 {
			b.WriteString(strings.TrimSpace(entry.Summary))
			b.WriteString("\n")
		}
		for _, bullet := range entry.Bullets {
			b.WriteString("- ")
			b.WriteString(bullet)
			b.WriteString("\n")
		}

		if original := strings.TrimSpace(entry.Original); original != "" {
			b.WriteString("\n<details><summary>Original</summary>\n\n")
			for _, line := range strings.Split(original, "\n") {
				b.WriteString("> ")
				b.WriteString(strings.TrimRight(line, " \t\r"))
				b.WriteString("\n")
			}
			b.WriteString("\n</details>\n")
		}
	}
	return b.String()
}

func heading(entry Entry) string {
	text := textutil.Truncate(firstLine(entry.Original), headingRunes)
	if text == "" {
		return fmt.Sprintf("Summary %d", entry.ID)
	}
	return titleCaser.String(text)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
