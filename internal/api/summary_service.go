package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notesum/internal/history"
	"notesum/internal/services"
	"notesum/internal/summary"
)

// SummaryStore abstracts the persistence operations the API needs.
type SummaryStore interface {
	List(ctx context.Context) ([]*summary.Summary, error)
	GetByID(ctx context.Context, id int64) (*summary.Summary, error)
	UpdateSummaryText(ctx context.Context, id int64, text string) error
	SetTags(ctx context.Context, id int64, tags []string) error
	TogglePin(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ListOptions narrows List results. PinnedOnly filters without reordering.
type ListOptions struct {
	Query      string
	Tag        string
	PinnedOnly bool
}

// SummaryService exposes summary operations returning API DTOs.
type SummaryService struct {
	store SummaryStore
}

// NewSummaryService constructs a SummaryService around the provided store.
func NewSummaryService(store SummaryStore) *SummaryService {
	if store == nil {
		return nil
	}
	return &SummaryService{store: store}
}

// List returns summaries matching opts together with the full tag set.
func (s *SummaryService) List(ctx context.Context, opts ListOptions) (SummaryList, error) {
	if s == nil || s.store == nil {
		return SummaryList{Tags: []string{}, Summaries: []Summary{}}, nil
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return SummaryList{}, err
	}
	filtered := history.Filter(all, history.Criteria{Query: opts.Query, Tag: opts.Tag})
	if opts.PinnedOnly {
		pinned := filtered[:0]
		for _, record := range filtered {
			if record.IsPinned {
				pinned = append(pinned, record)
			}
		}
		filtered = pinned
	}
	return SummaryList{
		Query:     history.Criteria{Query: opts.Query}.EffectiveQuery(),
		Tag:       strings.TrimSpace(opts.Tag),
		Total:     len(all),
		Tags:      history.AvailableTags(all),
		Summaries: FromSummaries(filtered),
	}, nil
}

// Tags returns the distinct tags across all summaries.
func (s *SummaryService) Tags(ctx context.Context) ([]string, error) {
	if s == nil || s.store == nil {
		return []string{}, nil
	}
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return history.AvailableTags(all), nil
}

// Describe fetches a single summary. A missing record yields nil, nil.
func (s *SummaryService) Describe(ctx context.Context, id int64) (*Summary, error) {
	if s == nil || s.store == nil {
		return nil, nil
	}
	record, err := s.store.GetByID(ctx, id)
	if err != nil || record == nil {
		return nil, err
	}
	dto := FromSummary(record)
	return &dto, nil
}

// Edit replaces the summarized text of a record.
func (s *SummaryService) Edit(ctx context.Context, id int64, text string) (*Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, services.Wrap(services.ErrValidation, "summaries", "edit", "summary text must not be blank", nil)
	}
	if err := s.store.UpdateSummaryText(ctx, id, text); err != nil {
		return nil, mapStoreError("edit", err)
	}
	return s.mustDescribe(ctx, "edit", id)
}

// SetTags replaces the tag list of a record.
func (s *SummaryService) SetTags(ctx context.Context, id int64, tags []string) (*Summary, error) {
	if err := s.store.SetTags(ctx, id, tags); err != nil {
		return nil, mapStoreError("tag", err)
	}
	return s.mustDescribe(ctx, "tag", id)
}

// TogglePin flips the pinned flag and returns the updated record.
func (s *SummaryService) TogglePin(ctx context.Context, id int64) (*Summary, error) {
	if _, err := s.store.TogglePin(ctx, id); err != nil {
		return nil, mapStoreError("pin", err)
	}
	return s.mustDescribe(ctx, "pin", id)
}

// Delete removes a record.
func (s *SummaryService) Delete(ctx context.Context, id int64) error {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return notFound("delete", id)
	}
	return nil
}

func (s *SummaryService) mustDescribe(ctx context.Context, op string, id int64) (*Summary, error) {
	dto, err := s.Describe(ctx, id)
	if err != nil {
		return nil, err
	}
	if dto == nil {
		return nil, notFound(op, id)
	}
	return dto, nil
}

func mapStoreError(op string, err error) error {
	if errors.Is(err, summary.ErrNotFound) {
		return services.Wrap(services.ErrNotFound, "summaries", op, "", err)
	}
	return err
}

func notFound(op string, id int64) error {
	return services.Wrap(services.ErrNotFound, "summaries", op, fmt.Sprintf("id %d", id), summary.ErrNotFound)
}
