package history

import (
	"context"
	"fmt"
	"sync"

	"notesum/internal/summary"
)

// Source supplies the full store contents, newest first.
type Source interface {
	List(ctx context.Context) ([]*summary.Summary, error)
}

// Snapshot is the visible state of a View at one point in time.
type Snapshot struct {
	Criteria  Criteria
	Summaries []*summary.Summary
	Tags      []string
	Total     int
}

// View keeps the filter inputs and publishes the recomputed projection.
type View struct {
	mu       sync.Mutex
	source   Source
	criteria Criteria
	all      []*summary.Summary
	current  Snapshot
	nextID   int
	subs     map[int]chan Snapshot
}

// NewView constructs a view backed by source. source may be nil when the
// caller feeds summaries through SetSummaries.
func NewView(source Source) *View {
	v := &View{source: source, subs: make(map[int]chan Snapshot)}
	v.current = v.compute()
	return v
}

// SetQuery replaces the search query.
func (v *View) SetQuery(query string) Snapshot {
	return v.update(func() { v.criteria.Query = query })
}

// SetTag selects a tag filter. An empty tag clears it.
func (v *View) SetTag(tag string) Snapshot {
	return v.update(func() { v.criteria.Tag = tag })
}

// ClearTag removes the tag filter.
func (v *View) ClearTag() Snapshot {
	return v.SetTag("")
}

// SetSummaries replaces the store contents the view filters.
func (v *View) SetSummaries(summaries []*summary.Summary) Snapshot {
	cp := make([]*summary.Summary, len(summaries))
	copy(cp, summaries)
	return v.update(func() { v.all = cp })
}

// Refresh pulls the latest summaries from the source.
func (v *View) Refresh(ctx context.Context) (Snapshot, error) {
	if v.source == nil {
		return v.Snapshot(), nil
	}
	summaries, err := v.source.List(ctx)
	if err != nil {
		return v.Snapshot(), fmt.Errorf("refresh history: %w", err)
	}
	return v.SetSummaries(summaries), nil
}

// Snapshot returns the current projection.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Subscribe registers for snapshots published after each change. The
// channel holds at most one pending snapshot; a slow reader sees only the
// latest. The returned func unsubscribes and closes the channel.
func (v *View) Subscribe() (<-chan Snapshot, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.nextID
	v.nextID++
	ch := make(chan Snapshot, 1)
	v.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			if sub, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

func (v *View) update(mutate func()) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	mutate()
	v.current = v.compute()
	for _, ch := range v.subs {
		publish(ch, v.current)
	}
	return v.current
}

func (v *View) compute() Snapshot {
	return Snapshot{
		Criteria:  v.criteria,
		Summaries: Filter(v.all, v.criteria),
		Tags:      AvailableTags(v.all),
		Total:     len(v.all),
	}
}

// publish replaces any unread snapshot so the writer never blocks.
func publish(ch chan Snapshot, snap Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
