package summary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Insert stores a new summary. The identifier is assigned by the database and
// a zero timestamp is replaced with the current time. The stored record is
// returned.
func (s *Store) Insert(ctx context.Context, record *Summary) (*Summary, error) {
	if record == nil {
		return nil, errors.New("summary is nil")
	}
	ts := record.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO summaries (original_text, summarized_text, timestamp, is_pinned, tags) VALUES (?, ?, ?, ?, ?)`,
		record.OriginalText,
		record.SummarizedText,
		toMillis(ts),
		boolToInt(record.IsPinned),
		JoinTags([]string{record.Tags}),
	)
	if err != nil {
		return nil, fmt.Errorf("insert summary: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("insert summary: row %d vanished", id)
	}
	return stored, nil
}

// List returns all summaries, newest first.
func (s *Store) List(ctx context.Context) ([]*Summary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT `+summaryColumns+` FROM summaries ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	defer rows.Close()

	var out []*Summary
	for rows.Next() {
		record, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}
	return out, nil
}

// GetByID fetches a summary by identifier. A missing record yields nil, nil.
func (s *Store) GetByID(ctx context.Context, id int64) (*Summary, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+summaryColumns+` FROM summaries WHERE id = ?`, id)
	record, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return record, nil
}

// Update replaces every mutable column of an existing summary.
func (s *Store) Update(ctx context.Context, record *Summary) error {
	if record == nil {
		return errors.New("summary is nil")
	}
	res, err := s.execWithRetry(
		ctx,
		`UPDATE summaries SET original_text = ?, summarized_text = ?, timestamp = ?, is_pinned = ?, tags = ? WHERE id = ?`,
		record.OriginalText,
		record.SummarizedText,
		toMillis(record.Timestamp),
		boolToInt(record.IsPinned),
		JoinTags([]string{record.Tags}),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}
	return requireAffected(res, record.ID)
}

// UpdateSummaryText replaces only the summarized text of a record.
func (s *Store) UpdateSummaryText(ctx context.Context, id int64, text string) error {
	res, err := s.execWithRetry(ctx, `UPDATE summaries SET summarized_text = ? WHERE id = ?`, text, id)
	if err != nil {
		return fmt.Errorf("update summary text: %w", err)
	}
	return requireAffected(res, id)
}

// SetTags replaces the tag list of a record.
func (s *Store) SetTags(ctx context.Context, id int64, tags []string) error {
	res, err := s.execWithRetry(ctx, `UPDATE summaries SET tags = ? WHERE id = ?`, JoinTags(tags), id)
	if err != nil {
		return fmt.Errorf("set tags: %w", err)
	}
	return requireAffected(res, id)
}

// SetPinned sets the pinned flag of a record.
func (s *Store) SetPinned(ctx context.Context, id int64, pinned bool) error {
	res, err := s.execWithRetry(ctx, `UPDATE summaries SET is_pinned = ? WHERE id = ?`, boolToInt(pinned), id)
	if err != nil {
		return fmt.Errorf("set pinned: %w", err)
	}
	return requireAffected(res, id)
}

// TogglePin flips the pinned flag and returns the new value.
func (s *Store) TogglePin(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `UPDATE summaries SET is_pinned = 1 - is_pinned WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("toggle pin: %w", err)
	}
	if err := requireAffected(res, id); err != nil {
		return false, err
	}
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return record.IsPinned, nil
}

// Delete removes a record. It reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM summaries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete summary: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Count returns the number of stored summaries.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM summaries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count summaries: %w", err)
	}
	return count, nil
}

func requireAffected(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}
