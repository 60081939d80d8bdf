package history

import (
	"sort"

	"notesum/internal/summary"
	"notesum/internal/textutil"
)

// MinRelatedScore is the similarity below which summaries are not reported
// as related.
const MinRelatedScore = 0.15

// Match is a summary scored against a target.
type Match struct {
	Summary *summary.Summary
	Score   float64
}

// Related ranks the other summaries in all by textual similarity to target.
// Terms shared by most notes are weighted down. Ties keep store order.
func Related(target *summary.Summary, all []*summary.Summary, limit int) []Match {
	if target == nil || limit == 0 {
		return nil
	}
	corpus := textutil.NewCorpus()
	vectors := make(map[int64]*textutil.Vector, len(all))
	for _, record := range all {
		if record == nil {
			continue
		}
		v := textutil.NewVector(documentText(record))
		vectors[record.ID] = v
		corpus.Add(v)
	}
	idf := corpus.IDF()

	base, ok := vectors[target.ID]
	if !ok {
		base = textutil.NewVector(documentText(target))
	}
	base = base.Weighted(idf)

	var matches []Match
	for _, record := range all {
		if record == nil || record.ID == target.ID {
			continue
		}
		score := textutil.Similarity(base, vectors[record.ID].Weighted(idf))
		if score < MinRelatedScore {
			continue
		}
		matches = append(matches, Match{Summary: record, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func documentText(record *summary.Summary) string {
	return record.OriginalText + "\n" + record.SummarizedText + "\n" + record.Tags
}
