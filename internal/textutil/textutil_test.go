package textutil

import (
	"math"
	"testing"
)

func TestTokenizeFoldsAndDropsShortTokens(t *testing.T) {
	got := Tokenize("The ÉCOLE meeting, at 10am: go-live!")
	want := []string{"the", "école", "meeting", "10am", "live"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b *Vector
		want float64
	}{
		{"nil", nil, NewVector("hello world"), 0},
		{"identical", NewVector("quarterly budget review"), NewVector("Quarterly BUDGET review"), 1},
		{"disjoint", NewVector("apple banana cherry"), NewVector("dog elephant frog"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Similarity = %v, want %v", got, tt.want)
			}
		})
	}

	partial := Similarity(NewVector("budget review meeting"), NewVector("budget planning"))
	if partial <= 0 || partial >= 1 {
		t.Fatalf("expected partial similarity, got %v", partial)
	}
}

func TestNewVectorEmpty(t *testing.T) {
	if v := NewVector("a b c !!"); v != nil {
		t.Fatalf("expected nil vector, got %d terms", v.Len())
	}
}

func TestWeightedDownranksCommonTerms(t *testing.T) {
	docs := []string{"meeting budget", "meeting travel", "meeting hiring"}
	corpus := NewCorpus()
	for _, doc := range docs {
		corpus.Add(NewVector(doc))
	}
	idf := corpus.IDF()
	if idf["meeting"] >= idf["budget"] {
		t.Fatalf("expected common term to weigh less: %v", idf)
	}

	a := NewVector("meeting budget").Weighted(idf)
	b := NewVector("meeting travel").Weighted(idf)
	raw := Similarity(NewVector("meeting budget"), NewVector("meeting travel"))
	if got := Similarity(a, b); got >= raw {
		t.Fatalf("expected weighted similarity %v below raw %v", got, raw)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Work / Urgent":  "work-urgent",
		"  --Q3 plan-- ": "q3-plan",
		"":               "all",
		"???":            "all",
	}
	for in, want := range cases {
		if got := Slug(in, "all"); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("line one\nline   two", 0); got != "line one line two" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("héllo wörld", 6); got != "héllo…" {
		t.Fatalf("unexpected %q", got)
	}
}
