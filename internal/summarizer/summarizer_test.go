package summarizer_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"notesum/internal/logging"
	"notesum/internal/services"
	"notesum/internal/services/llm"
	"notesum/internal/summarizer"
	"notesum/internal/testsupport"
)

type stubGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
	block   chan struct{}
	entered chan struct{}
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	if g.entered != nil {
		close(g.entered)
	}
	if g.block != nil {
		<-g.block
	}
	return g.text, g.err
}

func (g *stubGenerator) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}

func TestLengthStyleBoundaries(t *testing.T) {
	cases := map[int]string{
		50:  "very short, about 1-2 sentences",
		99:  "very short, about 1-2 sentences",
		100: "concise, like a short paragraph",
		249: "concise, like a short paragraph",
		250: "detailed, a few paragraphs long",
		350: "detailed, a few paragraphs long",
	}
	for length, want := range cases {
		if got := summarizer.LengthStyle(length); got != want {
			t.Fatalf("LengthStyle(%d) = %q, want %q", length, got, want)
		}
	}
}

func TestLengthLabel(t *testing.T) {
	cases := map[int]string{50: "Short", 125: "Short", 126: "Medium", 275: "Medium", 276: "Detailed", 350: "Detailed"}
	for length, want := range cases {
		if got := summarizer.LengthLabel(length); got != want {
			t.Fatalf("LengthLabel(%d) = %q, want %q", length, got, want)
		}
	}
}

func TestClampLength(t *testing.T) {
	cases := map[int]int{0: 150, -1: 150, 10: 50, 150: 150, 500: 350}
	for in, want := range cases {
		if got := summarizer.ClampLength(in); got != want {
			t.Fatalf("ClampLength(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	got := summarizer.BuildPrompt("buy milk", 150)
	want := "You are an expert assistant specialized in summarizing text. " +
		"Summarize the following notes into clear, concise bullet points. " +
		"The desired summary style is: concise, like a short paragraph.\n\n" +
		"Original Text:\n\"\"\"\nbuy milk\n\"\"\""
	if got != want {
		t.Fatalf("unexpected prompt:\n%s", got)
	}
}

func TestParseBullets(t *testing.T) {
	text := "Here is your summary:\n\n- first point\n  continues here\n* second\n• third\n2. fourth\n3) fifth\n**bold** heading"
	got := summarizer.ParseBullets(text)
	want := []string{
		"Here is your summary:",
		"first point continues here",
		"second",
		"third",
		"fourth",
		"fifth **bold** heading",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected bullets %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("bullet %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseBulletsPlainText(t *testing.T) {
	got := summarizer.ParseBullets("Just one paragraph\nwrapped over lines.")
	if len(got) != 1 || got[0] != "Just one paragraph wrapped over lines." {
		t.Fatalf("unexpected bullets %#v", got)
	}
	if summarizer.ParseBullets("   \n  ") != nil {
		t.Fatal("expected no bullets for blank text")
	}
}

func TestSummarizeBlankInputMakesNoCall(t *testing.T) {
	gen := &stubGenerator{text: "- x"}
	cfg := testsupport.NewConfig(t)
	svc := summarizer.NewService(gen, testsupport.MustOpenStore(t, cfg), logging.NewNop())

	_, err := svc.Summarize(context.Background(), summarizer.Request{Text: "  \n\t"})
	if !errors.Is(err, summarizer.ErrEmptyInput) || !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if gen.calls() != 0 {
		t.Fatalf("expected no generator calls, got %d", gen.calls())
	}
	if svc.State().Status != summarizer.StatusInitial {
		t.Fatalf("state must stay initial, got %s", svc.State().Status)
	}
}

func TestSummarizeSuccessPersists(t *testing.T) {
	gen := &stubGenerator{text: "  - decide budget\n- hire  "}
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	when := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := summarizer.NewService(gen, store, logging.NewNop(),
		summarizer.WithLockPath(cfg.LockPath()),
		summarizer.WithClock(func() time.Time { return when }),
	)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	record, err := svc.Summarize(context.Background(), summarizer.Request{Text: "meeting notes", Length: 60, Tags: []string{"work", " q2 "}})
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if record.ID == 0 || record.SummarizedText != "- decide budget\n- hire" || record.OriginalText != "meeting notes" {
		t.Fatalf("unexpected record %#v", record)
	}
	if record.Tags != "work,q2" || !record.Timestamp.Equal(when) {
		t.Fatalf("unexpected tags/timestamp %#v", record)
	}
	if !strings.Contains(gen.prompts[0], "very short, about 1-2 sentences") {
		t.Fatalf("prompt did not use requested length: %s", gen.prompts[0])
	}

	state := svc.State()
	if state.Status != summarizer.StatusSuccess || svc.Latest() == nil || svc.Latest().ID != record.ID {
		t.Fatalf("unexpected state %+v", state)
	}
	stored, err := store.GetByID(context.Background(), record.ID)
	if err != nil || stored == nil {
		t.Fatalf("expected stored record, err=%v", err)
	}

	svc.Reset()
	if svc.State().Status != summarizer.StatusInitial || svc.Latest() != nil {
		t.Fatal("expected reset to clear state")
	}
}

func TestSummarizeFailureMessages(t *testing.T) {
	cases := []struct {
		name string
		gen  *stubGenerator
		want string
	}{
		{"transport", &stubGenerator{err: errors.New("dial tcp: refused")}, summarizer.MessageRequestFailed},
		{"blank response", &stubGenerator{text: "   "}, summarizer.MessageEmptyResponse},
		{"empty content", &stubGenerator{err: llm.ErrEmptyContent}, summarizer.MessageEmptyResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testsupport.NewConfig(t)
			store := testsupport.MustOpenStore(t, cfg)
			svc := summarizer.NewService(tc.gen, store, logging.NewNop())

			_, err := svc.Summarize(context.Background(), summarizer.Request{Text: "notes"})
			var failure *summarizer.Failure
			if !errors.As(err, &failure) || failure.Message != tc.want {
				t.Fatalf("expected failure %q, got %v", tc.want, err)
			}
			if !errors.Is(err, services.ErrExternalTool) {
				t.Fatalf("expected external tool marker, got %v", err)
			}
			if summarizer.UserMessage(err) != tc.want {
				t.Fatalf("unexpected user message %q", summarizer.UserMessage(err))
			}
			state := svc.State()
			if state.Status != summarizer.StatusError || state.Message != tc.want {
				t.Fatalf("unexpected state %+v", state)
			}
			count, _ := store.Count(context.Background())
			if count != 0 {
				t.Fatalf("failure must not persist, found %d", count)
			}
		})
	}
}

func TestSummarizeRejectsConcurrentRequest(t *testing.T) {
	gen := &stubGenerator{text: "- ok", block: make(chan struct{}), entered: make(chan struct{})}
	cfg := testsupport.NewConfig(t)
	svc := summarizer.NewService(gen, testsupport.MustOpenStore(t, cfg), logging.NewNop())

	done := make(chan error, 1)
	go func() {
		_, err := svc.Summarize(context.Background(), summarizer.Request{Text: "first"})
		done <- err
	}()
	<-gen.entered

	if !svc.Busy() || svc.State().Status != summarizer.StatusLoading {
		t.Fatalf("expected loading state, got %+v", svc.State())
	}
	if _, err := svc.Summarize(context.Background(), summarizer.Request{Text: "second"}); !errors.Is(err, summarizer.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}

	close(gen.block)
	if err := <-done; err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	if gen.calls() != 1 {
		t.Fatalf("expected exactly one generator call, got %d", gen.calls())
	}
}

func TestSummarizeRespectsCrossProcessLock(t *testing.T) {
	gen := &stubGenerator{text: "- ok"}
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	lockPath := filepath.Join(cfg.Paths.DataDir, "summarize.lock")

	holder := flock.New(lockPath)
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-acquire lock: ok=%v err=%v", ok, err)
	}
	defer holder.Unlock()

	svc := summarizer.NewService(gen, store, logging.NewNop(), summarizer.WithLockPath(lockPath))
	if _, err := svc.Summarize(context.Background(), summarizer.Request{Text: "notes"}); !errors.Is(err, summarizer.ErrBusy) {
		t.Fatalf("expected busy error while lock held, got %v", err)
	}
	if gen.calls() != 0 {
		t.Fatal("expected no generator call while locked")
	}
}
