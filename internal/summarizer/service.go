package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"notesum/internal/logging"
	"notesum/internal/services"
	"notesum/internal/services/llm"
	"notesum/internal/summary"
)

// Generator produces text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Store persists new summaries.
type Store interface {
	Insert(ctx context.Context, record *summary.Summary) (*summary.Summary, error)
}

// Request is one summarization submission.
type Request struct {
	Text   string
	Length int
	Tags   []string
}

// Service coordinates prompt construction, the model call and persistence.
type Service struct {
	generator Generator
	store     Store
	logger    *slog.Logger
	lockPath  string
	clamp     func(int) int
	now       func() time.Time

	busy  atomic.Bool
	mu    sync.Mutex
	state State
}

// Option customizes a Service.
type Option func(*Service)

// WithLockPath enables the cross-process advisory lock at path.
func WithLockPath(path string) Option {
	return func(s *Service) { s.lockPath = strings.TrimSpace(path) }
}

// WithLengthClamp overrides how requested lengths are bounded.
func WithLengthClamp(clamp func(int) int) Option {
	return func(s *Service) {
		if clamp != nil {
			s.clamp = clamp
		}
	}
}

// WithClock overrides the timestamp source for new summaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a summarizer.
func NewService(generator Generator, store Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		generator: generator,
		store:     store,
		logger:    logging.NewComponentLogger(logger, "summarizer"),
		clamp:     ClampLength,
		now:       time.Now,
		state:     State{Status: StatusInitial},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize generates and stores a summary for req.Text.
func (s *Service) Summarize(ctx context.Context, req Request) (*summary.Summary, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyInput
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer s.busy.Store(false)

	release, err := s.acquireLock()
	if err != nil {
		return nil, err
	}
	defer release()

	ctx = services.WithOperation(ctx, "summarize")
	logger := logging.WithContext(ctx, s.logger)
	length := s.clamp(req.Length)

	s.setState(State{Status: StatusLoading})
	logger.Info("requesting summary",
		logging.Int("length", length),
		logging.String("style", LengthStyle(length)),
		logging.Int("input_chars", len(req.Text)),
	)

	started := time.Now()
	text, err := s.generator.Generate(ctx, BuildPrompt(req.Text, length))
	text = strings.TrimSpace(text)
	if err != nil || text == "" {
		failure := &Failure{Message: MessageRequestFailed, Err: err}
		if err == nil || errors.Is(err, llm.ErrEmptyContent) {
			failure.Message = MessageEmptyResponse
		}
		logger.Warn("summary request failed",
			logging.String("message", failure.Message),
			logging.Duration("elapsed", time.Since(started)),
			logging.Error(err),
		)
		s.setState(State{Status: StatusError, Message: failure.Message})
		return nil, failure
	}

	record, err := s.store.Insert(ctx, &summary.Summary{
		OriginalText:   req.Text,
		SummarizedText: text,
		Timestamp:      s.now(),
		Tags:           summary.JoinTags(req.Tags),
	})
	if err != nil {
		s.setState(State{Status: StatusError, Message: err.Error()})
		return nil, fmt.Errorf("store summary: %w", err)
	}

	logging.WithContext(services.WithSummaryID(ctx, record.ID), s.logger).Info("summary stored",
		logging.Duration("elapsed", time.Since(started)),
		logging.Int("bullets", len(ParseBullets(text))),
	)
	s.setState(State{Status: StatusSuccess, Summary: record})
	return record, nil
}

// Busy reports whether a request is in flight in this process.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// State returns the outcome of the most recent request.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Latest returns the most recently generated summary, or nil when the last
// request did not succeed.
func (s *Service) Latest() *summary.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Status != StatusSuccess {
		return nil
	}
	return s.state.Summary
}

// Reset returns the service to its initial state.
func (s *Service) Reset() {
	s.setState(State{Status: StatusInitial})
}

func (s *Service) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Service) acquireLock() (func(), error) {
	if s.lockPath == "" {
		return func() {}, nil
	}
	lock := flock.New(s.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire summarize lock: %w", err)
	}
	if !ok {
		return nil, ErrBusy
	}
	return func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release summarize lock", logging.String("lock", s.lockPath), logging.Error(err))
		}
	}, nil
}
