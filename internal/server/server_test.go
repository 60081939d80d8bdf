package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"notesum/internal/api"
	"notesum/internal/config"
	"notesum/internal/logging"
	"notesum/internal/server"
	"notesum/internal/services"
	"notesum/internal/summarizer"
	"notesum/internal/summary"
	"notesum/internal/testsupport"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) {
	g.calls++
	return g.reply, g.err
}

type fixture struct {
	cfg     *config.Config
	store   *summary.Store
	gen     *stubGenerator
	handler http.Handler
}

func newFixture(t *testing.T, opts ...testsupport.ConfigOption) *fixture {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	store := testsupport.MustOpenStore(t, cfg)
	gen := &stubGenerator{reply: "- first point\n- second point"}
	svc := summarizer.NewService(gen, store, logging.NewNop(), summarizer.WithLengthClamp(cfg.ClampLength))
	srv := server.New(cfg, server.Deps{
		Summaries:  api.NewSummaryService(store),
		Summarizer: svc,
		Status: func(ctx context.Context) api.Status {
			count, _ := store.Count(ctx)
			return api.Status{DatabasePath: store.Path(), Summaries: count, Model: cfg.LLM.Model, LLMReady: true}
		},
	}, logging.NewNop())
	return &fixture{cfg: cfg, store: store, gen: gen, handler: srv.Handler()}
}

func (f *fixture) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestSummarizeStoresAndReturnsBullets(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/api/summarize", api.SummarizeRequest{Text: "long meeting notes", Length: 999, Tags: []string{"work"}})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode[api.SummaryResponse](t, rec)
	if resp.Summary.ID == 0 || resp.Summary.OriginalText != "long meeting notes" {
		t.Fatalf("unexpected summary: %+v", resp.Summary)
	}
	if len(resp.Summary.Bullets) != 2 || resp.Summary.Bullets[0] != "first point" {
		t.Fatalf("unexpected bullets: %#v", resp.Summary.Bullets)
	}
	if len(resp.Summary.Tags) != 1 || resp.Summary.Tags[0] != "work" {
		t.Fatalf("unexpected tags: %#v", resp.Summary.Tags)
	}
	if count, _ := f.store.Count(context.Background()); count != 1 {
		t.Fatalf("expected one stored summary, got %d", count)
	}
}

func TestSummarizeRejectsBlankInput(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/summarize", api.SummarizeRequest{Text: "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if f.gen.calls != 0 {
		t.Fatalf("expected no model call, got %d", f.gen.calls)
	}
}

func TestSummarizeFailureReturnsUserMessage(t *testing.T) {
	f := newFixture(t)
	f.gen.err = errors.New("connection refused")

	rec := f.do(t, http.MethodPost, "/api/summarize", api.SummarizeRequest{Text: "notes"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	resp := decode[api.ErrorResponse](t, rec)
	if resp.Message != summarizer.MessageRequestFailed {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	f.gen.err = services.Wrap(services.ErrConfiguration, "llm", "generate", "API key rejected", errors.New("401"))
	rec = f.do(t, http.MethodPost, "/api/summarize", api.SummarizeRequest{Text: "notes"})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 for rejected key, got %d", rec.Code)
	}
	f.gen.err = errors.New("connection refused")
	_ = f.do(t, http.MethodPost, "/api/summarize", api.SummarizeRequest{Text: "notes"})

	status := decode[api.Status](t, f.do(t, http.MethodGet, "/api/status", nil))
	if status.LastState != string(summarizer.StatusError) || status.LastError != summarizer.MessageRequestFailed {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestSummarizeRejectsUnknownFields(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/api/summarize", map[string]any{"text": "x", "bogus": true})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListFiltersByQueryTagAndPinned(t *testing.T) {
	f := newFixture(t)
	testsupport.NewSummary(t, f.store, "grocery list", "- milk", "home", 0)
	work := testsupport.NewSummary(t, f.store, "standup notes", "- ship it", "work,urgent", 1)
	testsupport.NewSummary(t, f.store, "retro notes", "- went well", "work", 2)
	if _, err := f.store.TogglePin(context.Background(), work.ID); err != nil {
		t.Fatalf("TogglePin: %v", err)
	}

	all := decode[api.SummaryList](t, f.do(t, http.MethodGet, "/api/summaries", nil))
	if all.Total != 3 || all.Summaries[0].OriginalText != "retro notes" {
		t.Fatalf("expected newest first, got %+v", all.Summaries)
	}
	if strings.Join(all.Tags, ",") != "home,urgent,work" {
		t.Fatalf("unexpected tags: %v", all.Tags)
	}

	byTag := decode[api.SummaryList](t, f.do(t, http.MethodGet, "/api/summaries?tag=WORK", nil))
	if len(byTag.Summaries) != 2 {
		t.Fatalf("expected two work summaries, got %d", len(byTag.Summaries))
	}

	byQuery := decode[api.SummaryList](t, f.do(t, http.MethodGet, "/api/summaries?q=NOTES&tag=urgent", nil))
	if len(byQuery.Summaries) != 1 || byQuery.Summaries[0].ID != work.ID {
		t.Fatalf("unexpected query result: %+v", byQuery.Summaries)
	}

	padded := decode[api.SummaryList](t, f.do(t, http.MethodGet, "/api/summaries?q=%20standup", nil))
	if len(padded.Summaries) != 0 || padded.Query != " standup" {
		t.Fatalf("expected query matched as typed, got %q with %d results", padded.Query, len(padded.Summaries))
	}
	inner := decode[api.SummaryList](t, f.do(t, http.MethodGet, "/api/summaries?q=%20notes", nil))
	if len(inner.Summaries) != 2 {
		t.Fatalf("expected two summaries containing %q, got %d", " notes", len(inner.Summaries))
	}

	pinned := decode[api.SummaryList](t, f.do(t, http.MethodGet, "/api/summaries?pinned=true", nil))
	if len(pinned.Summaries) != 1 || !pinned.Summaries[0].Pinned {
		t.Fatalf("unexpected pinned result: %+v", pinned.Summaries)
	}
}

func TestGetUpdatePinDelete(t *testing.T) {
	f := newFixture(t)
	record := testsupport.NewSummary(t, f.store, "original", "- old", "", 0)
	path := "/api/summaries/" + itoa(record.ID)

	got := decode[api.SummaryResponse](t, f.do(t, http.MethodGet, path, nil))
	if got.Summary.SummarizedText != "- old" {
		t.Fatalf("unexpected summary: %+v", got.Summary)
	}

	text := "- new"
	tags := []string{"a", "b"}
	rec := f.do(t, http.MethodPatch, path, api.UpdateRequest{SummarizedText: &text, Tags: &tags})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[api.SummaryResponse](t, rec)
	if updated.Summary.SummarizedText != "- new" || strings.Join(updated.Summary.Tags, ",") != "a,b" {
		t.Fatalf("unexpected update: %+v", updated.Summary)
	}

	pin := decode[api.PinResponse](t, f.do(t, http.MethodPost, path+"/pin", nil))
	if !pin.Pinned {
		t.Fatal("expected pinned after toggle")
	}

	if rec := f.do(t, http.MethodDelete, path, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, path, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodDelete, path, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting twice, got %d", rec.Code)
	}
}

func TestUpdateValidation(t *testing.T) {
	f := newFixture(t)
	record := testsupport.NewSummary(t, f.store, "original", "- old", "", 0)
	path := "/api/summaries/" + itoa(record.ID)

	if rec := f.do(t, http.MethodPatch, path, map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d", rec.Code)
	}
	blank := "  "
	if rec := f.do(t, http.MethodPatch, path, api.UpdateRequest{SummarizedText: &blank}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank text, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/api/summaries/abc", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", rec.Code)
	}
}

func TestAuthRequiresBearerToken(t *testing.T) {
	f := newFixture(t, testsupport.WithAPIToken("secret"))

	if rec := f.do(t, http.MethodGet, "/api/status", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodGet, "/api/status", nil, "Authorization", "Bearer wrong"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong token, got %d", rec.Code)
	}
	rec := f.do(t, http.MethodGet, "/api/status", nil, "Authorization", "Bearer secret")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
	status := decode[api.Status](t, rec)
	if !status.Running || status.LastState != string(summarizer.StatusInitial) {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/api/tags", nil, "X-Request-Id", "abc-123")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Fatalf("expected request id echoed, got %q", got)
	}
	tags := decode[api.TagsResponse](t, rec)
	if tags.Tags == nil || len(tags.Tags) != 0 {
		t.Fatalf("expected empty tag list, got %#v", tags.Tags)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	store := testsupport.MustOpenStore(t, cfg)
	srv := server.New(cfg, server.Deps{Summaries: api.NewSummaryService(store)}, logging.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/api/summaries", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}

func TestStartServesUntilCancelled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := server.New(f.cfg, server.Deps{Summaries: api.NewSummaryService(f.store)}, logging.NewNop())
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	resp, err := http.Get("http://" + srv.Addr() + "/api/tags")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	srv.Stop()
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
