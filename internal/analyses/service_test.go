package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"portfolio-backend/engine/complexity"
	"portfolio-backend/engine/sentiment"
)

type failingRepo struct {
	*MemoryRepo
	err error
}

func (f failingRepo) Create(ctx context.Context, analysis Analysis) error {
	return f.err
}

func newTestService(t *testing.T, cacheSize int) *Service {
	t.Helper()
	cache, err := NewResultCache(cacheSize)
	if err != nil {
		t.Fatalf("NewResultCache: %v", err)
	}
	return &Service{
		Repo:          NewMemoryRepo(),
		Cache:         cache,
		EngineVersion: "test-v1",
		MaxInputBytes: 1024,
	}
}

func TestExecuteRecordsAnalysis(t *testing.T) {
	svc := newTestService(t, 8)
	ctx := context.Background()

	analysis, err := svc.Execute(ctx, ToolSentiment, "guest:g1", "Excited and proud of the team")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if analysis.ID == "" || analysis.Tool != ToolSentiment || analysis.UserID != "guest:g1" {
		t.Fatalf("unexpected analysis %+v", analysis)
	}
	if analysis.EngineVersion != "test-v1" || len(analysis.InputHash) != 64 || analysis.Cached {
		t.Fatalf("unexpected metadata %+v", analysis)
	}

	var result sentiment.Result
	if err := json.Unmarshal(analysis.Result, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if want := sentiment.Analyze("Excited and proud of the team"); result.Label != want.Label || result.Score != want.Score {
		t.Fatalf("result %+v does not match engine output %+v", result, want)
	}

	stored, err := svc.Repo.GetByID(ctx, analysis.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if string(stored.Result) != string(analysis.Result) {
		t.Fatalf("stored result differs")
	}
}

func TestExecuteReusesCachedResult(t *testing.T) {
	svc := newTestService(t, 8)
	ctx := context.Background()
	code := "for (i=0;i<n;i++) { for (j=0;j<n;j++) {} }"

	first, err := svc.Execute(ctx, ToolComplexity, "guest:g1", code)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	second, err := svc.Execute(ctx, ToolComplexity, "guest:g2", code)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if first.Cached || !second.Cached {
		t.Fatalf("expected miss then hit, got %v then %v", first.Cached, second.Cached)
	}
	if first.ID == second.ID {
		t.Fatalf("each run must get its own id")
	}
	if string(first.Result) != string(second.Result) {
		t.Fatalf("cached result differs from fresh run")
	}

	var result complexity.Result
	if err := json.Unmarshal(second.Result, &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.TimeComplexity != "O(n^2)" {
		t.Fatalf("unexpected time complexity %q", result.TimeComplexity)
	}

	// The same input under another tool is a different cache entry.
	third, err := svc.Execute(ctx, ToolSentiment, "guest:g1", code)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.Cached {
		t.Fatalf("cache must be keyed by tool")
	}
	if svc.Cache.Len() != 2 {
		t.Fatalf("expected 2 cache entries, got %d", svc.Cache.Len())
	}
}

func TestExecuteWithoutCache(t *testing.T) {
	svc := newTestService(t, 0)
	for i := 0; i < 2; i++ {
		got, err := svc.Execute(context.Background(), ToolResume, "anonymous", "Experience\n- Built things")
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if got.Cached {
			t.Fatalf("run %d reported cached without a cache", i)
		}
	}
}

func TestExecuteRejectsInvalidRequests(t *testing.T) {
	svc := newTestService(t, 8)
	ctx := context.Background()

	if _, err := svc.Execute(ctx, ToolSentiment, "guest:g1", strings.Repeat("a", 1025)); !errors.Is(err, ErrInputTooLarge) {
		t.Fatalf("expected ErrInputTooLarge, got %v", err)
	}
	if _, err := svc.Execute(ctx, Tool("poetry"), "guest:g1", "x"); !errors.Is(err, ErrUnsupportedTool) {
		t.Fatalf("expected ErrUnsupportedTool, got %v", err)
	}
	if _, err := svc.Execute(ctx, ToolSentiment, "", "x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := svc.Execute(canceled, ToolSentiment, "guest:g1", "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestExecuteWrapsPersistenceErrors(t *testing.T) {
	boom := errors.New("db down")
	svc := &Service{Repo: failingRepo{MemoryRepo: NewMemoryRepo(), err: boom}}

	_, err := svc.Execute(context.Background(), ToolSentiment, "guest:g1", "hello")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repo error, got %v", err)
	}
}

func TestGetScopesToOwner(t *testing.T) {
	svc := newTestService(t, 8)
	ctx := context.Background()
	analysis, err := svc.Execute(ctx, ToolSentiment, "guest:owner", "curious about how this works?")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := svc.Get(ctx, "guest:owner", analysis.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := svc.Get(ctx, "guest:other", analysis.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
	if _, err := svc.Get(ctx, "guest:owner", "not-a-uuid"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	svc := newTestService(t, 0)
	base := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()
	inputs := []string{"first", "second", "third"}
	for _, in := range inputs {
		if _, err := svc.Execute(ctx, ToolSentiment, "guest:g1", in); err != nil {
			t.Fatalf("Execute %q: %v", in, err)
		}
	}
	if _, err := svc.Execute(ctx, ToolSentiment, "guest:g2", "elsewhere"); err != nil {
		t.Fatalf("Execute other: %v", err)
	}

	got, err := svc.List(ctx, "guest:g1", 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].InputPreview != "third" || got[1].InputPreview != "second" {
		t.Fatalf("unexpected page %+v", got)
	}

	got, err = svc.List(ctx, "guest:g1", 2, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(got) != 1 || got[0].InputPreview != "first" {
		t.Fatalf("unexpected page 2 %+v", got)
	}
}

func TestParseTool(t *testing.T) {
	if tool, err := ParseTool(" Complexity "); err != nil || tool != ToolComplexity {
		t.Fatalf("ParseTool = %q, %v", tool, err)
	}
	for _, raw := range []string{"", "chat"} {
		if _, err := ParseTool(raw); !errors.Is(err, ErrUnsupportedTool) {
			t.Fatalf("ParseTool(%q) expected ErrUnsupportedTool, got %v", raw, err)
		}
	}
	if len(Tools()) != len(runners) {
		t.Fatalf("Tools() out of sync with runners")
	}
}
