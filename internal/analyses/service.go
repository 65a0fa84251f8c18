package analyses

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/telemetry"
	"portfolio-backend/internal/shared/util"
)

const (
	previewRunes         = 120
	defaultEngineVersion = "heuristic-v1"
)

var tracer = otel.Tracer("portfolio-backend/analyses")

// Service runs engine tools and records each run.
type Service struct {
	Repo          Repo
	Cache         *ResultCache
	EngineVersion string
	// MaxInputBytes rejects larger inputs when positive.
	MaxInputBytes int

	now func() time.Time
}

// Execute runs tool on input for userID, reusing a cached result when the
// same input was analyzed before, and persists the run.
func (s *Service) Execute(ctx context.Context, tool Tool, userID, input string) (Analysis, error) {
	ctx, span := tracer.Start(ctx, "analyses.execute", trace.WithAttributes(
		attribute.String("tool", string(tool)),
		attribute.Int("input_bytes", len(input)),
	))
	defer span.End()

	analysis, err := s.execute(ctx, tool, userID, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Analysis{}, err
	}
	span.SetAttributes(
		attribute.String("analysis_id", analysis.ID),
		attribute.Bool("cached", analysis.Cached),
	)
	return analysis, nil
}

func (s *Service) execute(ctx context.Context, tool Tool, userID, input string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	run, ok := runners[tool]
	if !ok {
		return Analysis{}, fmt.Errorf("%w: %s", ErrUnsupportedTool, tool)
	}
	if userID == "" {
		return Analysis{}, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if s.MaxInputBytes > 0 && len(input) > s.MaxInputBytes {
		metrics.IncToolFailure(string(tool))
		return Analysis{}, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrInputTooLarge, len(input), s.MaxInputBytes)
	}

	version := s.engineVersion()
	hash := util.HashInput(input)
	key := cacheKey(tool, version, hash)

	start := time.Now()
	result, cached := s.Cache.Get(key)
	if cached {
		metrics.IncCacheHit()
	} else {
		if s.Cache != nil {
			metrics.IncCacheMiss()
		}
		payload, err := json.Marshal(run(input))
		if err != nil {
			metrics.IncToolFailure(string(tool))
			return Analysis{}, fmt.Errorf("encode %s result: %w", tool, err)
		}
		result = payload
		s.Cache.Add(key, result)
	}
	elapsed := metrics.SinceMillis(start)
	metrics.IncToolRun(string(tool))
	metrics.ObserveToolDurationMs(elapsed)

	analysis := Analysis{
		ID:            uuid.NewString(),
		Tool:          tool,
		UserID:        userID,
		InputHash:     hash,
		InputPreview:  util.Preview(input, previewRunes),
		EngineVersion: version,
		Result:        result,
		DurationMs:    elapsed,
		Cached:        cached,
		CreatedAt:     s.clock().UTC(),
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncToolFailure(string(tool))
		telemetry.Error("analysis.persist.failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysis.ID,
			"tool":        string(tool),
			"err":         err.Error(),
		})
		return Analysis{}, fmt.Errorf("persist analysis: %w", err)
	}

	telemetry.Info("analysis.completed", map[string]any{
		"request_id":  requestIDFromContext(ctx),
		"analysis_id": analysis.ID,
		"tool":        string(tool),
		"user_id":     userID,
		"input_bytes": len(input),
		"cached":      cached,
		"duration_ms": elapsed,
	})
	return analysis, nil
}

// Get returns the analysis if it belongs to userID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	ctx, span := tracer.Start(ctx, "analyses.get", trace.WithAttributes(attribute.String("analysis_id", analysisID)))
	defer span.End()

	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrNotFound
	}
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// List returns the user's analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	ctx, span := tracer.Start(ctx, "analyses.list")
	defer span.End()

	analyses, err := s.Repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	return analyses, nil
}

func (s *Service) engineVersion() string {
	if s.EngineVersion == "" {
		return defaultEngineVersion
	}
	return s.EngineVersion
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}
