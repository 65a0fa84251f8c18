package analyses

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/extract"
	"portfolio-backend/internal/shared/metrics"
	"portfolio-backend/internal/shared/server/middleware"
	"portfolio-backend/internal/shared/server/respond"
	"portfolio-backend/internal/shared/telemetry"
	"portfolio-backend/internal/shared/util"
)

const (
	maxUploadBytes   = 5 << 20
	jsonBodyOverhead = 4 << 10
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches tool and history routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tools/sentiment", h.runText(ToolSentiment))
	rg.POST("/tools/complexity", h.runComplexity)
	rg.POST("/tools/resume", h.runText(ToolResume))
	rg.POST("/tools/resume/upload", h.uploadResume)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
}

func (h *Handler) runText(tool Tool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ToolKey, string(tool))
		var req textRequest
		if !h.bindJSON(c, tool, &req) {
			return
		}
		h.execute(c, tool, req.Text)
	}
}

func (h *Handler) runComplexity(c *gin.Context) {
	c.Set(middleware.ToolKey, string(ToolComplexity))
	var req codeRequest
	if !h.bindJSON(c, ToolComplexity, &req) {
		return
	}
	h.execute(c, ToolComplexity, req.Code)
}

func (h *Handler) uploadResume(c *gin.Context) {
	c.Set(middleware.ToolKey, string(ToolResume))
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+jsonBodyOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(c, ToolResume, http.StatusRequestEntityTooLarge, ErrorCodeInputTooLarge, "file exceeds 5 MB", nil)
			return
		}
		h.fail(c, ToolResume, http.StatusBadRequest, ErrorCodeValidation, "multipart field \"file\" is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		h.fail(c, ToolResume, http.StatusRequestEntityTooLarge, ErrorCodeInputTooLarge, "file exceeds 5 MB", nil)
		return
	}
	name, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		h.fail(c, ToolResume, http.StatusBadRequest, ErrorCodeValidation, "invalid file name", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		h.fail(c, ToolResume, http.StatusBadRequest, ErrorCodeValidation, "could not read upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		h.fail(c, ToolResume, http.StatusBadRequest, ErrorCodeValidation, "could not read upload", nil)
		return
	}

	text, err := extract.TextFromBytes(c.Request.Context(), data, fileHeader.Header.Get("Content-Type"), name)
	if err != nil {
		telemetry.Warn("resume.extract.failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"file_name":  name,
			"size_bytes": len(data),
			"err":        err.Error(),
		})
		if errors.Is(err, extract.ErrUnsupportedType) {
			h.fail(c, ToolResume, http.StatusUnsupportedMediaType, ErrorCodeUnsupportedFile, "upload a PDF or DOCX resume", nil)
			return
		}
		h.fail(c, ToolResume, http.StatusUnprocessableEntity, ErrorCodeUnsupportedFile, "could not extract text from the file", nil)
		return
	}
	h.execute(c, ToolResume, text)
}

func (h *Handler) bindJSON(c *gin.Context, tool Tool, dst any) bool {
	if h.Svc.MaxInputBytes > 0 {
		limit := int64(h.Svc.MaxInputBytes)*2 + jsonBodyOverhead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(c, tool, http.StatusRequestEntityTooLarge, ErrorCodeInputTooLarge, "request body too large", nil)
			return false
		}
		h.fail(c, tool, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return false
	}
	if issues := validateStruct(dst); len(issues) > 0 {
		h.fail(c, tool, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", issues)
		return false
	}
	return true
}

func (h *Handler) execute(c *gin.Context, tool Tool, input string) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Svc.Execute(ctx, tool, middleware.UserIDFromContext(c), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInputTooLarge):
			h.fail(c, tool, http.StatusRequestEntityTooLarge, ErrorCodeInputTooLarge, "input exceeds the configured limit", nil)
		case errors.Is(err, ErrUnsupportedTool):
			h.fail(c, tool, http.StatusNotFound, ErrorCodeUnsupportedTool, "unsupported tool", nil)
		case errors.Is(err, ErrInvalidInput):
			h.fail(c, tool, http.StatusBadRequest, ErrorCodeValidation, "invalid input", nil)
		default:
			h.fail(c, tool, http.StatusInternalServerError, ErrorCodeInternal, "failed to run analysis", nil)
		}
		return
	}

	c.Set(middleware.AnalysisIDKey, analysis.ID)
	c.Set(middleware.CacheHitKey, analysis.Cached)
	respond.OK(c, toolResponse{
		AnalysisID: analysis.ID,
		Tool:       analysis.Tool,
		Cached:     analysis.Cached,
		Result:     analysis.Result,
	})
}

// fail counts a failed tool request and writes the error envelope.
func (h *Handler) fail(c *gin.Context, tool Tool, status int, code, message string, details any) {
	if tool != "" {
		metrics.IncToolFailure(string(tool))
	}
	respond.Error(c, status, code, message, details)
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	c.Set(middleware.AnalysisIDKey, analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to fetch analysis", nil)
		}
		return
	}
	c.Set(middleware.ToolKey, string(analysis.Tool))
	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == middleware.AnonymousUser {
		respond.Error(c, http.StatusUnauthorized, ErrorCodeIdentity, "X-Guest-Id header is required to view history", nil)
		return
	}

	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "limit and offset must be integers", nil)
		return
	}
	if issues := validateStruct(q); len(issues) > 0 {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid query", issues)
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultListLimit
	}

	analyses, err := h.Svc.List(c.Request.Context(), userID, q.Limit, q.Offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "failed to list analyses", nil)
		return
	}

	resp := make([]analysisSummary, 0, len(analyses))
	for _, a := range analyses {
		resp = append(resp, analysisSummary{
			AnalysisID:   a.ID,
			Tool:         a.Tool,
			InputPreview: a.InputPreview,
			Headline:     headline(a.Tool, a.Result),
			DurationMs:   a.DurationMs,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		})
	}
	respond.OK(c, resp)
}

// headline picks the one field a history list shows for each tool.
func headline(tool Tool, result json.RawMessage) string {
	var fields struct {
		Label          string `json:"label"`
		TimeComplexity string `json:"timeComplexity"`
		Score          *int   `json:"score"`
	}
	if err := json.Unmarshal(result, &fields); err != nil {
		return ""
	}
	switch tool {
	case ToolSentiment:
		return fields.Label
	case ToolComplexity:
		return fields.TimeComplexity
	case ToolResume:
		if fields.Score != nil {
			return "score " + strconv.Itoa(*fields.Score)
		}
	}
	return ""
}
