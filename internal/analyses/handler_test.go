package analyses

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/shared/server/middleware"
)

type envelope struct {
	Error struct {
		Code    string       `json:"code"`
		Message string       `json:"message"`
		Details []fieldIssue `json:"details"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := newTestService(t, 16)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func doJSON(r *gin.Engine, method, path, guestID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if guestID != "" {
		req.Header.Set("X-Guest-Id", guestID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body %s)", err, w.Body.String())
	}
	return env
}

func TestToolEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name  string
		path  string
		body  string
		tool  Tool
		field string
		want  any
	}{
		{
			name:  "sentiment",
			path:  "/api/v1/tools/sentiment",
			body:  `{"text":"Excited and proud of the team"}`,
			tool:  ToolSentiment,
			field: "label",
			want:  "Motivated",
		},
		{
			name:  "complexity",
			path:  "/api/v1/tools/complexity",
			body:  `{"code":"for (i=0;i<n;i++) { for (j=0;j<n;j++) {} }"}`,
			tool:  ToolComplexity,
			field: "timeComplexity",
			want:  "O(n^2)",
		},
		{
			name:  "resume",
			path:  "/api/v1/tools/resume",
			body:  `{"text":"I am a software engineer who likes computers and wants a job."}`,
			tool:  ToolResume,
			field: "score",
			want:  float64(24),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, tc.path, "g1", tc.body)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			var resp struct {
				AnalysisID string         `json:"analysisId"`
				Tool       Tool           `json:"tool"`
				Cached     bool           `json:"cached"`
				Result     map[string]any `json:"result"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.AnalysisID == "" || resp.Tool != tc.tool || resp.Cached {
				t.Fatalf("unexpected response %+v", resp)
			}
			if got := resp.Result[tc.field]; got != tc.want {
				t.Fatalf("%s = %v, want %v", tc.field, got, tc.want)
			}
		})
	}
}

func TestAnonymousRunsAreRecorded(t *testing.T) {
	r, svc := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/v1/tools/sentiment", "", `{"text":"Excited and proud of the team"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	list, _ := svc.Repo.ListByUser(context.Background(), middleware.AnonymousUser, 0, 0)
	if len(list) != 1 {
		t.Fatalf("expected 1 anonymous analysis, got %d", len(list))
	}
}

func TestToolEndpointsReportCacheHits(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"text":"same words twice"}`
	first := doJSON(r, http.MethodPost, "/api/v1/tools/sentiment", "g1", body)
	second := doJSON(r, http.MethodPost, "/api/v1/tools/sentiment", "g1", body)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("unexpected status %d / %d", first.Code, second.Code)
	}
	if !strings.Contains(second.Body.String(), `"cached":true`) {
		t.Fatalf("expected cached response, got %s", second.Body.String())
	}
}

func TestToolEndpointsRejectInvalidBodies(t *testing.T) {
	r, _ := newTestRouter(t)

	cases := []struct {
		name      string
		path      string
		body      string
		wantField string
	}{
		{name: "blank_text", path: "/api/v1/tools/sentiment", body: `{"text":"   "}`, wantField: "text"},
		{name: "missing_code", path: "/api/v1/tools/complexity", body: `{}`, wantField: "code"},
		{name: "malformed_json", path: "/api/v1/tools/resume", body: `{"text":`},
		{name: "wrong_type", path: "/api/v1/tools/resume", body: `{"text":42}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, tc.path, "g1", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Error.Code != ErrorCodeValidation {
				t.Fatalf("unexpected code %q", env.Error.Code)
			}
			if tc.wantField == "" {
				return
			}
			if len(env.Error.Details) != 1 || env.Error.Details[0].Field != tc.wantField {
				t.Fatalf("unexpected details %+v", env.Error.Details)
			}
		})
	}
}

func TestToolEndpointsRejectOversizedInput(t *testing.T) {
	r, _ := newTestRouter(t)
	body := `{"text":"` + strings.Repeat("a", 2000) + `"}`
	w := doJSON(r, http.MethodPost, "/api/v1/tools/sentiment", "g1", body)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Error.Code != ErrorCodeInputTooLarge {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
}

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>")
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	doc := `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() + `</w:body></w:document>`
	if _, err := f.Write([]byte(doc)); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, fileName string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tools/resume/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Guest-Id", "g1")
	return req
}

func TestUploadResumeDocx(t *testing.T) {
	r, svc := newTestRouter(t)
	data := buildDocx(t, "Experience", "- Built a PyTorch model that improved accuracy by 12%")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "my resume.docx", data))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	list, err := svc.List(context.Background(), "guest:g1", 0, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected 1 stored analysis, got %d (%v)", len(list), err)
	}
	if list[0].Tool != ToolResume || !strings.HasPrefix(list[0].InputPreview, "Experience") {
		t.Fatalf("unexpected stored analysis %+v", list[0])
	}
}

func TestUploadResumeRejectsUnsupportedFile(t *testing.T) {
	r, _ := newTestRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "photo.png", []byte("\x89PNG\r\n\x1a\n0000")))
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", w.Code, w.Body.String())
	}
	if env := decodeEnvelope(t, w); env.Error.Code != ErrorCodeUnsupportedFile {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
}

func TestUploadResumeRequiresFile(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/v1/tools/resume/upload", "g1", `{"text":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetAnalysis(t *testing.T) {
	r, _ := newTestRouter(t)
	w := doJSON(r, http.MethodPost, "/api/v1/tools/complexity", "owner", `{"code":"return a + b;"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("run: %d", w.Code)
	}
	var run toolResponse
	if err := json.Unmarshal(w.Body.Bytes(), &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/analyses/"+run.AnalysisID, "owner", "")
	if w.Code != http.StatusOK {
		t.Fatalf("owner get: expected 200, got %d", w.Code)
	}
	var got Analysis
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode analysis: %v", err)
	}
	if got.ID != run.AnalysisID || got.Tool != ToolComplexity {
		t.Fatalf("unexpected analysis %+v", got)
	}

	for _, guest := range []string{"intruder", ""} {
		w = doJSON(r, http.MethodGet, "/api/v1/analyses/"+run.AnalysisID, guest, "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("guest %q: expected 404, got %d", guest, w.Code)
		}
	}
	w = doJSON(r, http.MethodGet, "/api/v1/analyses/not-a-uuid", "owner", "")
	if env := decodeEnvelope(t, w); w.Code != http.StatusNotFound || env.Error.Code != ErrorCodeNotFound {
		t.Fatalf("expected not_found, got %d %q", w.Code, env.Error.Code)
	}
}

func TestListAnalyses(t *testing.T) {
	r, _ := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/v1/tools/sentiment", "g1", `{"text":"Excited and proud of the team"}`)
	doJSON(r, http.MethodPost, "/api/v1/tools/resume", "g1", `{"text":"I am a software engineer who likes computers and wants a job."}`)
	doJSON(r, http.MethodPost, "/api/v1/tools/sentiment", "g2", `{"text":"someone else"}`)

	w := doJSON(r, http.MethodGet, "/api/v1/analyses", "g1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []analysisSummary
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	headlines := map[Tool]string{}
	for _, s := range list {
		headlines[s.Tool] = s.Headline
	}
	if headlines[ToolSentiment] != "Motivated" || headlines[ToolResume] != "score 24" {
		t.Fatalf("unexpected headlines %v", headlines)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/analyses?limit=1", "g1", "")
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("expected 1 entry with limit=1, got %d (%v)", len(list), err)
	}
}

func TestListAnalysesRejectsBadRequests(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/v1/analyses", "", "")
	if env := decodeEnvelope(t, w); w.Code != http.StatusUnauthorized || env.Error.Code != ErrorCodeIdentity {
		t.Fatalf("anonymous: expected 401 identity_required, got %d %q", w.Code, env.Error.Code)
	}

	for _, query := range []string{"limit=abc", "limit=101", "offset=-1"} {
		w = doJSON(r, http.MethodGet, "/api/v1/analyses?"+query, "g1", "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", query, w.Code)
		}
	}
}

func TestHeadline(t *testing.T) {
	cases := []struct {
		tool   Tool
		result string
		want   string
	}{
		{ToolSentiment, `{"label":"Calm"}`, "Calm"},
		{ToolComplexity, `{"timeComplexity":"O(n)"}`, "O(n)"},
		{ToolResume, `{"score":0}`, "score 0"},
		{ToolResume, `{}`, ""},
		{ToolSentiment, `not json`, ""},
	}
	for _, tc := range cases {
		if got := headline(tc.tool, json.RawMessage(tc.result)); got != tc.want {
			t.Fatalf("headline(%s, %s) = %q, want %q", tc.tool, tc.result, got, tc.want)
		}
	}
}
