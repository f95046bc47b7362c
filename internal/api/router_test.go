package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/config"
	"github.com/anantbhadani/CareerCraft/internal/errcode"
	"github.com/anantbhadani/CareerCraft/internal/meter"
	"github.com/anantbhadani/CareerCraft/internal/prefs"
	"github.com/anantbhadani/CareerCraft/internal/resume"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

type fakeAnalysisAPI struct {
	calls      atomic.Int32
	analyzeErr error
	jobs       []resume.JobListing
}

func (f *fakeAnalysisAPI) AnalyzeResume(context.Context, analysis.AnalyzeRequest) (*resume.AnalysisResult, error) {
	f.calls.Add(1)
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &resume.AnalysisResult{
		ATSScore:        72,
		MatchedKeywords: []string{"Python"},
		MissingKeywords: []string{"Docker"},
	}, nil
}

func (f *fakeAnalysisAPI) ExportResume(context.Context, any) (*analysis.Blob, error) {
	f.calls.Add(1)
	return &analysis.Blob{Data: []byte("exported"), ContentType: "text/plain"}, nil
}

func (f *fakeAnalysisAPI) GetJobRecommendations(context.Context, string, string, int) (*resume.JobRecommendations, error) {
	f.calls.Add(1)
	return &resume.JobRecommendations{Jobs: f.jobs}, nil
}

func (f *fakeAnalysisAPI) GetSkillRecommendations(context.Context, []string) ([]resume.SkillRecord, error) {
	f.calls.Add(1)
	return []resume.SkillRecord{{Name: "Docker", Status: resume.StatusPending}}, nil
}

func newTestRouter(t *testing.T, client *fakeAnalysisAPI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := prefs.NewStore(prefs.NewMemoryKV(), logger, 0)
	state := screen.NewState()

	router := NewRouter(&config.Config{Env: config.EnvDevelopment}, logger)
	RegisterRoutes(router, Screens{
		Dashboard: screen.NewDashboard(client, store, state, nil, nil, logger),
		Jobs:      screen.NewJobs(client, store, state, 0, logger),
		Skills:    screen.NewSkills(client, store, state, logger),
		Profile:   screen.NewProfile(store),
		Settings:  screen.NewSettings(store, state, nil, logger),
		Meter:     NewMeterHandler(logger, nil, meter.WithDuration(20*time.Millisecond), meter.WithSteps(5)),
	})
	return router
}

func perform(router http.Handler, method, target, workspace string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if workspace != "" {
		req.Header.Set(middleware.WorkspaceHeader, workspace)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func formBody(values url.Values) (io.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %s: %v", w.Body.String(), err)
	}
	return resp
}

func TestAnalyzeFlowAcrossScreens(t *testing.T) {
	client := &fakeAnalysisAPI{}
	router := newTestRouter(t, client)

	body, ct := formBody(url.Values{
		"resumeText":     {"Python developer"},
		"jobDescription": {"Backend Engineer\nPython, Docker"},
	})
	w := perform(router, http.MethodPost, "/dashboard/analyze", "alice", body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var view screen.AnalysisView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Meter.Band != meter.BandPrimary || view.Meter.Score != 72 {
		t.Fatalf("unexpected meter %+v", view.Meter)
	}
	if view.Notice == nil || view.Notice.Message != "Analysis complete!" {
		t.Fatalf("unexpected notice %+v", view.Notice)
	}
	if w.Header().Get(middleware.CorrelationIDHeader) == "" {
		t.Fatal("expected correlation id header")
	}

	w = perform(router, http.MethodGet, "/profile", "alice", nil, "")
	var profile screen.ProfileView
	if err := json.Unmarshal(w.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if len(profile.Scans) != 1 || profile.Scans[0].JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected scans %+v", profile.Scans)
	}

	w = perform(router, http.MethodGet, "/jobs", "alice", nil, "")
	var jobs screen.JobsView
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("decode jobs: %v", err)
	}
	if !jobs.HasResume {
		t.Fatalf("cached resume should be visible to the jobs screen: %s", w.Body.String())
	}

	w = perform(router, http.MethodGet, "/jobs", "bob", nil, "")
	if err := json.Unmarshal(w.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("decode jobs: %v", err)
	}
	if !jobs.NeedsAnalysis {
		t.Fatalf("other workspaces start empty: %s", w.Body.String())
	}
}

func TestAnalyzeValidationErrors(t *testing.T) {
	client := &fakeAnalysisAPI{}
	router := newTestRouter(t, client)

	body, ct := formBody(url.Values{"resumeText": {"Python developer"}})
	w := perform(router, http.MethodPost, "/dashboard/analyze", "", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != errcode.Validation || resp.Notice.Message != "Please enter a job description" {
		t.Fatalf("unexpected error body %+v", resp)
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	part, _ := writer.CreateFormFile("resume", "resume.txt")
	_, _ = part.Write([]byte("plain text resume"))
	_ = writer.WriteField("jobDescription", "Go developer")
	_ = writer.Close()

	w = perform(router, http.MethodPost, "/dashboard/analyze", "", buf, writer.FormDataContentType())
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Notice.Message != "Please upload a PDF or DOCX file" {
		t.Fatalf("unexpected error body %+v", resp)
	}

	if client.calls.Load() != 0 {
		t.Fatalf("validation failures must not reach the analysis API, got %d calls", client.calls.Load())
	}
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	client := &fakeAnalysisAPI{analyzeErr: &analysis.APIError{Operation: analysis.OpAnalyze, Status: 422, Message: "Resume could not be parsed"}}
	router := newTestRouter(t, client)

	body, ct := formBody(url.Values{"resumeText": {"x"}, "jobDescription": {"y"}})
	w := perform(router, http.MethodPost, "/dashboard/analyze", "", body, ct)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Code != errcode.UpstreamError || resp.Notice.Message != "Resume could not be parsed" {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestJobSearchEmptyResult(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{jobs: []resume.JobListing{}})

	w := perform(router, http.MethodPost, "/jobs/search", "", strings.NewReader(`{"resumeText":"Go dev","location":"Remote"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var view screen.JobsView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.Jobs) != 0 || view.Notice == nil || view.Notice.Level != screen.LevelInfo {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestJobSearchAcceptsEmptyChunkedBody(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{jobs: []resume.JobListing{{ID: "1", Title: "Go Engineer", MatchScore: 70}}})

	body, ct := formBody(url.Values{
		"resumeText":     {"Python developer"},
		"jobDescription": {"Backend Engineer"},
	})
	if w := perform(router, http.MethodPost, "/dashboard/analyze", "bob", body, ct); w.Code != http.StatusOK {
		t.Fatalf("analyze: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	for _, length := range []int64{-1, 0} {
		req := httptest.NewRequest(http.MethodPost, "/jobs/search", strings.NewReader(""))
		req.ContentLength = length
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.WorkspaceHeader, "bob")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("content length %d: expected 200, got %d: %s", length, w.Code, w.Body.String())
		}
		var view screen.JobsView
		if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(view.Jobs) != 1 {
			t.Fatalf("expected the cached resume to be searched, got %+v", view)
		}
	}

	w := perform(router, http.MethodPost, "/jobs/search", "bob", strings.NewReader(`{"resumeText":`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body: expected 400, got %d", w.Code)
	}
}

func TestSkillStatusErrors(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{})

	w := perform(router, http.MethodPost, "/skills/0/status", "", strings.NewReader(`{"status":"mastered"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = perform(router, http.MethodPost, "/skills/0/status", "", strings.NewReader(`{"status":"in_progress"}`), "application/json")
	if w.Code != http.StatusConflict || decodeError(t, w).Code != errcode.SkillLocked {
		t.Fatalf("expected 409 skill locked, got %d: %s", w.Code, w.Body.String())
	}

	w = perform(router, http.MethodPost, "/skills/9/status", "", strings.NewReader(`{"status":"mastered"}`), "application/json")
	if w.Code != http.StatusNotFound || decodeError(t, w).Code != errcode.ResourceMissing {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	w = perform(router, http.MethodPost, "/skills/abc/status", "", strings.NewReader(`{"status":"mastered"}`), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSettingsExportDownload(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{})

	w := perform(router, http.MethodPatch, "/profile", "", strings.NewReader(`{"field":"name","value":"Ada"}`), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = perform(router, http.MethodGet, "/settings/export", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); got != `attachment; filename="careercraft-data.json"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if !strings.Contains(w.Body.String(), `"scans": null`) {
		t.Fatalf("expected null scans, got %s", w.Body.String())
	}
}

func TestWorkspaceValidationAndNotFound(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{})

	w := perform(router, http.MethodGet, "/settings?workspace=bad%20id", "", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid workspace, got %d", w.Code)
	}

	w = perform(router, http.MethodGet, "/nowhere", "", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var view screen.NotFoundView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.QuickLinks) != 3 || view.QuickLinks[1].Path != "/dashboard" || view.Path != "/nowhere" {
		t.Fatalf("unexpected not found view %+v", view)
	}

	w = perform(router, http.MethodGet, "/", "", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Instant Analysis") {
		t.Fatalf("unexpected hero response %d %s", w.Code, w.Body.String())
	}
}

func TestMeterStream(t *testing.T) {
	server := httptest.NewServer(newTestRouter(t, &fakeAnalysisAPI{}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/dashboard/meter?score=72.5"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readUntilDone := func() meter.Frame {
		_ = conn.SetReadDeadline(time.Now().Add(3 * time.Second))
		for {
			var frame meter.Frame
			if err := conn.ReadJSON(&frame); err != nil {
				t.Fatalf("read frame: %v", err)
			}
			if frame.Done {
				return frame
			}
		}
	}

	final := readUntilDone()
	if final.Value != 73 || final.Band != meter.BandPrimary || final.Verdict == "" {
		t.Fatalf("unexpected final frame %+v", final)
	}

	if err := conn.WriteJSON(map[string]float64{"score": 35}); err != nil {
		t.Fatalf("write restart: %v", err)
	}
	final = readUntilDone()
	if final.Value != 35 || final.Band != meter.BandDanger {
		t.Fatalf("unexpected restarted frame %+v", final)
	}
}

func TestMeterRejectsBadScore(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{})
	for _, score := range []string{"abc", "1e19", "-1", "100.5", "NaN", "Inf"} {
		w := perform(router, http.MethodGet, "/dashboard/meter?score="+score, "", nil, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("score %s: expected 400, got %d", score, w.Code)
		}
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(t, &fakeAnalysisAPI{})

	w := perform(router, http.MethodGet, "/health", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}

	w = perform(router, http.MethodGet, "/metrics", "", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "careercraft_meter_animations_active") {
		t.Fatalf("meter gauge missing from metrics output")
	}
}
