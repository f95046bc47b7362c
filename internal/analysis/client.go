package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/anantbhadani/CareerCraft/internal/config"
	"github.com/anantbhadani/CareerCraft/internal/metrics"
	"github.com/anantbhadani/CareerCraft/internal/resume"
)

const defaultJobLimit = 10

// File is an uploaded resume forwarded as the multipart "resume" part.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// AnalyzeRequest is the input of AnalyzeResume. File wins over ResumeText when both are set.
type AnalyzeRequest struct {
	ResumeText     string
	File           *File
	JobDescription string
}

// Validate performs the checks that must pass before any network call.
func (r AnalyzeRequest) Validate() error {
	if r.File == nil && strings.TrimSpace(r.ResumeText) == "" {
		return ErrResumeMissing
	}
	if strings.TrimSpace(r.JobDescription) == "" {
		return ErrJobDescriptionMissing
	}
	return nil
}

// Blob is an exported document, passed through untouched.
type Blob struct {
	Data        []byte
	ContentType string
}

// Client talks to the remote analysis service. Every call is a single
// round trip: no retries, no caching, no de-duplication.
type Client struct {
	http     *resty.Client
	logger   *slog.Logger
	jobLimit int
}

// NewClient builds a client for the configured base URL.
func NewClient(cfg config.AnalysisConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	jobLimit := cfg.JobLimit
	if jobLimit <= 0 {
		jobLimit = defaultJobLimit
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		http:     httpClient,
		logger:   logger.With(slog.String("component", "analysis_client")),
		jobLimit: jobLimit,
	}
}

// JobLimit is the limit used when callers pass none.
func (c *Client) JobLimit() int {
	return c.jobLimit
}

// AnalyzeResume posts the resume and job description as a multipart form.
func (c *Client) AnalyzeResume(ctx context.Context, req AnalyzeRequest) (result *resume.AnalysisResult, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	done := metrics.ObserveUpstream(OpAnalyze)
	defer func() { done(err) }()

	r := c.http.R().SetContext(ctx)
	if req.File != nil {
		contentType := req.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		r.SetMultipartField("resume", req.File.Name, contentType, bytes.NewReader(req.File.Data))
	} else {
		r.SetMultipartFormData(map[string]string{"resumeText": req.ResumeText})
	}
	r.SetMultipartFormData(map[string]string{"jobDescription": req.JobDescription})

	resp, err := r.Post("/analyze")
	if err != nil {
		c.logger.Warn("analyze request failed", slog.Any("error", err))
		return nil, newTransportError(OpAnalyze, err)
	}
	if resp.IsError() {
		apiErr := newStatusError(OpAnalyze, resp.StatusCode(), resp.Body())
		c.logger.Warn("analyze rejected", slog.Int("status", apiErr.Status), slog.String("message", apiErr.Message))
		return nil, apiErr
	}

	var out resume.AnalysisResult
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &APIError{
			Operation: OpAnalyze,
			Status:    resp.StatusCode(),
			Message:   FallbackMessage(OpAnalyze),
			Err:       fmt.Errorf("decode analysis result: %w", err),
		}
	}
	c.logger.Debug("analysis received", slog.Float64("ats_score", out.ATSScore))
	return &out, nil
}

// GetSkillRecommendations asks for learning resources for the given skills.
// The skill names travel as one comma-joined query parameter.
func (c *Client) GetSkillRecommendations(ctx context.Context, missingSkills []string) (records []resume.SkillRecord, err error) {
	done := metrics.ObserveUpstream(OpSkills)
	defer func() { done(err) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("skills", strings.Join(missingSkills, ",")).
		Get("/skills")
	if err != nil {
		return nil, newTransportError(OpSkills, err)
	}
	if resp.IsError() {
		return nil, newStatusError(OpSkills, resp.StatusCode(), resp.Body())
	}

	records, err = decodeSkillRecords(resp.Body())
	if err != nil {
		return nil, &APIError{
			Operation: OpSkills,
			Status:    resp.StatusCode(),
			Message:   FallbackMessage(OpSkills),
			Err:       err,
		}
	}
	return records, nil
}

// ExportResume posts the optimized resume as JSON and returns the produced document.
func (c *Client) ExportResume(ctx context.Context, optimized any) (blob *Blob, err error) {
	done := metrics.ObserveUpstream(OpExport)
	defer func() { done(err) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetHeader("Content-Type", "application/json").
		SetBody(optimized).
		Post("/export")
	if err != nil {
		return nil, newTransportError(OpExport, err)
	}
	if resp.IsError() {
		return nil, newStatusError(OpExport, resp.StatusCode(), resp.Body())
	}

	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Blob{Data: resp.Body(), ContentType: contentType}, nil
}

// GetJobRecommendations searches jobs for the resume text. A limit <= 0 uses the configured default.
// An empty job list is a normal result.
func (c *Client) GetJobRecommendations(ctx context.Context, resumeText, location string, limit int) (recs *resume.JobRecommendations, err error) {
	if limit <= 0 {
		limit = c.jobLimit
	}

	done := metrics.ObserveUpstream(OpJobs)
	defer func() { done(err) }()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"resumeText": resumeText,
			"location":   location,
			"limit":      strconv.Itoa(limit),
		}).
		Get("/jobs/recommend")
	if err != nil {
		return nil, newTransportError(OpJobs, err)
	}
	if resp.IsError() {
		return nil, newStatusError(OpJobs, resp.StatusCode(), resp.Body())
	}

	var out resume.JobRecommendations
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &APIError{
			Operation: OpJobs,
			Status:    resp.StatusCode(),
			Message:   FallbackMessage(OpJobs),
			Err:       fmt.Errorf("decode job recommendations: %w", err),
		}
	}
	if out.Jobs == nil {
		out.Jobs = []resume.JobListing{}
	}
	return &out, nil
}

// decodeSkillRecords accepts a bare array or an object wrapping one under
// "skills", "recommendations" or "data". Bare strings become pending skills.
func decodeSkillRecords(body []byte) ([]resume.SkillRecord, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("decode skill recommendations: invalid json")
	}

	list := gjson.ParseBytes(body)
	if !list.IsArray() {
		found := false
		for _, path := range []string{"skills", "recommendations", "data"} {
			if candidate := list.Get(path); candidate.IsArray() {
				list = candidate
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("decode skill recommendations: no skill list in response")
		}
	}

	records := make([]resume.SkillRecord, 0, len(list.Array()))
	var decodeErr error
	list.ForEach(func(_, value gjson.Result) bool {
		var rec resume.SkillRecord
		switch value.Type {
		case gjson.String:
			rec.Name = value.String()
		case gjson.JSON:
			if err := json.Unmarshal([]byte(value.Raw), &rec); err != nil {
				decodeErr = fmt.Errorf("decode skill record: %w", err)
				return false
			}
		default:
			return true
		}
		if strings.TrimSpace(rec.Name) == "" {
			return true
		}
		if !rec.Status.Valid() {
			rec.Status = resume.StatusPending
		}
		if rec.Resources == nil {
			rec.Resources = []resume.LearningResource{}
		}
		records = append(records, rec)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return records, nil
}
