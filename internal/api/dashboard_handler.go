package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/screen"
	"github.com/anantbhadani/CareerCraft/internal/upload"
)

type DashboardHandler struct {
	dashboard *screen.Dashboard
}

func NewDashboardHandler(dashboard *screen.Dashboard) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	c.JSON(http.StatusOK, h.dashboard.Current(middleware.GetWorkspace(c)))
}

// Analyze accepts a multipart form with either a "resume" file or a
// "resumeText" field, plus "jobDescription".
func (h *DashboardHandler) Analyze(c *gin.Context) {
	in := screen.AnalyzeInput{
		ResumeText:     c.PostForm("resumeText"),
		JobDescription: c.PostForm("jobDescription"),
	}

	header, err := c.FormFile("resume")
	switch {
	case err == nil:
		file, err := readUpload(header)
		if err != nil {
			Fail(c, fmt.Errorf("read upload: %w", err))
			return
		}
		in.File = file
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		BadRequest(c, "Invalid upload")
		return
	}

	view, err := h.dashboard.Analyze(c.Request.Context(), middleware.GetWorkspace(c), in)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// readUpload reads at most one byte past the size cap, which is enough for
// validation to reject an oversized file.
func readUpload(header *multipart.FileHeader) (*analysis.File, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, upload.MaxFileBytes+1))
	if err != nil {
		return nil, err
	}
	return &analysis.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// Export forwards the optimized resume JSON body to the export endpoint.
func (h *DashboardHandler) Export(c *gin.Context) {
	var payload json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "Invalid export payload")
		return
	}
	var optimized any
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		optimized = payload
	}

	result, err := h.dashboard.Export(c.Request.Context(), middleware.GetWorkspace(c), optimized)
	if err != nil {
		Fail(c, err)
		return
	}
	if result.URL != "" {
		c.JSON(http.StatusOK, result)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
