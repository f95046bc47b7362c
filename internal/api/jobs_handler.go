package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

type JobsHandler struct {
	jobs *screen.Jobs
}

func NewJobsHandler(jobs *screen.Jobs) *JobsHandler {
	return &JobsHandler{jobs: jobs}
}

type jobSearchRequest struct {
	ResumeText string `json:"resumeText"`
	Location   string `json:"location"`
}

func (h *JobsHandler) Show(c *gin.Context) {
	view, err := h.jobs.Open(c.Request.Context(), middleware.GetWorkspace(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *JobsHandler) Search(c *gin.Context) {
	// An empty body searches with the cached resume text.
	var req jobSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		BadRequest(c, "Invalid search request")
		return
	}

	view, err := h.jobs.Search(c.Request.Context(), middleware.GetWorkspace(c), req.ResumeText, req.Location)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
