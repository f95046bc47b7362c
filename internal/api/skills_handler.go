package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/resume"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

type SkillsHandler struct {
	skills *screen.Skills
}

func NewSkillsHandler(skills *screen.Skills) *SkillsHandler {
	return &SkillsHandler{skills: skills}
}

type skillStatusRequest struct {
	Status resume.SkillStatus `json:"status" binding:"required"`
}

type skillRecommendRequest struct {
	Skills []string `json:"skills" binding:"required"`
}

func (h *SkillsHandler) Show(c *gin.Context) {
	view, err := h.skills.Open(c.Request.Context(), middleware.GetWorkspace(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SkillsHandler) UpdateStatus(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		BadRequest(c, "Invalid skill index")
		return
	}
	var req skillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Status is required")
		return
	}

	view, err := h.skills.UpdateStatus(c.Request.Context(), middleware.GetWorkspace(c), index, req.Status)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SkillsHandler) Recommend(c *gin.Context) {
	var req skillRecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Please provide at least one skill")
		return
	}

	view, err := h.skills.Recommend(c.Request.Context(), middleware.GetWorkspace(c), req.Skills)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
