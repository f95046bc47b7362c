package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

type ProfileHandler struct {
	profile *screen.Profile
}

func NewProfileHandler(profile *screen.Profile) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

type profileUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func (h *ProfileHandler) Show(c *gin.Context) {
	view, err := h.profile.Open(c.Request.Context(), middleware.GetWorkspace(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Field is required")
		return
	}

	view, err := h.profile.Update(c.Request.Context(), middleware.GetWorkspace(c), req.Field, req.Value)
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
