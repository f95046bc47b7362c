package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

type SettingsHandler struct {
	settings *screen.Settings
}

func NewSettingsHandler(settings *screen.Settings) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

func (h *SettingsHandler) Show(c *gin.Context) {
	view, err := h.settings.Open(c.Request.Context(), middleware.GetWorkspace(c))
	respond(c, view, err)
}

func (h *SettingsHandler) ToggleTheme(c *gin.Context) {
	view, err := h.settings.ToggleTheme(c.Request.Context(), middleware.GetWorkspace(c))
	respond(c, view, err)
}

func (h *SettingsHandler) TogglePrivacy(c *gin.Context) {
	view, err := h.settings.TogglePrivacy(c.Request.Context(), middleware.GetWorkspace(c))
	respond(c, view, err)
}

func (h *SettingsHandler) ClearData(c *gin.Context) {
	view, err := h.settings.ClearData(c.Request.Context(), middleware.GetWorkspace(c))
	respond(c, view, err)
}

func (h *SettingsHandler) ExportData(c *gin.Context) {
	file, err := h.settings.ExportData(c.Request.Context(), middleware.GetWorkspace(c))
	if err != nil {
		Fail(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "application/json", file.Data)
}

func respond(c *gin.Context, view any, err error) {
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
