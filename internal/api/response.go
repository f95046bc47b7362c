package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/analysis"
	"github.com/anantbhadani/CareerCraft/internal/api/middleware"
	"github.com/anantbhadani/CareerCraft/internal/errcode"
	"github.com/anantbhadani/CareerCraft/internal/screen"
)

type errorResponse struct {
	Error  string        `json:"error"`
	Code   int           `json:"code"`
	Notice screen.Notice `json:"notice"`
}

// Fail writes err as the JSON error body, choosing status and code by kind.
func Fail(c *gin.Context, err error) {
	status, code := classify(err)
	notice := screen.NoticeFor(err)

	log := middleware.LoggerFromContext(c)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.Any("error", err), slog.Int("code", code))
	} else {
		log.Info("request rejected", slog.Any("error", err), slog.Int("code", code))
	}

	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error(), Code: code, Notice: notice})
}

func classify(err error) (status, code int) {
	var validation *screen.ValidationError
	var apiErr *analysis.APIError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, errcode.Validation
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, errcode.UpstreamError
	case errors.Is(err, screen.ErrSuperseded):
		return http.StatusConflict, errcode.Superseded
	case errors.Is(err, screen.ErrSkillLocked):
		return http.StatusConflict, errcode.SkillLocked
	case errors.Is(err, screen.ErrSkillNotFound):
		return http.StatusNotFound, errcode.ResourceMissing
	default:
		return http.StatusInternalServerError, errcode.SystemError
	}
}

// BadRequest rejects malformed request bodies before they reach a screen.
func BadRequest(c *gin.Context, msg string) {
	Fail(c, &screen.ValidationError{Message: msg})
}
