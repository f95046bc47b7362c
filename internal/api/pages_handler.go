package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/screen"
)

func Hero(c *gin.Context) {
	c.JSON(http.StatusOK, screen.Hero())
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, screen.NotFound(c.Request.URL.Path))
}
