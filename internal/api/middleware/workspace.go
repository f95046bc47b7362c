package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/anantbhadani/CareerCraft/internal/errcode"
)

const (
	workspaceKey     = "workspace"
	WorkspaceHeader  = "X-Workspace-ID"
	WorkspaceQuery   = "workspace"
	DefaultWorkspace = "default"
)

var workspacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// WorkspaceMiddleware resolves which preference namespace the request works
// on: the X-Workspace-ID header, then the workspace query parameter, then
// "default". Anything else is rejected.
func WorkspaceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws := c.GetHeader(WorkspaceHeader)
		if ws == "" {
			ws = c.Query(WorkspaceQuery)
		}
		if ws == "" {
			ws = DefaultWorkspace
		}
		if !workspacePattern.MatchString(ws) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid workspace id",
				"code":  errcode.Validation,
				"notice": gin.H{
					"level":   "error",
					"message": "Invalid workspace id",
				},
			})
			return
		}

		c.Set(workspaceKey, ws)
		c.Next()
	}
}

func GetWorkspace(c *gin.Context) string {
	return c.GetString(workspaceKey)
}
