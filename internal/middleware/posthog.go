package middleware

import (
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/branchledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked.
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful API calls as analytics events named after the route,
// e.g. "/api/v1/gl/entries" -> "api_v1_gl_entries".
func PosthogMiddleware(tracker portssvc.EventTracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		auth, ok := GetAuthContext(c)
		if !ok {
			return
		}

		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.NewReplacer("/", "_", ":", "").Replace(eventName)
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
			"role":        string(auth.Role),
			"branch_id":   auth.BranchID,
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		tracker.Enqueue(auth.UserID, eventName, props)
	}
}
