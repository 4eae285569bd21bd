package middleware

import (
	"strings"

	"github.com/SscSPs/pix_simulator/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog.
// Rejected operations are tracked too; their outcome is carried in the status_code property.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		accountID, exists := GetAccountIDFromContext(c)
		if !exists {
			return
		}

		// "/api/pix/transfer" -> "api_pix_transfer"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		eventName = strings.ReplaceAll(eventName, ":", "")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if code, ok := c.Get(ErrorCodeKey); ok {
			props["error_code"] = code
		}

		posthogClient.Enqueue(accountID, eventName, props)
	}
}

// ErrorCodeKey is the Gin context key under which handlers leave the code of a rejected request.
const ErrorCodeKey = "errorCode"
