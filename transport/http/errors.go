package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/janus-id/janus/core"
)

// statusFor maps error kinds to transport status codes.
func statusFor(kind core.Kind) int {
	switch kind {
	case core.KindInvalidInput, core.KindExpired, core.KindMismatch:
		return http.StatusBadRequest
	case core.KindConflict:
		return http.StatusConflict
	case core.KindUnauthorized:
		return http.StatusUnauthorized
	case core.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError translates a core error into a JSON response. Internal
// details are logged server-side and never reach the client.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	kind := core.KindOf(err)
	if kind == core.KindInternal {
		logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(statusFor(kind), gin.H{"error": core.MessageOf(err)})
}
