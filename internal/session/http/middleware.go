package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sessionUseCase "github.com/allisson/journal/internal/session/usecase"
)

// ActivityMiddleware refreshes the session idle timer after every successful
// journal request. Failed requests, including 423 responses, do not count as activity.
func ActivityMiddleware(keys sessionUseCase.KeyGuard) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			keys.RecordActivity()
		}
	}
}
