package httputil

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/journal/internal/errors"
)

const (
	// DefaultHistoryLimit is the number of threads returned when no limit is given.
	DefaultHistoryLimit = 20
	// MaxHistoryLimit bounds a single history page; each thread is decrypted in full.
	MaxHistoryLimit = 100
)

// ParsePagination reads the offset and limit query parameters.
// Errors wrap apperrors.ErrInvalidInput.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "offset must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultHistoryLimit)))
	if err != nil || limit < 1 || limit > MaxHistoryLimit {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidInput, "limit must be between 1 and 100")
	}

	return offset, limit, nil
}
