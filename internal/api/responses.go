package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/slideforge/layout-engine/internal/domain"
)

// errorCode is the machine-readable error tag carried next to the message.
const (
	codeNotFound        = "NOT_FOUND"
	codeInvalidArgument = "INVALID_ARGUMENT"
	codeInternal        = "INTERNAL_ERROR"
)

// writeError maps domain errors onto HTTP status codes: NotFound to 404,
// InvalidArgument to 400, everything else to 500.
func writeError(c *gin.Context, err error) {
	c.Error(err)

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": notFound.Error(),
			"code":  codeNotFound,
		})
		return
	}

	var invalid *domain.InvalidArgumentError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": invalid.Error(),
			"code":  codeInvalidArgument,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error",
		"code":  codeInternal,
	})
}
