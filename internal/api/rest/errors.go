package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-staker/internal/api/shared/errors"
	"github.com/feral-file/ff-staker/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, err error) {
	if apiErr, ok := err.(*errors.APIError); ok {
		c.JSON(http.StatusUnprocessableEntity, apiErr)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(err.Error()))
}

// respondError maps ledger rejections to their status and anything else to an internal error
func respondError(c *gin.Context, err error, message string) {
	if status, apiErr, ok := errors.FromLedgerError(err); ok {
		c.JSON(status, apiErr)
		return
	}

	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.FullPath()))
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message))
}
