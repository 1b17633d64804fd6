package handler

import (
	"errors"
	"net/http"

	"stockledger/internal/service"
	"stockledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrLineNotFound),
		errors.Is(err, service.ErrBatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotUndoable):
		return http.StatusConflict
	case errors.Is(err, service.ErrQueueBusy):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	c.JSON(status, response.Error(status, err.Error()))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
}
