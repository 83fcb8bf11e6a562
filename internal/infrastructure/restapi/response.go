package restapi

import (
	"errors"
	"net/http"

	"yieldhop/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope of every successful response.
type APIResponse struct {
	Data          any    `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIError is the body of every error response.
type APIError struct {
	Error string `json:"error"`
}

func respondOK(c *gin.Context, data any, message string) {
	c.JSON(http.StatusOK, APIResponse{Data: data, StatusMessage: message})
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), APIError{Error: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, entity.ErrInvalidWallet),
		errors.Is(err, entity.ErrUnknownChain),
		errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrUnknownAction),
		errors.Is(err, entity.ErrInvalidTxHash):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrActionNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrTxMismatch):
		return http.StatusConflict
	case errors.Is(err, entity.ErrReceiptTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
