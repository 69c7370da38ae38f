package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// APIError is a failure that maps to a specific HTTP status. Anything else
// surfaces as a generic 500 without leaking internals.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewNotFound(message string) *APIError {
	return &APIError{Code: http.StatusNotFound, Message: message}
}

func NewConflict(message string) *APIError {
	return &APIError{Code: http.StatusConflict, Message: message}
}

func NewInvalidArgument(message string) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message}
}

func NewUnauthenticated(message string) *APIError {
	return &APIError{Code: http.StatusUnauthorized, Message: message}
}

func NewForbidden(message string) *APIError {
	return &APIError{Code: http.StatusForbidden, Message: message}
}

func NewUpstream(message string) *APIError {
	return &APIError{Code: http.StatusBadGateway, Message: message}
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithAPIError translates a service-layer error into the JSON error
// body. Uncategorized errors become a generic 500.
func RespondWithAPIError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		RespondWithError(c, apiErr.Code, apiErr.Message)
		return
	}
	RespondWithError(c, http.StatusInternalServerError, "Internal server error.")
}
