package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telugutor/backend/internal/apperr"
	"github.com/telugutor/backend/internal/middleware"
)

// APIError is the wire shape of a failed request.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError in the response body.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondOK writes a 200 with the payload.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondError maps a service error to its HTTP status. Errors outside the
// apperr taxonomy are store failures and surface as a 500 without leaking
// the underlying message.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "not_found"}})
	case errors.Is(err, apperr.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "unauthorized"}})
	default:
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{Error: APIError{Message: "internal error", Code: "internal"}})
	}
}

// learnerID reads the learner identity the auth middleware stored.
func learnerID(c *gin.Context) string {
	return c.GetString(middleware.LearnerIDKey)
}
