package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // error code constant, for client mapping
	Message string `json:"message"` // human readable detail
}

// RespondWithError writes a standard error response.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shorthand responders for the common cases.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "You do not have the necessary permissions"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal server error occurred"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondFromDatabaseError classifies a persistence error and writes the
// matching response. Controllers call this after their explicit sentinel
// checks have not matched.
func RespondFromDatabaseError(c *gin.Context, err error, resource string) {
	switch Classify(err) {
	case KindNotFound:
		NotFound(c, ResourceNotFound, resource+" not found")
	case KindConflict:
		message := "A " + resource + " with these values already exists"
		if field := ConflictField(err); field != "" {
			message = "A " + resource + " with this " + field + " already exists"
		}
		Conflict(c, ResourceAlreadyExists, message)
	case KindValidation:
		BadRequest(c, ValidationInvalidInput, "Invalid "+resource+" data")
	default:
		InternalError(c, "")
	}
}
