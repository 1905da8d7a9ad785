package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Business error codes surfaced by the service layer.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeValidation        = "VALIDATION"
)

// AppError is a typed business failure. Persistence-layer errors are not
// wrapped in AppError and propagate to the caller as-is.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Code + ": " + e.Message
}

func NewNotFound(msg string) error          { return &AppError{Code: CodeNotFound, Message: msg} }
func NewConflict(msg string) error          { return &AppError{Code: CodeConflict, Message: msg} }
func NewUnauthorized(msg string) error      { return &AppError{Code: CodeUnauthorized, Message: msg} }
func NewInvalidTransition(msg string) error { return &AppError{Code: CodeInvalidTransition, Message: msg} }
func NewValidation(msg string) error        { return &AppError{Code: CodeValidation, Message: msg} }

// IsCode reports whether err carries the given business error code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// statusFor maps business error codes to HTTP statuses.
func statusFor(code string) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeInvalidTransition, CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error to its HTTP status. Unknown errors are
// treated as internal and their details are not leaked to the client.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSONError(c, statusFor(appErr.Code), appErr.Message, appErr.Code)
		return
	}
	GetLogger().Error("internal error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
}
