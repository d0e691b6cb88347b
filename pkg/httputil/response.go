package httputil

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/salon-api/pkg/errors"
)

// Response wraps error responses
type Response struct {
	Success bool   `json:"success"`
	Error   *Error `json:"error,omitempty"`
}

// Error represents API error
type Error struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var fieldMessages = map[string]string{
	"required": "field is required",
	"email":    "invalid email format",
	"max":      "value is too long",
	"gt":       "value must be positive",
	"money":    "must be a non-negative amount with at most two decimals",
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		status := appErr.StatusCode()
		message := appErr.Message
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
		}
		c.AbortWithStatusJSON(status, Response{
			Error: &Error{Code: status, Message: message},
		})
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
		Error: &Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		},
	})
}

// RespondWithBindError sends a 400 for a body or parameter that failed binding.
func RespondWithBindError(c *gin.Context, err error) {
	resp := &Error{
		Code:    http.StatusBadRequest,
		Message: "invalid request",
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		for _, fe := range verrs {
			msg := fieldMessages[fe.Tag()]
			if msg == "" {
				msg = fe.Error()
			}
			resp.Fields = append(resp.Fields, FieldError{Field: fe.Field(), Message: msg})
		}
	} else {
		resp.Message = err.Error()
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, Response{Error: resp})
}
