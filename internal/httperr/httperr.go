package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func UnprocessableEntity(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// WriteBusiness maps a BusinessError onto its HTTP status.
// Conflict and InvalidTransition are expected user-facing outcomes
// ("pick another time", "already updated"), never 500s.
func WriteBusiness(c *gin.Context, err error, message string) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, message)
	case KindConflict:
		Conflict(c, be.Code, message)
	case KindInvalidTransition:
		UnprocessableEntity(c, be.Code, message)
	default:
		BadRequest(c, be.Code, message)
	}
	return true
}
