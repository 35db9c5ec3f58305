package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
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

func NotFoundResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func UnauthorizedResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps a use-case error to its HTTP shape. Unauthorized and not-found
// share one generic response so other tenants' ids cannot be probed. It
// reports false when err is not a business error and nothing was written.
func Respond(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}

	switch be.Kind {
	case KindValidation:
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    be.Code,
			Message: "Invalid input.",
			Fields:  be.Fields,
		})
	case KindUnauthorized, KindNotFound:
		Write(c, http.StatusNotFound, "not_permitted", "Not permitted.")
	case KindConflict:
		Write(c, http.StatusConflict, be.Code, "That time is no longer available, please choose another time.")
	case KindForbidden:
		Write(c, http.StatusForbidden, be.Code, "This action is not allowed.")
	case KindInvalidTransition:
		Write(c, http.StatusUnprocessableEntity, be.Code, "Invalid status change.")
	default:
		return false
	}
	return true
}
