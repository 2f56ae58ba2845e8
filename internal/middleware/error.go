package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tylum123/gendercare-admin/internal/domain"
	"github.com/tylum123/gendercare-admin/internal/response"
)

// ErrorToHTTP maps the core error taxonomy to an HTTP status, a response
// code and a user-facing message.
func ErrorToHTTP(err error) (int, string, string) {
	var (
		validationErr *domain.ValidationError
		permErr       *domain.PermissionError
		serverErr     *domain.ServerError
	)

	switch {
	case err == nil:
		return http.StatusOK, response.CodeSuccess, "success"
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, response.CodeBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnknownFilter), errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, response.CodeBadRequest, err.Error()
	case errors.As(err, &permErr):
		return http.StatusForbidden, response.CodeForbidden, permErr.Error()
	case errors.Is(err, domain.ErrNoSession), errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, response.CodeUnauthorized, err.Error()
	case errors.As(err, &serverErr):
		msg := serverErr.Message
		if msg == "" {
			msg = http.StatusText(serverErr.Status)
		}
		if serverErr.Status >= 400 && serverErr.Status < 500 {
			return serverErr.Status, strconv.Itoa(serverErr.Status), msg
		}
		return http.StatusBadGateway, response.CodeBadGateway, msg
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusServiceUnavailable, response.CodeServiceUnavailable, "The remote service is unreachable, please retry"
	default:
		return http.StatusInternalServerError, response.CodeInternalError, "internal server error"
	}
}

// AbortWithError writes err through ErrorToHTTP and records it for the logger.
// Field errors, when present, are included in the body.
func AbortWithError(c *gin.Context, err error, fields map[string]string) {
	_ = c.Error(err)
	status, code, msg := ErrorToHTTP(err)
	if len(fields) == 0 {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			fields = validationErr.Fields
		}
	}
	if len(fields) > 0 {
		response.FieldErrors(c, status, code, msg, fields)
		return
	}
	response.Error(c, status, code, msg)
}
