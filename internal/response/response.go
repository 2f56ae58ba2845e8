package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	// Errors carries per-field messages of a rejected form.
	Errors map[string]string `json:"errors,omitempty"`
}

type ListResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Data    ListData `json:"data"`
}

type ListData struct {
	State       string      `json:"state"`
	Items       interface{} `json:"items"`
	Total       int         `json:"total"`
	TotalPages  int         `json:"total_pages"`
	Page        int         `json:"page"`
	Size        int         `json:"size"`
	StartIndex  int         `json:"start_index"`
	EndIndex    int         `json:"end_index"`
	HasMore     bool        `json:"has_more"`
	Query       interface{} `json:"query"`
	Error       string      `json:"error,omitempty"`
	FilterError string      `json:"filter_error,omitempty"`
}

// Success codes
const (
	CodeSuccess = "000"
	CodeCreated = "201"
)

// Error codes
const (
	CodeBadRequest         = "400"
	CodeUnauthorized       = "401"
	CodeForbidden          = "403"
	CodeNotFound           = "404"
	CodeConflict           = "409"
	CodeInternalError      = "500"
	CodeBadGateway         = "502"
	CodeServiceUnavailable = "503"
)

func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeCreated,
		Message: message,
		Data:    data,
	})
}

func SuccessList(c *gin.Context, data ListData) {
	c.JSON(http.StatusOK, ListResponse{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// FieldErrors answers with the field map of a rejected form.
func FieldErrors(c *gin.Context, statusCode int, code, message string, errs map[string]string) {
	c.AbortWithStatusJSON(statusCode, Response{
		Code:    code,
		Message: message,
		Errors:  errs,
	})
}
