package utils

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint speaks: a status mirror, the
// payload (null on failure), a human-readable message and an error detail.
// The error detail is either a string or a list of ValidationError for
// batch endpoints.
type Response struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
	Error   any    `json:"error"`
}

// ValidationError reports one rejected item of a batch request.
type ValidationError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

func JSON(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Response{
		Status:  status,
		Data:    data,
		Message: message,
		Error:   nil,
	})
}

func Error(c *gin.Context, status int, message string, detail any) {
	c.JSON(status, Response{
		Status:  status,
		Data:    nil,
		Message: message,
		Error:   detail,
	})
}

// AbortError is Error for middleware: it also stops the handler chain.
func AbortError(c *gin.Context, status int, message string, detail any) {
	c.AbortWithStatusJSON(status, Response{
		Status:  status,
		Data:    nil,
		Message: message,
		Error:   detail,
	})
}
