package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error writes the flat error body the API exposes. The request id set by
// the middleware is attached so clients can correlate failures with logs.
func Error(c *gin.Context, status int, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	body := gin.H{"error": message}
	if details != nil {
		body["details"] = details
	}
	if id := c.GetString("request_id"); id != "" {
		body["request_id"] = id
	}
	c.JSON(status, body)
}

// AbortError writes the error body and stops the handler chain.
func AbortError(c *gin.Context, status int, message string, details interface{}) {
	Error(c, status, message, details)
	c.Abort()
}
