package response

import (
	"recruiter-pipeline-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Errors    []string    `json:"errors,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}

// Error sends an error response; details are field-level messages and may be nil
func Error(c *gin.Context, code int, message string, details []string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Errors:    details,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}

// Retry sends an error response telling the client the request is safe to repeat
func Retry(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Retryable: true,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}
