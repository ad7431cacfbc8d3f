package middleware

import (
	"errors"
	"net/http"

	"recruiter-pipeline-backend/internal/delivery/http/response"
	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"
	"recruiter-pipeline-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		attrs := []any{
			"owner_id", c.GetString(string(domain.KeyOwnerID)),
			"operation", c.Request.Method + " " + c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"status", appErr.Code,
		}
		if appErr.Err != nil {
			attrs = append(attrs, "error", appErr.Err.Error())
		} else {
			attrs = append(attrs, "error", appErr.Message)
		}

		switch {
		case appErr.Code >= http.StatusInternalServerError:
			logger.Log.Error("request failed", attrs...)
		default:
			logger.Log.Warn("request rejected", attrs...)
		}

		if appErr.Code == http.StatusInternalServerError {
			// Never expose internal error details to clients
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}
		if appErr.Retryable {
			response.Retry(c, appErr.Code, appErr.Message)
			return
		}
		response.Error(c, appErr.Code, appErr.Message, appErr.Details)
	}
}
