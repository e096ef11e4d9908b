package middleware

import (
	"errors"
	"net/http"

	"jobboard-backend/internal/delivery/http/response"
	"jobboard-backend/internal/domain"
	"jobboard-backend/pkg/apperror"
	"jobboard-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(string(domain.KeyRequestID))

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Errorw("Request failed",
					"request_id", requestID, "path", c.FullPath(), "status", appErr.Code, "error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Errorw("Unhandled error",
			"request_id", requestID, "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
