package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/logger"
)

// ErrorHandler turns errors attached with c.Error into the JSON error
// envelope. Internal details are logged with the request ID and never sent
// to the client. Responses a handler already wrote are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			appErr = apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if appErr.Internal != nil {
			logger.Get().Errorw("request failed",
				"request_id", RequestID(c),
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)
		}

		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
	}
}
