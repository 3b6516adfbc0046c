package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/VERT-sh/waitress/internal/apierr"
	"github.com/VERT-sh/waitress/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandler recovers panics and flushes any gin.Context error into the
// {"type":"success"|"error","data":...} envelope. StatusError carries its
// own status code; anything else is reported as 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("%v", r)
				logger.Error("panic recovered", err, map[string]interface{}{
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				})
				c.JSON(http.StatusInternalServerError, apierr.Error("internal server error"))
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		logger.Error("request error", err, map[string]interface{}{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})

		var statusErr *apierr.StatusError
		if errors.As(err, &statusErr) {
			c.JSON(statusErr.StatusCode(), apierr.Error(statusErr.Message))
			return
		}

		c.JSON(http.StatusInternalServerError, apierr.Error(err.Error()))
	}
}
