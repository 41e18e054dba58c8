package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"CourseForge/pkg/logger"
)

func LoggingMiddleware(log logger.Log) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		path := c.Request.URL.Path
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = fmt.Sprintf("%s?%s", path, rawQuery)
		}
		status := c.Writer.Status()

		log.Info(fmt.Sprintf("%s %s", c.Request.Method, path),
			"status", status,
			"latency", latency,
			"client_ip", c.ClientIP(),
		)

		for _, ginErr := range c.Errors {
			log.ErrorErr("HTTP request error", ginErr.Err,
				"status", status,
				"method", c.Request.Method,
				"path", path,
			)
		}
	}
}
