package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

const slowRequest = 500 * time.Millisecond

func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		elapsed := time.Since(start)

		fields := []interface{}{
			"method", strings.ToUpper(c.Request.Method),
			"path", path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
		}
		if p := PrincipalFrom(c); p != nil {
			fields = append(fields, "salon_id", p.SalonID.String(), "user_id", p.UserID)
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		case elapsed >= slowRequest:
			log.Warn("slow HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
