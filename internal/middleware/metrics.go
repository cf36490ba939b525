package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives per-request timings.
type RequestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Metrics returns middleware that captures request metrics using the provided observer.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
