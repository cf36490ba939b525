package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "request_start"
	sourceKey        = "source"
	processingTimeMs = "processing_time_ms"
)

// WithResponseMeta initialises response metadata storage on the request context.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetSource records which tier (cache, store, feed, stale) served the response.
func SetSource(c *gin.Context, source string) {
	meta := ensureMeta(c)
	meta[sourceKey] = source
}

// ExtractMeta returns the metadata map stored on the context, stamped with
// the elapsed time so far.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	value, exists := c.Get(responseMetaKey)
	if !exists {
		return nil
	}
	meta, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	if start, ok := c.Get(requestStartKey); ok {
		if ts, ok := start.(time.Time); ok {
			meta[processingTimeMs] = time.Since(ts).Milliseconds()
		}
	}
	return meta
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
