package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowHeaders  = "Authorization, Content-Type, X-Requested-With, X-Request-ID"
	exposeHeaders = "X-Request-ID, Content-Disposition"
	allowMethods  = "GET, POST, PUT, DELETE, OPTIONS"
)

// New returns a CORS middleware for the planner's web and mobile clients.
// An empty origin list allows any origin.
func New(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		originSet[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()
		if origin := c.GetHeader("Origin"); origin != "" {
			if allowed(originSet, origin) {
				header.Set("Access-Control-Allow-Origin", origin)
				header.Set("Access-Control-Allow-Credentials", "true")
			}
			header.Add("Vary", "Origin")
		} else if len(originSet) == 0 {
			header.Set("Access-Control-Allow-Origin", "*")
		}

		header.Set("Access-Control-Allow-Headers", allowHeaders)
		header.Set("Access-Control-Expose-Headers", exposeHeaders)
		header.Set("Access-Control-Allow-Methods", allowMethods)
		header.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func allowed(originSet map[string]struct{}, origin string) bool {
	if len(originSet) == 0 {
		return true
	}
	_, ok := originSet[strings.TrimRight(origin, "/")]
	return ok
}
