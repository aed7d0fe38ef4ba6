package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints one access line per request. Probe routes are skipped
// unless they fail.
func Logger(skipPaths ...string) gin.HandlerFunc {
	skip := map[string]bool{}
	for _, p := range skipPaths {
		skip[p] = true
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if skip[c.FullPath()] && status < 400 {
			return
		}
		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s user_id=%d",
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			status,
			float64(time.Since(start).Microseconds())/1000.0,
			c.ClientIP(),
			GetUserID(c),
		)
		if len(c.Errors) > 0 {
			log.Printf("[HTTP] request_id=%s errors=%s", GetRequestID(c), c.Errors.String())
		}
	}
}
