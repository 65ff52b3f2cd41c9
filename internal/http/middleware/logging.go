// README: Request logging middleware with a per-request id.
package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lucsky/cuid"
)

const RequestIDHeader = "X-Request-ID"

// Logging tags each request with an id (kept from the caller when present)
// and logs method, path, status, and latency when it completes.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = cuid.New()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Printf("[%s] %s %s %d %s", id, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", id, e.Err)
		}
	}
}
