// Package httpx carries the gin middleware shared by the service routes.
package httpx

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID tags every request with an id, honoring one supplied by the
// caller, so a print job can be traced from frontend to device fault.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// Logger writes one access-log line per request, including the printer
// selector when the route carries one.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		printer := c.Query("printer_id")
		if printer == "" {
			printer = "-"
		}
		log.Printf("[http] rid=%v %s %s printer=%s status=%d dur=%s",
			rid, c.Request.Method, c.Request.URL.Path, printer, c.Writer.Status(), time.Since(start))
	}
}
