package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	TraceIDHeader = "X-Trace-ID"

	// TraceIDKey is the context key the request logger reads to correlate
	// log lines with responses.
	TraceIDKey = "trace_id"
)

// TraceID propagates the caller's trace ID or assigns a fresh one, making
// it available to downstream middleware and echoing it on the response.
func TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(TraceIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(TraceIDKey, id)
		c.Header(TraceIDHeader, id)

		c.Next()
	}
}

func GetTraceID(c *gin.Context) string {
	return c.GetString(TraceIDKey)
}
