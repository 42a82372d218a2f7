package server

import (
	"time"

	"fjacquet/expense-ledger/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID carries the request correlation ID.
const HeaderRequestID = "X-Request-ID"

const contextKeyRequestID = "request_id"

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it
// on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// AccessLog logs one line per request.
func AccessLog(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logging.Field{
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.Request.URL.Path},
			{Key: logging.FieldStatus, Value: c.Writer.Status()},
			{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
			{Key: "client_ip", Value: c.ClientIP()},
			{Key: logging.FieldRequestID, Value: c.GetString(contextKeyRequestID)},
		}
		if c.Writer.Status() >= 500 {
			logger.Error("Request failed", fields...)
			return
		}
		logger.Info("Request handled", fields...)
	}
}
