package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderCallerID carries the identity of the acting user. The service trusts
// it as-is; authentication happens upstream.
const HeaderCallerID = "X-Sharer-User-Id"

const requestIDKey = "request_id"

// RequestID assigns every request a fresh id, exposed via the X-Request-Id
// response header and the gin context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequestLogger logs each request after completion with method, path, status
// and latency.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if id, ok := c.Get(requestIDKey); ok {
			fields = append(fields, zap.Any("request_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
			logger.Error("request failed", fields...)
			return
		}
		logger.Info("request handled", fields...)
	}
}

// Recovery converts panics into 500 responses instead of tearing the
// connection down.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered", zap.Any("panic", recovered))
		c.AbortWithStatusJSON(500, gin.H{"error": "internal server error"})
	})
}

// callerID extracts the acting user's id from the X-Sharer-User-Id header.
// A missing or malformed header aborts the request with a 400.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetHeader(HeaderCallerID)
	if raw == "" {
		BadRequest(c, "missing "+HeaderCallerID+" header")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		BadRequest(c, "invalid "+HeaderCallerID+" header")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses a uuid path parameter, aborting with a 400 when malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
