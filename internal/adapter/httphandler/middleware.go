package httphandler

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// AllowMediaTypes rejects requests with a body of any other media type.
func AllowMediaTypes(mediaTypes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		if !slices.Contains(mediaTypes, c.ContentType()) {
			c.AbortWithStatusJSON(
				http.StatusUnsupportedMediaType,
				MessageResponse{"invalid media type"},
			)
			return
		}

		c.Next()
	}
}

// CORS allows any origin, preflight requests are answered with 204.
func CORS(methods ...string) gin.HandlerFunc {
	allowMethods := strings.Join(methods, ", ")
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", allowMethods)
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		h.Set("Access-Control-Expose-Headers", RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequestLogger tags every request with an id and logs its outcome.
// An incoming id is kept when it parses as a UUID.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id, err := uuid.Parse(c.GetHeader(RequestIDHeader))
		if err != nil {
			id = uuid.New()
		}
		c.Header(RequestIDHeader, id.String())

		c.Next()

		attrs := []any{
			"requestID", id.String(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			slog.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
