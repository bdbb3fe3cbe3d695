package httphandler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/niksmo/product-service/internal/core/port"
)

type HealthResponse struct {
	OK bool `json:"ok"`
}

func RegisterHealth(r gin.IRouter, checker port.HealthChecker) {
	r.GET("/health", func(c *gin.Context) {
		const op = "Health"

		if err := checker.Ping(c.Request.Context()); err != nil {
			slog.Warn("database unavailable", "op", op, "err", err)
			c.JSON(http.StatusServiceUnavailable, HealthResponse{false})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{true})
	})
}
