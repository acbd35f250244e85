package server

import (
	"time"

	"pharmacy/internal/config"
	"pharmacy/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)
	h.Products.RegisterRoutes(e, cfg)
	h.Bills.RegisterRoutes(e, cfg)
	h.Analytics.RegisterRoutes(e, cfg)
}

// zapでリクエストログを出す
func requestLogger(lg *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			lg.Info("request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}
