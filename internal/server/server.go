package server

import (
	"pharmacy/internal/config"
	"pharmacy/internal/handler"
	"pharmacy/internal/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Products  *handler.ProductHandler
	Bills     *handler.BillHandler
	Analytics *handler.AnalyticsHandler
}

// New はechoインスタンスを組み立てて返す
func New(cfg config.Config, lg *logger.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(requestLogger(lg))

	RegisterRoutes(e, cfg, h)
	return e
}

func Start(addr string, cfg config.Config, lg *logger.Logger, h Handlers) error {
	e := New(cfg, lg, h)
	return e.Start(addr)
}
