package handler

import (
	"net/http"

	"pharmacy/internal/config"
	"pharmacy/internal/middleware"
	"pharmacy/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ダッシュボード用の集計API
type AnalyticsHandler struct {
	uc *usecase.AnalyticsUsecase
}

func NewAnalyticsHandler(uc *usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/analytics")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.report)
}

func (h *AnalyticsHandler) report(c echo.Context) error {
	out, err := h.uc.Report(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
