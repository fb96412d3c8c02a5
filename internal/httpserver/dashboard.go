package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/internal/service"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
)

type DashboardHTTP struct {
	Svc *service.InventoryService
}

func (h *DashboardHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.stats")

	st, err := h.Svc.Stats(ctx)
	if err != nil {
		return serverError(l, "dashboard_stats_error", "Error fetching dashboard stats", err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *DashboardHTTP) Activity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "dashboard.activity")

	feed, err := h.Svc.Activity(ctx)
	if err != nil {
		return serverError(l, "dashboard_activity_error", "Error fetching activity feed", err)
	}
	return c.JSON(http.StatusOK, feed)
}
