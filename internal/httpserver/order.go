package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pharmacy/internal/service"
	"github.com/Skotchmaster/pharmacy/internal/transport"
	"github.com/Skotchmaster/pharmacy/pkg/logging"
)

const orderNotFound = "Order not found"

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		return serverError(l, "list_orders_error", "Error fetching orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.my_orders")

	p, err := principal(c)
	if err != nil {
		return err
	}

	orders, err := h.Svc.ListCustomerOrders(ctx, p)
	if err != nil {
		return serverError(l, "my_orders_error", "Error fetching orders", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update")

	p, err := principal(c)
	if err != nil {
		return err
	}

	id, err := service.ParseID(c.Param("id"))
	if err != nil {
		return badID(l, "update_order_error", err)
	}

	var req transport.UpdateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "update_order_error", err)
	}
	if req.Status == nil {
		l.Warn("update_order_error", "status", http.StatusBadRequest, "reason", "status required")
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}

	order, err := h.Svc.SetStatus(ctx, p, id, *req.Status, req.Notes)
	if err != nil {
		return fail(l, "update_order_error", err, orderNotFound, "Error updating order")
	}

	l.Info("update_order_success", "order_id", order.ID.String(), "order_status", order.Status)
	return c.JSON(http.StatusOK, echo.Map{"message": "Order updated successfully", "order": order})
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place")

	p, err := principal(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "place_order_error", err)
	}

	order, err := h.Svc.PlaceOrder(ctx, p, req)
	if err != nil {
		return fail(l, "place_order_error", err, "", "Error placing order")
	}

	l.Info("place_order_success", "order_id", order.ID.String())
	return c.JSON(http.StatusCreated, echo.Map{"message": "Order placed successfully", "order": order})
}
