package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopcore/checkout-backend/internal/logging"
	"github.com/shopcore/checkout-backend/internal/models"
	"github.com/shopcore/checkout-backend/internal/service"
	"github.com/shopcore/checkout-backend/internal/store"
	"github.com/shopcore/checkout-backend/internal/transport"
)

type OrderHTTP struct {
	Svc    *service.CheckoutService
	Orders *store.OrderStore
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create.order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		l.Warn("create_order_error", "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	order, ok := h.Orders.Get(c.Param("orderId"))
	if !ok {
		return errorJSON(c, http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) OrderHistory(c echo.Context) error {
	orders := h.Orders.ListByCustomerEmail(c.Param("email"))
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update.order.status")

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return errorJSON(c, http.StatusBadRequest, "unknown status: "+req.Status)
	}

	order, ok := h.Orders.SetStatus(ctx, c.Param("orderId"), status)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "order not found")
	}
	return c.JSON(http.StatusOK, order)
}

// ListUnlinked exposes orders whose gateway counterpart was never created, so
// an operator can see what the create-order flow left behind on gateway
// failures.
func (h *OrderHTTP) ListUnlinked(c echo.Context) error {
	orders := h.Orders.ListUnlinked()
	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}
