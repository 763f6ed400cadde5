package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopcore/checkout-backend/internal/logging"
	"github.com/shopcore/checkout-backend/internal/service"
	"github.com/shopcore/checkout-backend/internal/transport"
)

type PaymentHTTP struct {
	Svc *service.CheckoutService
}

func (h *PaymentHTTP) CreateGatewayOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create.order")

	var req transport.GatewayOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_gateway_order_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.CreateGatewayOrder(ctx, req)
	if err != nil {
		l.Warn("create_gateway_order_error", "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHTTP) VerifyPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.verify")

	var req transport.VerifyPaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("verify_payment_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	resp, err := h.Svc.ConfirmPayment(ctx, req)
	if err != nil {
		l.Warn("verify_payment_error", "error", err)
		return serviceError(c, err)
	}
	if !resp.Success {
		return c.JSON(http.StatusBadRequest, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PaymentHTTP) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "UP",
		"service": "Payment Gateway",
	})
}
