package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopcore/checkout-backend/internal/logging"
	"github.com/shopcore/checkout-backend/internal/service"
	"github.com/shopcore/checkout-backend/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	cart, err := h.Svc.GetCart(c.Param("sessionId"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add.cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.AddItem(ctx, c.Param("sessionId"), req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	l := logging.FromContext(c.Request().Context()).With("handler", "update.cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_cart_error", "status", 400, "error", err)
		return errorJSON(c, http.StatusBadRequest, "invalid body")
	}

	cart, err := h.Svc.UpdateQuantity(c.Param("sessionId"), req.ProductID, req.Quantity)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid product id")
	}

	cart, err := h.Svc.RemoveItem(c.Param("sessionId"), productID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	if err := h.Svc.Clear(c.Param("sessionId")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Cart cleared successfully"})
}
