package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopcore/checkout-backend/internal/logging"
	"github.com/shopcore/checkout-backend/internal/models"
	"github.com/shopcore/checkout-backend/internal/repo"
)

type BillingHTTP struct {
	Repo *repo.BillingRepo
}

func (h *BillingHTTP) BillingHistory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.history")

	records, err := h.Repo.ListByCustomerEmail(ctx, c.Param("email"))
	if err != nil {
		l.Error("billing_history_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
	if records == nil {
		records = []models.BillingRecord{}
	}
	return c.JSON(http.StatusOK, records)
}

func (h *BillingHTTP) GetByOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.by.order")

	record, err := h.Repo.GetByOrderID(ctx, c.Param("orderId"))
	if errors.Is(err, repo.ErrRecordNotFound) {
		return errorJSON(c, http.StatusNotFound, "billing record not found")
	}
	if err != nil {
		l.Error("billing_by_order_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
	return c.JSON(http.StatusOK, record)
}

func (h *BillingHTTP) ListAll(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "billing.list")

	records, err := h.Repo.ListAll(ctx)
	if err != nil {
		l.Error("billing_list_error", "status", 500, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "internal server error")
	}
	if records == nil {
		records = []models.BillingRecord{}
	}
	return c.JSON(http.StatusOK, records)
}
