package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopcore/checkout-backend/internal/catalog"
	"github.com/shopcore/checkout-backend/internal/models"
)

type ProductHTTP struct {
	Catalog *catalog.Catalog
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid product id")
	}

	product, ok := h.Catalog.Get(id)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.List())
}

func (h *ProductHTTP) ListByCategory(c echo.Context) error {
	products := h.Catalog.ListByCategory(c.Param("category"))
	if products == nil {
		products = []models.Product{}
	}
	return c.JSON(http.StatusOK, products)
}
