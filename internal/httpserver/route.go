package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	ProductHandler *ProductHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	PaymentHandler *PaymentHTTP
	BillingHandler *BillingHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	products := api.Group("/products")
	products.GET("", d.ProductHandler.ListProducts)
	products.GET("/:id", d.ProductHandler.GetProduct)
	products.GET("/category/:category", d.ProductHandler.ListByCategory)

	cart := api.Group("/cart")
	cart.GET("/:sessionId", d.CartHandler.GetCart)
	cart.POST("/:sessionId/add", d.CartHandler.AddToCart)
	cart.PUT("/:sessionId/update", d.CartHandler.UpdateQuantity)
	cart.DELETE("/:sessionId/remove/:productId", d.CartHandler.RemoveFromCart)
	cart.DELETE("/:sessionId/clear", d.CartHandler.ClearCart)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.CreateOrder)
	orders.GET("/unlinked", d.OrderHandler.ListUnlinked)
	orders.GET("/history/:email", d.OrderHandler.OrderHistory)
	orders.GET("/:orderId", d.OrderHandler.GetOrder)
	orders.PUT("/:orderId/status", d.OrderHandler.UpdateStatus)

	payment := api.Group("/payment")
	payment.POST("/create-order", d.PaymentHandler.CreateGatewayOrder)
	payment.POST("/verify", d.PaymentHandler.VerifyPayment)
	payment.GET("/health", d.PaymentHandler.Health)

	billing := api.Group("/billing")
	billing.GET("", d.BillingHandler.ListAll)
	billing.GET("/order/:orderId", d.BillingHandler.GetByOrder)
	billing.GET("/:email", d.BillingHandler.BillingHistory)
}
