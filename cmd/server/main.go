package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopcore/checkout-backend/internal/catalog"
	"github.com/shopcore/checkout-backend/internal/config"
	"github.com/shopcore/checkout-backend/internal/events"
	"github.com/shopcore/checkout-backend/internal/gateway"
	"github.com/shopcore/checkout-backend/internal/httpserver"
	"github.com/shopcore/checkout-backend/internal/logging"
	loggingmw "github.com/shopcore/checkout-backend/internal/middleware/logging"
	"github.com/shopcore/checkout-backend/internal/repo"
	"github.com/shopcore/checkout-backend/internal/service"
	"github.com/shopcore/checkout-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(cfg.RazorpayKeyID, "RAZORPAY_KEY_ID")
	config.MustNonEmpty(cfg.RazorpayKeySecret, "RAZORPAY_KEY_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	prod := events.NewProducer(cfg.KafkaBrokers)

	cat := catalog.New()
	carts := store.NewCartStore()
	orders := store.NewOrderStore()
	billing := &repo.BillingRepo{DB: db}
	rzp := gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeout)

	cartSvc := &service.CartService{Catalog: cat, Carts: carts}
	checkoutSvc := &service.CheckoutService{
		Carts:        carts,
		Orders:       orders,
		Billing:      billing,
		Gateway:      rzp,
		Producer:     prod,
		Currency:     cfg.Currency,
		GatewayKeyID: cfg.RazorpayKeyID,
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Catalog: cat},
		CartHandler:    &httpserver.CartHTTP{Svc: cartSvc},
		OrderHandler:   &httpserver.OrderHTTP{Svc: checkoutSvc, Orders: orders},
		PaymentHandler: &httpserver.PaymentHTTP{Svc: checkoutSvc},
		BillingHandler: &httpserver.BillingHTTP{Repo: billing},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "service", cfg.ServiceName, "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := prod.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}
