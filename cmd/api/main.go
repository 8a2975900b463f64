package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/httpserver"
	categoryrepo "storefront/internal/repository/category"
	customerrepo "storefront/internal/repository/customer"
	discountrepo "storefront/internal/repository/discount"
	orderrepo "storefront/internal/repository/order"
	productrepo "storefront/internal/repository/product"
	storerepo "storefront/internal/repository/store"
	usagerepo "storefront/internal/repository/usage"
	catalogsvc "storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
	discountsvc "storefront/internal/service/discount"
	ordersvc "storefront/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	storeRepo := storerepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	discountRepo := discountrepo.NewPostgres(dbpool, logger)
	usageRepo := usagerepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, usageRepo, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)

	catalogService := catalogsvc.New(productRepo, categoryRepo)
	checkoutService := checkoutsvc.New(catalogService, discountRepo, usageRepo, orderRepo, customerRepo, logger)
	discountService := discountsvc.New(discountRepo)
	orderService := ordersvc.New(orderRepo)
	customerService := customersvc.New(customerRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		StoreRepo:   storeRepo,
		CatalogSvc:  catalogService,
		CheckoutSvc: checkoutService,
		DiscountSvc: discountService,
		OrderSvc:    orderService,
		CustomerSvc: customerService,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
