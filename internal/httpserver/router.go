package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/service/catalog"
	checkoutsvc "storefront/internal/service/checkout"
	customersvc "storefront/internal/service/customer"
	discountsvc "storefront/internal/service/discount"
	ordersvc "storefront/internal/service/order"
)

// Deps bundles the services and repositories the routes need.
type Deps struct {
	StoreRepo   StoreResolver
	CatalogSvc  *catalog.Service
	CheckoutSvc *checkoutsvc.Service
	DiscountSvc *discountsvc.Service
	OrderSvc    *ordersvc.Service
	CustomerSvc *customersvc.Service
}

// buildRouter wires storefront and admin routes, all scoped to a store key.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/orders/:token", getOrderByTokenHandler(deps.OrderSvc))

	store := router.Group("/stores/:storeKey")
	store.Use(storeMiddleware(deps.StoreRepo))
	{
		store.GET("/products", listProductsHandler(deps.CatalogSvc))
		store.GET("/categories", listCategoriesHandler(deps.CatalogSvc))
		store.POST("/checkout/preview", checkoutPreviewHandler(deps.CheckoutSvc))
		store.POST("/checkout", placeOrderHandler(deps.CheckoutSvc))

		admin := store.Group("/admin")
		{
			admin.POST("/discounts", createDiscountHandler(deps.DiscountSvc))
			admin.GET("/discounts", listDiscountsHandler(deps.DiscountSvc))
			admin.GET("/discounts/:id", getDiscountHandler(deps.DiscountSvc))
			admin.PUT("/discounts/:id", updateDiscountHandler(deps.DiscountSvc))
			admin.DELETE("/discounts/:id", deleteDiscountHandler(deps.DiscountSvc))

			admin.GET("/orders", listOrdersHandler(deps.OrderSvc))
			admin.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
			admin.PATCH("/orders/:id/status", orderStatusHandler(deps.OrderSvc))
			admin.PATCH("/orders/:id/payment", orderPaymentHandler(deps.OrderSvc))
			admin.PATCH("/orders/:id/fulfillment", orderFulfillmentHandler(deps.OrderSvc))
			admin.PATCH("/orders/:id/note", orderNoteHandler(deps.OrderSvc))

			admin.GET("/customers", listCustomersHandler(deps.CustomerSvc))
			admin.GET("/customers/:phone", getCustomerHandler(deps.CustomerSvc))
		}
	}

	return router
}
