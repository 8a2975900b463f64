package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/service/catalog"
)

func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		products, err := svc.ListProducts(c.Request.Context(), store.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func listCategoriesHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		categories, err := svc.ListCategories(c.Request.Context(), store.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
