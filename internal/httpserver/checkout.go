package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	checkoutsvc "storefront/internal/service/checkout"
)

// checkoutPreviewHandler prices a cart without committing it. An invalid
// code still yields the plain-priced cart with the error alongside, so
// the storefront can keep the checkout open.
func checkoutPreviewHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		var in checkoutsvc.PreviewInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondValidation(c, err)
			return
		}
		cart, err := svc.Preview(c.Request.Context(), store.ID, in)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCode) {
				c.JSON(http.StatusOK, gin.H{"cart": cart, "codeError": err.Error()})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

func placeOrderHandler(svc *checkoutsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		var in checkoutsvc.PlaceOrderInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondValidation(c, err)
			return
		}
		placed, err := svc.PlaceOrder(c.Request.Context(), *store, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, placed)
	}
}
