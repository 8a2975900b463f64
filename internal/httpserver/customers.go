package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customersvc "storefront/internal/service/customer"
)

func listCustomersHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		customers, err := svc.List(c.Request.Context(), store.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": customers})
	}
}

func getCustomerHandler(svc *customersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		phone := strings.TrimSpace(c.Param("phone"))
		if phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone required"})
			return
		}
		customer, err := svc.GetByPhone(c.Request.Context(), store.ID, phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customer)
	}
}
