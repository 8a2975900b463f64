package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"
)

func listOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		orders, err := svc.List(c.Request.Context(), store.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		o, err := svc.Get(c.Request.Context(), store.ID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// getOrderByTokenHandler serves the public order status page. The token
// is unguessable, so no store scoping is needed.
func getOrderByTokenHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.Param("token"))
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		o, err := svc.GetByToken(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func orderStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		o, err := svc.SetStatus(c.Request.Context(), store.ID, id, domain.OrderStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func orderPaymentHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		o, err := svc.SetPaymentStatus(c.Request.Context(), store.ID, id, domain.PaymentStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func orderFulfillmentHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		o, err := svc.SetFulfillmentStatus(c.Request.Context(), store.ID, id, domain.FulfillmentStatus(req.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

type noteRequest struct {
	Note string `json:"note"`
}

func orderNoteHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req noteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		o, err := svc.SetInternalNote(c.Request.Context(), store.ID, id, req.Note)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}
