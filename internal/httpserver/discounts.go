package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	discountsvc "storefront/internal/service/discount"
)

type discountRequest struct {
	Name              string     `json:"name" binding:"required"`
	Type              string     `json:"type" binding:"required"`
	Code              string     `json:"code"`
	IsActive          *bool      `json:"isActive"`
	StartDate         time.Time  `json:"startDate" binding:"required"`
	EndDate           *time.Time `json:"endDate"`
	ValueType         string     `json:"valueType"`
	Value             int64      `json:"value"`
	AppliesTo         string     `json:"appliesTo"`
	TargetProductIDs  []int64    `json:"targetProductIds"`
	TargetCategoryIDs []int64    `json:"targetCategoryIds"`
	BuyProductIDs     []int64    `json:"buyProductIds"`
	GetProductIDs     []int64    `json:"getProductIds"`
	MinRequirement    string     `json:"minRequirement"`
	MinValue          int64      `json:"minValue"`
	MaxTotalUses      *int       `json:"maxTotalUses"`
	MaxPerCustomer    *int       `json:"maxPerCustomer"`
	MaxTotalAmount    *int64     `json:"maxTotalAmount"`
}

func (r discountRequest) toDomain(storeID int64) domain.Discount {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return domain.Discount{
		StoreID:           storeID,
		Name:              r.Name,
		Type:              domain.DiscountType(r.Type),
		Code:              r.Code,
		IsActive:          active,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		ValueType:         domain.ValueType(r.ValueType),
		Value:             r.Value,
		AppliesTo:         domain.AppliesTo(r.AppliesTo),
		TargetProductIDs:  r.TargetProductIDs,
		TargetCategoryIDs: r.TargetCategoryIDs,
		BuyProductIDs:     r.BuyProductIDs,
		GetProductIDs:     r.GetProductIDs,
		MinRequirement:    domain.MinRequirement(r.MinRequirement),
		MinValue:          r.MinValue,
		MaxTotalUses:      r.MaxTotalUses,
		MaxPerCustomer:    r.MaxPerCustomer,
		MaxTotalAmount:    r.MaxTotalAmount,
	}
}

func createDiscountHandler(svc *discountsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		var req discountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		created, err := svc.Create(c.Request.Context(), req.toDomain(store.ID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func listDiscountsHandler(svc *discountsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		discounts, err := svc.List(c.Request.Context(), store.ID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"discounts": discounts})
	}
}

func getDiscountHandler(svc *discountsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		d, err := svc.Get(c.Request.Context(), store.ID, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func updateDiscountHandler(svc *discountsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		var req discountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		d := req.toDomain(store.ID)
		d.ID = id
		updated, err := svc.Update(c.Request.Context(), d)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func deleteDiscountHandler(svc *discountsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := storeFromContext(c)
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := svc.Delete(c.Request.Context(), store.ID, id); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// idParam parses the numeric :id path segment, answering the request
// itself on failure.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
