package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

// StoreResolver resolves the store key in the route to a tenant.
type StoreResolver interface {
	GetByKey(ctx context.Context, key string) (*domain.Store, error)
}

type ctxKey string

const storeCtxKey ctxKey = "store"

// storeMiddleware resolves :storeKey and injects the store into the
// request context; requests for unknown stores never reach a handler.
func storeMiddleware(repo StoreResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.Param("storeKey"))
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "store key required"})
			return
		}
		store, err := repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "store not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), storeCtxKey, store)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func storeFromContext(c *gin.Context) *domain.Store {
	store, _ := c.Request.Context().Value(storeCtxKey).(*domain.Store)
	return store
}
