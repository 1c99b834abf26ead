package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"mini-ecommerce-api/store"
	"mini-ecommerce-api/token"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles the stores and token service behind the HTTP handlers.
// Everything is injected at construction; there are no package globals.
type API struct {
	Users    *store.Users
	Products *store.Products
	Orders   *store.Orders
	Carts    *store.Carts
	Reviews  *store.Reviews
	Tokens   *token.Service
}

func New(db *gorm.DB, tokens *token.Service) *API {
	return &API{
		Users:    store.NewUsers(db),
		Products: store.NewProducts(db),
		Orders:   store.NewOrders(db),
		Carts:    store.NewCarts(db),
		Reviews:  store.NewReviews(db),
		Tokens:   tokens,
	}
}

// respondError maps store errors to a status code and a stable machine-readable kind.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case errors.Is(err, store.ErrDuplicateEmail), errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "conflict"})
	case errors.Is(err, store.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "kind": "insufficient_stock"})
	case errors.Is(err, store.ErrEmptyCart), errors.Is(err, store.ErrAddressRequired), errors.Is(err, store.ErrNoItems):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "kind": "internal"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "validation"})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id", "kind": "validation"})
		return 0, false
	}
	return uint(id), true
}
