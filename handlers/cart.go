package handlers

import (
	"net/http"

	"mini-ecommerce-api/middleware"

	"github.com/gin-gonic/gin"
)

// GetCart returns the caller's cart, creating it on first access
func (a *API) GetCart(c *gin.Context) {
	cart, err := a.Carts.GetOrCreate(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddCartItem puts a product in the caller's cart
func (a *API) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := a.Carts.AddItem(middleware.GetUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart", "item": item})
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItem changes a cart line's quantity; owner or admin
func (a *API) UpdateCartItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !a.cartItemOwnedByCaller(c, id) {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := a.Carts.UpdateItem(id, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "item": item})
}

// RemoveCartItem deletes a cart line; owner or admin
func (a *API) RemoveCartItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !a.cartItemOwnedByCaller(c, id) {
		return
	}
	if err := a.Carts.RemoveItem(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}

func (a *API) cartItemOwnedByCaller(c *gin.Context, itemID uint) bool {
	owner, err := a.Carts.ItemOwner(itemID)
	if err != nil {
		respondError(c, err)
		return false
	}
	if owner != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to modify this cart item", "kind": "forbidden"})
		return false
	}
	return true
}
