package handlers

import (
	"net/http"

	"mini-ecommerce-api/middleware"

	"github.com/gin-gonic/gin"
)

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// CreateReview posts a product review — any authenticated user
func (a *API) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	review, err := a.Reviews.Create(middleware.GetUserID(c), req.ProductID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added", "review": review})
}

// GetProductReviews lists reviews for a product — public
func (a *API) GetProductReviews(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	reviews, err := a.Reviews.ForProduct(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
}

// ── Wishlist ─────────────────────────────────────────────────────────────────

type WishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddToWishlist is idempotent per (user, product)
func (a *API) AddToWishlist(c *gin.Context) {
	var req WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := a.Reviews.AddToWishlist(middleware.GetUserID(c), req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Added to wishlist", "item": item})
}

// GetWishlist lists the caller's wishlist
func (a *API) GetWishlist(c *gin.Context) {
	items, err := a.Reviews.Wishlist(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(items), "items": items})
}

// RemoveFromWishlist deletes an entry; owner or admin
func (a *API) RemoveFromWishlist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	item, err := a.Reviews.WishlistItemByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if item.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to remove this wishlist item", "kind": "forbidden"})
		return
	}
	if err := a.Reviews.RemoveFromWishlist(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Removed from wishlist"})
}
