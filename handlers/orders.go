package handlers

import (
	"net/http"

	"mini-ecommerce-api/middleware"
	"mini-ecommerce-api/store"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Address string `json:"address"`
	Items   []struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder creates an order from explicit line items. The order and its
// shipping record are created atomically.
func (a *API) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	items := make([]store.LineItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, store.LineItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	order, err := a.Orders.Create(middleware.GetUserID(c), req.Address, items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

type OrderFromCartRequest struct {
	Address string `json:"address"`
}

// PlaceOrderFromCart turns the caller's cart into an order and empties it
func (a *API) PlaceOrderFromCart(c *gin.Context) {
	var req OrderFromCartRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		badRequest(c, err)
		return
	}

	order, err := a.Orders.CreateFromCart(middleware.GetUserID(c), req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
}

// GetMyOrders lists the caller's orders
func (a *API) GetMyOrders(c *gin.Context) {
	orders, err := a.Orders.ListByUser(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrderDetail returns one order with items and shipping; owner or admin
func (a *API) GetOrderDetail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := a.Orders.ByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if order.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you", "kind": "forbidden"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// AdminGetAllOrders lists every order with a revenue summary — admin only
func (a *API) AdminGetAllOrders(c *gin.Context) {
	orders, err := a.Orders.ListAll(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		totalRevenue += o.TotalAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}
