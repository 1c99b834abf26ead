package handlers

import (
	"net/http"

	"mini-ecommerce-api/middleware"
	"mini-ecommerce-api/models"
	"mini-ecommerce-api/statemachine"
	"mini-ecommerce-api/store"

	"github.com/gin-gonic/gin"
)

// shippingForCaller loads a shipping record and checks that the caller owns
// the associated order or is an admin.
func (a *API) shippingForCaller(c *gin.Context) (*models.Shipping, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		return nil, false
	}
	sh, err := a.Orders.ShippingByID(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	order, err := a.Orders.ByID(sh.OrderID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if order.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This shipping record does not belong to you", "kind": "forbidden"})
		return nil, false
	}
	return sh, true
}

// GetShipping returns a shipping record; owner of the order or admin
func (a *API) GetShipping(c *gin.Context) {
	sh, ok := a.shippingForCaller(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipping": sh})
}

type UpdateShippingRequest struct {
	Status  *models.ShippingStatus `json:"status"`
	Carrier *string                `json:"carrier"`
	Address *string                `json:"address"`
}

// UpdateShipping updates status, carrier or address; owner of the order or admin.
// Status changes must follow the delivery lifecycle.
func (a *API) UpdateShipping(c *gin.Context) {
	sh, ok := a.shippingForCaller(c)
	if !ok {
		return
	}

	var req UpdateShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Status != nil {
		if !statemachine.Known(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shipping status", "kind": "validation"})
			return
		}
		if err := statemachine.CanTransition(sh.Status, *req.Status); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             err.Error(),
				"kind":              "invalid_transition",
				"current_status":    sh.Status,
				"valid_next_states": statemachine.ValidTransitionsFrom(sh.Status),
			})
			return
		}
	}

	updated, err := a.Orders.UpdateShipping(sh.ID, store.ShippingUpdate{
		Status:  req.Status,
		Carrier: req.Carrier,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shipping updated", "shipping": updated})
}

// DeleteShipping removes a shipping record — admin only; the order survives
func (a *API) DeleteShipping(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := a.Orders.DeleteShipping(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shipping record deleted"})
}
