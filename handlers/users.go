package handlers

import (
	"net/http"

	"mini-ecommerce-api/middleware"
	"mini-ecommerce-api/models"
	"mini-ecommerce-api/store"

	"github.com/gin-gonic/gin"
)

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

// UpdateUser lets a user edit their own account; admins may edit anyone
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to modify this user", "kind": "forbidden"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := a.Users.Update(id, store.UserUpdate{
		Name:     req.Name,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": user})
}

// DeleteUser removes an account; self or admin only
func (a *API) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if id != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this user", "kind": "forbidden"})
		return
	}
	if err := a.Users.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// AdminListUsers returns all users, optionally filtered by role — admin only
func (a *API) AdminListUsers(c *gin.Context) {
	users, err := a.Users.List(c.Query("role"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

type UpdateRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required"`
}

// AdminUpdateUserRole is the only path that elevates a user to admin
func (a *API) AdminUpdateUserRole(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleCustomer {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: admin or customer", "kind": "validation"})
		return
	}

	user, err := a.Users.UpdateRole(id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated", "user": user})
}

// ── Addresses ────────────────────────────────────────────────────────────────

type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code"`
}

func (a *API) CreateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	addr := models.Address{
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
	if err := a.Users.CreateAddress(middleware.GetUserID(c), &addr); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address added", "address": addr})
}

func (a *API) ListAddresses(c *gin.Context) {
	addrs, err := a.Users.Addresses(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(addrs), "addresses": addrs})
}

func (a *API) UpdateAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	addr, err := a.Users.AddressByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if addr.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this address", "kind": "forbidden"})
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	addr.Street = req.Street
	addr.City = req.City
	addr.State = req.State
	addr.Country = req.Country
	addr.PostalCode = req.PostalCode
	if err := a.Users.SaveAddress(addr); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated", "address": addr})
}

func (a *API) DeleteAddress(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	addr, err := a.Users.AddressByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if addr.UserID != middleware.GetUserID(c) && !middleware.IsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this address", "kind": "forbidden"})
		return
	}
	if err := a.Users.DeleteAddress(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
}
