package routes

import (
	"mini-ecommerce-api/handlers"
	"mini-ecommerce-api/middleware"
	"mini-ecommerce-api/models"

	"github.com/gin-gonic/gin"
)

func Setup(r *gin.Engine, api *handlers.API) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/users/signup", api.Signup)
		public.POST("/users/login", api.Login)

		public.GET("/products", api.ListProducts)
		public.GET("/products/:id", api.GetProduct)
		public.GET("/products/:id/reviews", api.GetProductReviews)
		public.GET("/categories", api.ListCategories)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired(api.Tokens))
	{
		auth.GET("/profile", api.GetProfile)
		auth.PUT("/users/:id", api.UpdateUser)
		auth.DELETE("/users/:id", api.DeleteUser)

		auth.POST("/addresses", api.CreateAddress)
		auth.GET("/addresses", api.ListAddresses)
		auth.PUT("/addresses/:id", api.UpdateAddress)
		auth.DELETE("/addresses/:id", api.DeleteAddress)

		auth.GET("/cart", api.GetCart)
		auth.POST("/cart/items", api.AddCartItem)
		auth.PUT("/cart/items/:id", api.UpdateCartItem)
		auth.DELETE("/cart/items/:id", api.RemoveCartItem)

		auth.POST("/orders", api.PlaceOrder)
		auth.POST("/orders/from-cart", api.PlaceOrderFromCart)
		auth.GET("/orders", api.GetMyOrders)
		auth.GET("/orders/:id", api.GetOrderDetail)

		auth.GET("/shipping/:id", api.GetShipping)
		auth.PUT("/shipping/:id", api.UpdateShipping)

		auth.POST("/reviews", api.CreateReview)

		auth.POST("/wishlist", api.AddToWishlist)
		auth.GET("/wishlist", api.GetWishlist)
		auth.DELETE("/wishlist/:id", api.RemoveFromWishlist)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(api.Tokens), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.POST("/products", api.CreateProduct)
		admin.PUT("/products/:id", api.UpdateProduct)
		admin.DELETE("/products/:id", api.DeleteProduct)

		admin.POST("/categories", api.CreateCategory)
		admin.PUT("/categories/:id", api.UpdateCategory)
		admin.DELETE("/categories/:id", api.DeleteCategory)

		admin.DELETE("/shipping/:id", api.DeleteShipping)

		admin.GET("/admin/users", api.AdminListUsers)
		admin.PUT("/admin/users/:id/role", api.AdminUpdateUserRole)
		admin.GET("/admin/orders", api.AdminGetAllOrders)
	}
}
