package routes

import (
	"github.com/MOON-roa-png/BodegaMati/controllers"
	"github.com/MOON-roa-png/BodegaMati/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", middlewares.RateLimiter(), controllers.Login)
			auth.POST("/setup", controllers.RegisterInitialAdmin)
		}

		authed := api.Group("/", middlewares.AuthMiddleware())
		{
			authed.GET("/dashboard", controllers.Dashboard)

			products := authed.Group("/products")
			{
				products.GET("", controllers.GetAllProducts)
				products.GET("/:id", controllers.GetProductByID)
				products.POST("", controllers.CreateProduct)
				products.PUT("/:id", controllers.UpdateProduct)
				products.DELETE("/:id", middlewares.AdminOnly(), controllers.DeleteProduct)
			}

			suppliers := authed.Group("/suppliers")
			{
				suppliers.GET("", controllers.GetAllSuppliers)
				suppliers.GET("/:id", controllers.GetSupplierByID)
				suppliers.POST("", controllers.CreateSupplier)
				suppliers.PUT("/:id", controllers.UpdateSupplier)
				suppliers.DELETE("/:id", middlewares.AdminOnly(), controllers.DeleteSupplier)
			}

			purchases := authed.Group("/purchases")
			{
				purchases.GET("", controllers.GetRecentPurchases)
				purchases.POST("", controllers.CreatePurchase)
				purchases.PUT("/:id", middlewares.AdminOnly(), controllers.UpdatePurchase)
				purchases.DELETE("/:id", middlewares.AdminOnly(), controllers.DeletePurchase)
			}

			sales := authed.Group("/sales")
			{
				sales.GET("/cart", controllers.GetCart)
				sales.POST("/cart", controllers.AddToCart)
				sales.PUT("/cart/:index", controllers.UpdateCartLine)
				sales.DELETE("/cart/:index", controllers.RemoveCartLine)
				sales.DELETE("/cart", controllers.ClearCart)
				sales.POST("/confirm", controllers.ConfirmSale)
			}

			reports := authed.Group("/reports", middlewares.AdminOnly())
			{
				reports.GET("/daily", controllers.DailyReport)
			}

			users := authed.Group("/users", middlewares.AdminOnly())
			{
				users.GET("", controllers.GetAllUsers)
				users.POST("", controllers.CreateUser)
			}
		}
	}
}
