package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"veloura_back_end/internal/config"
	"veloura_back_end/internal/handlers"
	adminhandlers "veloura_back_end/internal/handlers/admin"
	"veloura_back_end/internal/handlers/order"
	"veloura_back_end/internal/handlers/product"
	"veloura_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.BaseURL(), "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Les images uploadées sont servies en statique depuis le répertoire public
	r.Static("/uploads", config.PublicDir()+"/uploads")

	api := r.Group("/api")

	// --- Boutique (public) ---
	shop := api.Group("")
	shop.Use(middleware.APIRateLimit())
	{
		shop.GET("/products", product.GetAllProducts)
		shop.GET("/products/search", product.SearchProducts)
		shop.GET("/products/:id", product.GetProductByID)
		shop.GET("/products/:id/qr", product.ShareQR)
		shop.GET("/settings/cover-photo", handlers.GetCoverPhoto)
		shop.POST("/orders", order.CreateOrder)
	}

	// --- Auth admin ---
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", middleware.LoginRateLimit(), handlers.Login)
		authGroup.POST("/logout", handlers.Logout)
		authGroup.GET("/me", middleware.AuthRequired(), handlers.Me)
	}

	// --- Dashboard admin ---
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(), middleware.RequireAdmin)
	{
		adminGroup.POST("/products", product.CreateProduct)
		adminGroup.PUT("/products/:id", product.UpdateProduct)
		adminGroup.DELETE("/products/:id", product.DeleteProduct)
		adminGroup.POST("/upload", product.UploadProductImages)

		adminGroup.GET("/orders", order.GetOrders)
		adminGroup.PATCH("/orders/:id/status", order.UpdateOrderStatus)
		adminGroup.GET("/orders/:id/receipt", order.GetOrderReceipt)
		adminGroup.GET("/orders/live", order.LiveOrders)

		adminGroup.GET("/analytics", adminhandlers.GetSalesAnalytics)
		adminGroup.PUT("/settings/cover-photo", handlers.UpdateCoverPhoto)
	}
}
