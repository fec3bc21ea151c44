package router

import (
	"github.com/gin-gonic/gin"
	"github.com/mdehtemam/bagquote-backend/config"
	"github.com/mdehtemam/bagquote-backend/internal/app/controller"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	categoryController *controller.CategoryController
	cartController     *controller.CartController
	quoteController    *controller.QuoteController
	contactController  *controller.ContactController
	uploadController   *controller.UploadController
	notifyController   *controller.NotifyController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	cartController *controller.CartController,
	quoteController *controller.QuoteController,
	contactController *controller.ContactController,
	uploadController *controller.UploadController,
	notifyController *controller.NotifyController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		categoryController: categoryController,
		cartController:     cartController,
		quoteController:    quoteController,
		contactController:  contactController,
		uploadController:   uploadController,
		notifyController:   notifyController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "BAGQUOTE API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		// Public catalog
		products := v1.Group("/products")
		{
			products.GET("", r.authMiddleware.OptionalAuthenticate(), r.productController.ListProducts)
			products.GET("/:id", r.productController.GetProduct)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.ListCategories)
		}

		v1.POST("/contact", r.contactController.SubmitContact)

		// Quote cart, one per signed-in user
		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PUT("/:product_id/quantity", r.cartController.UpdateQuantity)
			cart.PUT("/:product_id/notes", r.cartController.UpdateNotes)
			cart.DELETE("/:product_id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		quotes := v1.Group("/quotes")
		quotes.Use(r.authMiddleware.Authenticate())
		{
			quotes.POST("", r.quoteController.SubmitQuote)
			quotes.GET("", r.quoteController.ListMyQuotes)
			quotes.GET("/:id", r.quoteController.GetQuote)
		}

		// Push stream for quote status events
		v1.GET("/ws", r.authMiddleware.Authenticate(), r.notifyController.Connect)

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole("admin"))
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.POST("/products/:id/images", r.productController.AddProductImage)

			admin.POST("/categories", r.categoryController.CreateCategory)
			admin.DELETE("/categories/:id", r.categoryController.DeleteCategory)

			admin.GET("/quotes", r.quoteController.ListAllQuotes)
			admin.GET("/quotes/export", r.quoteController.ExportQuotes)
			admin.PUT("/quotes/:id/status", r.quoteController.UpdateQuoteStatus)

			admin.GET("/contacts", r.contactController.ListContacts)

			admin.POST("/uploads/presign", r.uploadController.PresignUpload)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
