package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/clarkeinon-bit/ecommerce1/internal/config"
	"github.com/clarkeinon-bit/ecommerce1/internal/handlers"
	"github.com/clarkeinon-bit/ecommerce1/internal/middleware"
	"github.com/clarkeinon-bit/ecommerce1/internal/repository"
	"github.com/clarkeinon-bit/ecommerce1/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	orderRepo := repository.NewOrderRepository(db)
	paymentService := services.NewPaymentService(cfg.PaymentBaseURL, cfg.PaymentSecretKey)
	mailService := services.NewMailService(cfg.PostmarkToken, cfg.EmailSender, cfg.BaseURL)
	checkoutService := services.NewCheckoutService(orderRepo, paymentService, mailService, cfg)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, orderRepo)
	orderHandler := handlers.NewOrderHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog routes
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/brands", catalogHandler.ListBrands)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Cart routes, anonymous: the cart lives in a cookie
	cartGroup := api.Group("/cart")
	cartGroup.Get("/", cartHandler.GetCart)
	cartGroup.Post("/items", cartHandler.AddItem)
	cartGroup.Post("/items/:product_id/increment", cartHandler.IncrementItem)
	cartGroup.Post("/items/:product_id/decrement", cartHandler.DecrementItem)
	cartGroup.Delete("/items/:product_id", cartHandler.RemoveItem)
	cartGroup.Delete("/", cartHandler.ClearCart)

	// Checkout: the gateway's return redirect carries no bearer token, so
	// the success route takes optional auth and the handler decides.
	checkoutGroup := api.Group("/checkout")
	checkoutGroup.Post("/", middleware.AuthMiddleware(cfg), checkoutHandler.Checkout)
	checkoutGroup.Get("/success", middleware.OptionalAuthMiddleware(cfg), checkoutHandler.Success)
	checkoutGroup.Get("/cancel", checkoutHandler.Cancel)

	// Order history
	protected := api.Group("", middleware.AuthMiddleware(cfg))
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)
}
