package routes

import (
	"github.com/gofiber/fiber/v2"

	"facturation-backend/controllers"
	"facturation-backend/middlewares"
	"facturation-backend/models"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public endpoints
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)
	api.Get("/seller-of-day", controllers.SellerOfDay)

	// Protected endpoints (JWT auth, cookie or Bearer)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticated())

	protected.Get("/me", controllers.Me)
	protected.Post("/invoices", controllers.CreateInvoice)
	protected.Get("/invoices/:id", controllers.GetInvoice)
	protected.Get("/invoices/:id/pdf", controllers.InvoicePDF)

	// Admin-only endpoints
	admin := protected.Group("")
	admin.Use(middlewares.RequireRole(models.RoleAdmin))

	admin.Get("/invoices", controllers.GetInvoices)
	admin.Delete("/invoices/:id", controllers.DeleteInvoice)
	admin.Get("/admin/seller-credentials", controllers.SellerCredentials)
	admin.Post("/admin/rotate-seller", controllers.RotateSeller)
}
