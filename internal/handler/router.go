package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/todopro_api/internal/middleware"
)

// Handlers groups all HTTP handlers used by the server. Webhook is nil when
// the WhatsApp webhook is not configured.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Client     *ClientHandler
	Product    *ProductHandler
	Catalog    *CatalogHandler
	Calculator *CalculatorHandler
	Quote      *QuoteHandler
	Lead       *LeadHandler
	SSE        *SSEHandler
	Webhook    *WebhookHandler
}

// SetupRoutes registers all routes.
func SetupRoutes(router *gin.Engine, h *Handlers, jwt *middleware.JWTMiddleware) {
	router.GET("/test-db", h.Health.TestDB)
	router.GET("/v1/health", h.Health.GetHealth)

	router.POST("/auth/signup", h.Auth.Signup)
	router.POST("/auth/login", h.Auth.Login)

	if h.Webhook != nil {
		router.GET("/webhook/whatsapp", h.Webhook.Verify)
		router.POST("/webhook/whatsapp", h.Webhook.Receive)
	}

	router.GET("/clients", jwt.Handle(), h.Client.List)
	router.POST("/clients", jwt.Handle(), h.Client.Create)
	router.GET("/products", jwt.Handle(), h.Product.List)

	router.GET("/v1/events", jwt.HandleStream(), h.SSE.Stream)

	v1 := router.Group("/v1")
	v1.Use(jwt.Handle())
	{
		// Catalog
		v1.GET("/catalog", h.Catalog.Get)
		v1.PUT("/catalog/products/:index", h.Catalog.UpdateProduct)
		v1.POST("/catalog/products", h.Catalog.AddProducts)
		v1.PUT("/catalog/admin-fee", h.Catalog.SetAdminFee)
		v1.POST("/catalog/reset", h.Catalog.Reset)
		v1.GET("/catalog/client-details", h.Catalog.GetClientDetails)
		v1.PUT("/catalog/client-details", h.Catalog.SaveClientDetails)
		v1.DELETE("/catalog/client-details", h.Catalog.ClearClientDetails)

		// Calculator
		v1.POST("/calculator/flat", h.Calculator.Flat)
		v1.POST("/calculator/prorated", h.Calculator.Prorated)

		// Quotes and contracts
		v1.POST("/quotes", h.Quote.Generate)
		v1.GET("/quotes", h.Quote.List)
		v1.GET("/quotes/:id", h.Quote.Get)
		v1.DELETE("/quotes/:id", h.Quote.Delete)
		v1.POST("/quotes/:id/contract", h.Quote.Convert)
		v1.GET("/quotes/:id/pdf", h.Quote.PDF)
		v1.GET("/quotes/:id/whatsapp", h.Quote.Share)
		v1.POST("/quotes/:id/whatsapp/send", h.Quote.Send)

		// Leads CRM
		v1.GET("/leads", h.Lead.List)
		v1.POST("/leads", h.Lead.Create)
		v1.GET("/leads/stats", h.Lead.Stats)
		v1.GET("/leads/templates", h.Lead.Templates)
		v1.POST("/leads/templates", h.Lead.AddTemplate)
		v1.GET("/leads/:id", h.Lead.Get)
		v1.PUT("/leads/:id", h.Lead.Update)
		v1.DELETE("/leads/:id", h.Lead.Delete)
		v1.POST("/leads/:id/message", h.Lead.Message)
		v1.GET("/notifications", h.Lead.Notifications)
		v1.DELETE("/notifications/:id", h.Lead.DismissNotification)
	}
}
