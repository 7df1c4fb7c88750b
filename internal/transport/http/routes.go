package http

import (
	"github.com/gin-gonic/gin"

	"disputedesk/internal/portal"
	"disputedesk/internal/transport/http/handler"
	"disputedesk/internal/transport/http/middleware"
	"disputedesk/internal/upload"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Portal   *handler.PortalHandler
	Customer *handler.CustomerHandler
	Merchant *handler.MerchantHandler
	Support  *handler.SupportHandler
	Evidence *handler.EvidenceHandler
	Upload   *handler.UploadHandler
}

// SetupRoutes mounts every endpoint. Routes under a portal group only accept
// tokens issued for that portal.
func SetupRoutes(router *gin.Engine, h Handlers, tokenSecret string) {
	router.GET("/healthz", h.Health.Check)
	router.POST(upload.Path, h.Upload.Upload)

	v1 := router.Group("/api/v1")
	v1.GET("/portals", h.Portal.Catalog)
	v1.POST("/portals/:portal/sessions", h.Portal.Open)

	authed := v1.Group("")
	authed.Use(middleware.PortalSession(tokenSecret))

	sessionGroup := authed.Group("/session")
	sessionGroup.GET("", h.Portal.View)
	sessionGroup.DELETE("", h.Portal.Leave)
	sessionGroup.GET("/notifications", h.Portal.Notifications)
	sessionGroup.POST("/evidence/files", h.Evidence.Stage)
	sessionGroup.DELETE("/evidence/files/:index", h.Evidence.Remove)
	sessionGroup.POST("/evidence/upload", h.Evidence.Upload)

	customerGroup := authed.Group("/customer", middleware.RequirePortal(portal.KindCustomer))
	customerGroup.POST("/dispute/start", h.Customer.Start)
	customerGroup.POST("/dispute/messages", h.Customer.SendMessage)
	customerGroup.POST("/dispute/analysis", h.Customer.Submit)
	customerGroup.POST("/dispute/close", h.Customer.Close)

	merchantGroup := authed.Group("/merchant", middleware.RequirePortal(portal.KindMerchant))
	merchantGroup.GET("/transactions", h.Merchant.ListTransactions)
	merchantGroup.POST("/transactions/:id/validation", h.Merchant.StartValidation)
	merchantGroup.POST("/validation/messages", h.Merchant.SendMessage)
	merchantGroup.POST("/validation/analysis", h.Merchant.Submit)
	merchantGroup.POST("/validation/cancel", h.Merchant.Cancel)

	supportGroup := authed.Group("/support", middleware.RequirePortal(portal.KindSupport))
	supportGroup.GET("/cases", h.Support.ListCases)
	supportGroup.POST("/cases/:id/select", h.Support.Select)
	supportGroup.POST("/cases/:id/decision", h.Support.Decide)
	supportGroup.GET("/cases/:id/knowledge", h.Support.Knowledge)
}

// NewHandlers builds the handler set over the portal and upload services.
func NewHandlers(services Services, health *handler.HealthHandler) Handlers {
	return Handlers{
		Health:   health,
		Portal:   handler.NewPortalHandler(services.Portal),
		Customer: handler.NewCustomerHandler(services.Portal),
		Merchant: handler.NewMerchantHandler(services.Portal),
		Support:  handler.NewSupportHandler(services.Portal),
		Evidence: handler.NewEvidenceHandler(services.Portal),
		Upload:   handler.NewUploadHandler(services.Uploads),
	}
}
