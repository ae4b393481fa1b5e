package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/perma-museum/custodian/internal/api/middleware"
)

// SetupRoutes configures all REST API routes on the given router. Reads are
// public; every mutating route requires an authenticated principal.
func SetupRoutes(router *gin.Engine, handler Handler, authConfig middleware.AuthConfig) {
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")

	v1.GET("/registry", handler.GetRegistry)
	v1.GET("/exchange", handler.GetExchange)
	v1.GET("/assets/:ref", handler.GetAsset)
	v1.GET("/assets/:ref/provenance", handler.GetProvenance)
	v1.GET("/assets/:ref/listing", handler.GetListing)
	v1.GET("/assets/:ref/auction", handler.GetAuction)
	v1.GET("/assets/:ref/auction/bids/highest", handler.GetHighestBid)
	v1.GET("/principals/:principal/profile", handler.GetProfile)

	authed := v1.Group("")
	authed.Use(middleware.Auth(authConfig))

	authed.POST("/registry/initialize", handler.InitializeRegistry)
	authed.POST("/registry/admin", handler.TransferAdmin)
	authed.POST("/assets", handler.Mint)
	authed.POST("/assets/:ref/transfer", handler.Transfer)
	authed.POST("/assets/:ref/approve", handler.Approve)
	authed.POST("/assets/:ref/transfer-from", handler.TransferFrom)

	authed.POST("/exchange/initialize", handler.InitializeExchange)
	authed.POST("/assets/:ref/listing", handler.CreateListing)
	authed.POST("/assets/:ref/listing/buy", handler.Buy)
	authed.DELETE("/assets/:ref/listing", handler.CancelListing)
	authed.POST("/assets/:ref/auction", handler.CreateAuction)
	authed.POST("/assets/:ref/auction/bids", handler.PlaceBid)
	authed.POST("/assets/:ref/auction/end", handler.EndAuction)
	authed.DELETE("/assets/:ref/auction", handler.CancelAuction)
}
