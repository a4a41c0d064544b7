package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupPdfRoutes(router *gin.Engine, service *services.SolicitudPdfService, generador *services.GeneradorPdfService) {
	controller := controllers.NewPdfController(service, generador)

	// Protected routes
	pdfGroup := router.Group("/solicitudes-credito/:id/pdf")
	pdfGroup.Use(middleware.AuthMiddleware())
	{
		pdfGroup.POST("", controller.GenerarPdf)
		pdfGroup.GET("", controller.EstadoPdf)
		pdfGroup.GET("/descargar", controller.DescargarPdf)
	}

	salud := router.Group("/generador-pdf")
	salud.Use(middleware.AuthMiddleware())
	{
		salud.GET("/salud", controller.SaludGenerador)
	}
}
