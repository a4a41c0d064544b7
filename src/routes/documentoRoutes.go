package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupDocumentoRoutes(router *gin.Engine, service *services.DocumentoService) {
	controller := controllers.NewDocumentoController(service)

	// Protected routes
	documentoGroup := router.Group("/solicitudes-credito/:id/documentos")
	documentoGroup.Use(middleware.AuthMiddleware())
	{
		documentoGroup.GET("", controller.ListarDocumentos)
		documentoGroup.POST("", controller.CargarDocumento)
		documentoGroup.GET("/requeridos", controller.ListarDocumentosRequeridos)
		documentoGroup.GET("/estadisticas", controller.EstadisticasDocumentos)
		documentoGroup.GET("/:documentoId/descargar", controller.DescargarDocumento)
		documentoGroup.DELETE("/:documentoId", controller.EliminarDocumento)
	}
}
