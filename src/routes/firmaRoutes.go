package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupFirmaRoutes(router *gin.Engine, service *services.FirmaDigitalService, firmaPlus *services.FirmaPlusService) {
	controller := controllers.NewFirmaController(service, firmaPlus)

	// Public routes: el proveedor de firma no se autentica con JWT, el token
	// de verificación viaja en el cuerpo del webhook.
	router.POST("/firmas/webhook", controller.Webhook)

	// Protected routes
	firmaGroup := router.Group("/solicitudes-credito/:id/firma")
	firmaGroup.Use(middleware.AuthMiddleware())
	{
		firmaGroup.POST("", controller.IniciarProcesoFirmado)
		firmaGroup.GET("", controller.ConsultarEstadoFirmado)
	}

	disponibilidad := router.Group("/firmas")
	disponibilidad.Use(middleware.AuthMiddleware())
	{
		disponibilidad.GET("/disponibilidad", controller.Disponibilidad)
	}
}
