package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupPostulacionRoutes(router *gin.Engine, service *services.PostulacionService, solicitudes *services.SolicitudService) {
	controller := controllers.NewPostulacionController(service, solicitudes)

	// Protected routes
	postulacionGroup := router.Group("/postulaciones")
	postulacionGroup.Use(middleware.AuthMiddleware())
	{
		postulacionGroup.GET("", controller.ListarPostulaciones)
		postulacionGroup.POST("", controller.CrearPostulacion)
		postulacionGroup.GET("/buscar", controller.BuscarPostulaciones)
		postulacionGroup.GET("/estadisticas", controller.Estadisticas)
		postulacionGroup.GET("/:id", controller.ObtenerPostulacion)
		postulacionGroup.PATCH("/:id/estado", controller.ActualizarEstado)
		postulacionGroup.DELETE("/:id", controller.EliminarPostulacion)
		postulacionGroup.POST("/:id/convertir", controller.ConvertirASolicitud)
	}
}
