package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupSolicitudRoutes(router *gin.Engine, service *services.SolicitudService) {
	controller := controllers.NewSolicitudController(service)

	// Protected routes
	solicitudGroup := router.Group("/solicitudes-credito")
	solicitudGroup.Use(middleware.AuthMiddleware())
	{
		// CRUD
		solicitudGroup.GET("", controller.ListarSolicitudes)
		solicitudGroup.POST("", controller.CrearSolicitud)
		solicitudGroup.GET("/:id", controller.ObtenerSolicitud)
		solicitudGroup.PUT("/:id", controller.ActualizarSolicitud)
		solicitudGroup.DELETE("/:id", controller.EliminarSolicitud)

		// Estado
		solicitudGroup.POST("/:id/finalizar", controller.FinalizarProceso)
		solicitudGroup.GET("/:id/timeline", controller.ObtenerTimeline)

		// El cambio de estado arbitrario es una operación de back office
		admin := solicitudGroup.Group("")
		admin.Use(middleware.RequireRoles(models.RolAdministrator, models.RolAdviser))
		{
			admin.PATCH("/:id/estado", controller.CambiarEstado)
		}

		// Búsqueda y reportes
		solicitudGroup.POST("/buscar", controller.BuscarSolicitudes)
		solicitudGroup.GET("/estadisticas", controller.Estadisticas)
		solicitudGroup.GET("/conteo-estados", controller.ContarPorEstado)
	}
}
