package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupTrabajadorRoutes(router *gin.Engine, service *services.TrabajadorService) {
	controller := controllers.NewTrabajadorController(service)

	// Protected routes
	trabajadorGroup := router.Group("/trabajadores")
	trabajadorGroup.Use(middleware.AuthMiddleware())
	{
		trabajadorGroup.GET("/:cedula", controller.ObtenerTrabajador)
	}
}
