package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupLineaCreditoRoutes(router *gin.Engine, service *services.LineaCreditoService) {
	controller := controllers.NewLineaCreditoController(service)

	// Protected routes
	lineaGroup := router.Group("/lineas-credito")
	lineaGroup.Use(middleware.AuthMiddleware())
	{
		lineaGroup.GET("", controller.GetAllLineas)
		lineaGroup.GET("/:codigo", controller.GetLineaByCodigo)

		// Mantenimiento del catálogo, solo administradores
		admin := lineaGroup.Group("")
		admin.Use(middleware.RequireRoles(models.RolAdministrator))
		{
			admin.POST("", controller.CreateLinea)
			admin.PUT("/:codigo", controller.UpdateLinea)
			admin.DELETE("/:codigo", controller.DeleteLinea)
		}
	}
}
