package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/gin-gonic/gin"
)

func SetupEstadoRoutes(router *gin.Engine) {
	controller := controllers.NewEstadoController()

	estadoGroup := router.Group("/estados")
	estadoGroup.Use(middleware.AuthMiddleware())
	{
		estadoGroup.GET("", controller.ListarEstados)
		estadoGroup.GET("/validar-transicion", controller.ValidarTransicion)
		estadoGroup.GET("/:codigo", controller.ObtenerEstado)
	}
}
