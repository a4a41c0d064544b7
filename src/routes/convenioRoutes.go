package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupConvenioRoutes(router *gin.Engine, service *services.ConvenioService, validacion *services.ConvenioValidationService) {
	controller := controllers.NewConvenioController(service, validacion)

	// Protected routes
	convenioGroup := router.Group("/convenios")
	convenioGroup.Use(middleware.AuthMiddleware())
	{
		convenioGroup.GET("", controller.GetAllConvenios)
		convenioGroup.GET("/:id", controller.GetConvenioByID)
		convenioGroup.GET("/nit/:nit", controller.GetConvenioByNit)
		convenioGroup.POST("/validar", controller.ValidarConvenio)
		convenioGroup.GET("/validar/:nit/:cedula", controller.ValidarConvenioPorRuta)

		// Administración de convenios, solo para administradores y asesores
		admin := convenioGroup.Group("")
		admin.Use(middleware.RequireRoles(models.RolAdministrator, models.RolAdviser))
		{
			admin.POST("", controller.CreateConvenio)
			admin.PUT("/:id", controller.UpdateConvenio)
			admin.PATCH("/:id/estado", controller.ToggleEstado)
			admin.DELETE("/:id", controller.DeleteConvenio)
			admin.GET("/exportar", controller.ExportarExcel)
			admin.POST("/importar", controller.ImportarExcel)
		}
	}
}
