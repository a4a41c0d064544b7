package routes

import (
	"github.com/COMFACA/Creditos-Backend/src/controllers"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func SetupUserRoutes(router *gin.Engine, service *services.UserService) {
	controller := controllers.NewUserController(service)

	// Public routes
	router.POST("/login", controller.AuthenticateUser)
	router.POST("/register", controller.CreateUser)

	// Protected routes
	user := router.Group("/users")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/:username", controller.GetUserByUsername)

		// Administración de usuarios
		admin := user.Group("")
		admin.Use(middleware.RequireRoles(models.RolAdministrator))
		{
			admin.GET("", controller.GetAllUsers)
			admin.PATCH("/:username/roles", controller.UpdateRoles)
			admin.DELETE("/:id", controller.DeleteUser)
		}
	}
}
