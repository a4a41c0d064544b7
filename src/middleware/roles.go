package middleware

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/gin-gonic/gin"
)

// CanAccessSolicitud es la política única de autorización sobre solicitudes:
// administradores y asesores ven todo, el resto solo lo propio.
func CanAccessSolicitud(username string, roles models.Roles, ownerUsername string) bool {
	if roles.IsAdmin() || roles.IsAdviser() {
		return true
	}
	return username != "" && username == ownerUsername
}

// RequireRoles exige que el usuario autenticado tenga al menos uno de los
// roles dados.
func RequireRoles(requeridos ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		roles := CurrentRoles(ctx)
		for _, r := range requeridos {
			if roles.Has(r) {
				ctx.Next()
				return
			}
		}
		ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "No tiene permisos para esta operación"})
		ctx.Abort()
	}
}
