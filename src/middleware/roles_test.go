package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCanAccessSolicitud(t *testing.T) {
	admin := models.Roles{models.RolAdministrator}
	asesor := models.Roles{models.RolAdviser}
	trabajador := models.Roles{models.RolUserTrabajador}

	assert.True(t, CanAccessSolicitud("cualquiera", admin, "ana"))
	assert.True(t, CanAccessSolicitud("cualquiera", asesor, "ana"))
	assert.True(t, CanAccessSolicitud("ana", trabajador, "ana"))
	assert.False(t, CanAccessSolicitud("berta", trabajador, "ana"))
	assert.False(t, CanAccessSolicitud("", trabajador, ""))
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	llamarCon := func(roles models.Roles) int {
		w := httptest.NewRecorder()
		ctx, _ := gin.CreateTestContext(w)
		ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		ctx.Set("roles", roles)

		alcanzado := false
		RequireRoles(models.RolAdministrator)(ctx)
		if !ctx.IsAborted() {
			alcanzado = true
		}
		if alcanzado {
			return http.StatusOK
		}
		return w.Code
	}

	assert.Equal(t, http.StatusOK, llamarCon(models.Roles{models.RolAdministrator}))
	assert.Equal(t, http.StatusForbidden, llamarCon(models.Roles{models.RolUserTrabajador}))
	assert.Equal(t, http.StatusForbidden, llamarCon(nil))
}
