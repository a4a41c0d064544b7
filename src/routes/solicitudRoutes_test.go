package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func routerDePrueba(t *testing.T) (*gin.Engine, *services.SolicitudService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetSecretKey("clave-de-prueba")

	dsn := filepath.Join(t.TempDir(), "creditos_rutas.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SolicitudCredito{},
		&models.SolicitudSolicitante{},
		&models.SolicitudDocumento{},
		&models.FirmanteSolicitud{},
		&models.SolicitudTimeline{},
		&models.PdfGenerado{},
		&models.ProcesoFirmado{},
		&models.NumeroSolicitudSecuencia{},
	))

	service := services.NewSolicitudService(db, services.NewNumeroSolicitudService(db))
	router := gin.New()
	SetupSolicitudRoutes(router, service)
	return router, service
}

func tokenPara(t *testing.T, username string, roles models.Roles) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": username,
		"roles":    []string(roles),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	firmado, err := token.SignedString([]byte(middleware.GetSecretKey()))
	require.NoError(t, err)
	return firmado
}

func patchEstado(t *testing.T, router *gin.Engine, numero, token string) *httptest.ResponseRecorder {
	t.Helper()
	body := bytes.NewBufferString(`{"estado": "DOCUMENTOS_CARGADOS", "detalle": "Documentos completos"}`)
	req := httptest.NewRequest(http.MethodPatch, "/solicitudes-credito/"+numero+"/estado", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCambiarEstadoExigeRolDeBackOffice(t *testing.T) {
	router, service := routerDePrueba(t)

	_, err := service.CrearSolicitud(&dtos.CrearSolicitudDTO{
		NumeroSolicitud: "000001-202501-1",
		ValorSolicitud:  5000000,
		PlazoMeses:      24,
		LineaCredito:    "1",
		Solicitante:     &dtos.SolicitanteDTO{NumeroDocumento: "1117500000"},
	}, "ana")
	require.NoError(t, err)

	// La propietaria no puede mover el estado de su propia solicitud
	w := patchEstado(t, router, "000001-202501-1", tokenPara(t, "ana", models.Roles{models.RolUserTrabajador}))
	assert.Equal(t, http.StatusForbidden, w.Code)

	solicitud, err := service.ObtenerSolicitud("000001-202501-1")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPostulado, solicitud.Estado)

	// Un asesor sí
	w = patchEstado(t, router, "000001-202501-1", tokenPara(t, "asesor1", models.Roles{models.RolAdviser}))
	assert.Equal(t, http.StatusOK, w.Code)

	solicitud, err = service.ObtenerSolicitud("000001-202501-1")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDocumentosCargados, solicitud.Estado)
}

func TestCambiarEstadoSinTokenNoAutorizado(t *testing.T) {
	router, _ := routerDePrueba(t)

	body := bytes.NewBufferString(`{"estado": "DOCUMENTOS_CARGADOS"}`)
	req := httptest.NewRequest(http.MethodPatch, "/solicitudes-credito/000001-202501-1/estado", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
