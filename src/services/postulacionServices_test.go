package services

import (
	"context"
	"testing"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func entornoPostulaciones(t *testing.T) (*PostulacionService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	crearConvenioDePrueba(t, db, models.ConvenioActivo, nil)
	validacion := validadorDePrueba(t, db, map[string]*TrabajadorInfo{"1117500000": trabajadorDemo()})
	return NewPostulacionService(db, validacion), db
}

func crearPostulacionDePrueba(t *testing.T, svc *PostulacionService, username string) *models.Postulacion {
	t.Helper()
	postulacion, err := svc.CrearPostulacion(context.Background(), &dtos.CrearPostulacionDTO{
		NitEmpresa:       "900123456",
		CedulaTrabajador: "1117500000",
		LineaCredito:     "1",
		ValorEstimado:    3000000,
		PlazoMeses:       12,
	}, username)
	require.NoError(t, err)
	return postulacion
}

func TestCrearPostulacionValidaElegibilidad(t *testing.T) {
	svc, _ := entornoPostulaciones(t)

	postulacion := crearPostulacionDePrueba(t, svc, "usuario1")
	assert.Equal(t, models.PostulacionPostulado, postulacion.Estado)
	assert.NotEmpty(t, postulacion.PostulacionUUID)
	assert.Equal(t, "usuario1", postulacion.Username)

	_, err := svc.CrearPostulacion(context.Background(), &dtos.CrearPostulacionDTO{
		NitEmpresa:       "800999999",
		CedulaTrabajador: "1117500000",
	}, "usuario1")
	var elegibilidad *ElegibilidadError
	assert.ErrorAs(t, err, &elegibilidad)
}

func TestActualizarEstadoPostulacion(t *testing.T) {
	svc, _ := entornoPostulaciones(t)
	postulacion := crearPostulacionDePrueba(t, svc, "usuario1")

	actualizada, err := svc.ActualizarEstado(postulacion.PostulacionUUID,
		models.PostulacionEnRevision, "En comité", "admin", rolesAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.PostulacionEnRevision, actualizada.Estado)

	// Aprobar directo desde POSTULADO no está permitido
	otra := crearPostulacionDePrueba(t, svc, "usuario1")
	_, err = svc.ActualizarEstado(otra.PostulacionUUID,
		models.PostulacionAprobado, "", "admin", rolesAdmin)
	var validacion *ValidacionError
	assert.ErrorAs(t, err, &validacion)
}

func TestEliminarPostulacionCancela(t *testing.T) {
	svc, _ := entornoPostulaciones(t)
	postulacion := crearPostulacionDePrueba(t, svc, "usuario1")

	require.NoError(t, svc.EliminarPostulacion(postulacion.PostulacionUUID, "usuario1", rolesTrabajador))

	cancelada, err := svc.ObtenerPostulacion(postulacion.PostulacionUUID, "usuario1", rolesTrabajador)
	require.NoError(t, err)
	assert.Equal(t, models.PostulacionCancelado, cancelada.Estado)
}

func TestConvertirPostulacionASolicitud(t *testing.T) {
	svc, _ := entornoPostulaciones(t)
	postulacion := crearPostulacionDePrueba(t, svc, "usuario1")

	// Solo las aprobadas se convierten
	_, err := svc.ConvertirASolicitud(postulacion.PostulacionUUID, "usuario1", rolesTrabajador)
	var validacion *ValidacionError
	require.ErrorAs(t, err, &validacion)

	_, err = svc.ActualizarEstado(postulacion.PostulacionUUID,
		models.PostulacionEnRevision, "", "admin", rolesAdmin)
	require.NoError(t, err)
	_, err = svc.ActualizarEstado(postulacion.PostulacionUUID,
		models.PostulacionAprobado, "Cumple requisitos", "admin", rolesAdmin)
	require.NoError(t, err)

	dto, err := svc.ConvertirASolicitud(postulacion.PostulacionUUID, "usuario1", rolesTrabajador)
	require.NoError(t, err)
	assert.Equal(t, "900123456", dto.Solicitante.NitEmpresa)
	assert.Equal(t, "1117500000", dto.Solicitante.NumeroDocumento)
	assert.Equal(t, "1", dto.LineaCredito)
}

func TestPostulacionesAccesoPorPropietario(t *testing.T) {
	svc, _ := entornoPostulaciones(t)
	postulacion := crearPostulacionDePrueba(t, svc, "usuario1")

	_, err := svc.ObtenerPostulacion(postulacion.PostulacionUUID, "intruso", rolesTrabajador)
	assert.ErrorIs(t, err, ErrAccesoDenegado)

	_, err = svc.ObtenerPostulacion(postulacion.PostulacionUUID, "admin", rolesAdmin)
	assert.NoError(t, err)
}
