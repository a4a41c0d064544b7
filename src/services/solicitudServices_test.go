package services

import (
	"testing"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrearSolicitudQuedaPostulada(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))

	solicitud := crearSolicitudDePrueba(t, svc, "000001-202501-1", "ptrabajador")

	assert.Equal(t, models.EstadoPostulado, solicitud.Estado)
	assert.Equal(t, "ptrabajador", solicitud.OwnerUsername)
	assert.Equal(t, "COP", solicitud.Moneda)
	require.NotNil(t, solicitud.FechaRadicado)
	require.NotNil(t, solicitud.Solicitante)
	assert.Equal(t, "1117500000", solicitud.Solicitante.NumeroDocumento)

	// La radicación deja la primera entrada del historial
	require.Len(t, solicitud.Timeline, 1)
	assert.Equal(t, string(models.EstadoPostulado), solicitud.Timeline[0].EstadoCodigo)
	assert.True(t, solicitud.Timeline[0].Automatico)
}

func TestCrearSolicitudValidaCampos(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))

	casos := []struct {
		nombre string
		dto    dtos.CrearSolicitudDTO
	}{
		{"valor negativo", dtos.CrearSolicitudDTO{ValorSolicitud: -1, PlazoMeses: 12, Solicitante: &dtos.SolicitanteDTO{NumeroDocumento: "1"}}},
		{"plazo cero", dtos.CrearSolicitudDTO{ValorSolicitud: 1, PlazoMeses: 0, Solicitante: &dtos.SolicitanteDTO{NumeroDocumento: "1"}}},
		{"plazo excesivo", dtos.CrearSolicitudDTO{ValorSolicitud: 1, PlazoMeses: 361, Solicitante: &dtos.SolicitanteDTO{NumeroDocumento: "1"}}},
		{"sin solicitante", dtos.CrearSolicitudDTO{ValorSolicitud: 1, PlazoMeses: 12}},
		{"numero invalido", dtos.CrearSolicitudDTO{NumeroSolicitud: "xx-yy", ValorSolicitud: 1, PlazoMeses: 12, Solicitante: &dtos.SolicitanteDTO{NumeroDocumento: "1"}}},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			_, err := svc.CrearSolicitud(&c.dto, "ptrabajador")
			var validacion *ValidacionError
			assert.ErrorAs(t, err, &validacion)
		})
	}
}

func TestCambiarEstadoRechazaTransicionInvalida(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	numero := "000001-202501-1"
	crearSolicitudDePrueba(t, svc, numero, "ptrabajador")

	err := svc.CambiarEstado(numero, models.EstadoAprobado, "", "asesor", false)
	var invalida *models.TransicionInvalidaError
	require.ErrorAs(t, err, &invalida)

	// La solicitud no se mueve ni gana historial
	solicitud, err := svc.ObtenerSolicitud(numero)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPostulado, solicitud.Estado)
	assert.Len(t, solicitud.Timeline, 1)
}

func TestCambiarEstadoAgregaTimeline(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	numero := "000001-202501-1"
	crearSolicitudDePrueba(t, svc, numero, "ptrabajador")

	require.NoError(t, svc.CambiarEstado(numero, models.EstadoDocumentosCargados, "Documentos completos", "asesor", false))

	solicitud, err := svc.ObtenerSolicitud(numero)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDocumentosCargados, solicitud.Estado)
	require.Len(t, solicitud.Timeline, 2)
	assert.Equal(t, "Documentos completos", solicitud.Timeline[1].Detalle)
	assert.Equal(t, "asesor", solicitud.Timeline[1].UsuarioUsername)

	// Repetir el mismo estado es un no-op sin entrada nueva
	require.NoError(t, svc.CambiarEstado(numero, models.EstadoDocumentosCargados, "", "asesor", false))
	solicitud, err = svc.ObtenerSolicitud(numero)
	require.NoError(t, err)
	assert.Len(t, solicitud.Timeline, 2)
}

func TestEliminarSolicitudMarcaDesiste(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	numero := "000001-202501-1"
	crearSolicitudDePrueba(t, svc, numero, "ptrabajador")

	require.NoError(t, svc.EliminarSolicitud(numero, "ptrabajador", rolesTrabajador))

	// La fila sigue existiendo, solo cambia de estado
	solicitud, err := svc.ObtenerSolicitud(numero)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoDesiste, solicitud.Estado)
}

func TestPoliticaDeAcceso(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	numero := "000001-202501-1"
	crearSolicitudDePrueba(t, svc, numero, "ptrabajador")

	// El propietario y los roles privilegiados acceden
	_, err := svc.ObtenerSolicitudPara(numero, "ptrabajador", rolesTrabajador)
	assert.NoError(t, err)
	_, err = svc.ObtenerSolicitudPara(numero, "admin", rolesAdmin)
	assert.NoError(t, err)
	_, err = svc.ObtenerSolicitudPara(numero, "asesor", models.Roles{models.RolAdviser})
	assert.NoError(t, err)

	// Otro trabajador no
	_, err = svc.ObtenerSolicitudPara(numero, "intruso", rolesTrabajador)
	assert.ErrorIs(t, err, ErrAccesoDenegado)

	_, err = svc.ObtenerSolicitudPara("000099-202501-1", "admin", rolesAdmin)
	assert.ErrorIs(t, err, ErrSolicitudNoEncontrada)
}

func TestListarSolicitudesFiltraPorPropietario(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	crearSolicitudDePrueba(t, svc, "000001-202501-1", "ana")
	crearSolicitudDePrueba(t, svc, "000002-202501-1", "ana")
	crearSolicitudDePrueba(t, svc, "000003-202501-1", "berta")

	propias, err := svc.ListarSolicitudes("ana", rolesTrabajador, "@")
	require.NoError(t, err)
	assert.Len(t, propias, 2)

	todas, err := svc.ListarSolicitudes("admin", rolesAdmin, "@")
	require.NoError(t, err)
	assert.Len(t, todas, 3)
}

func TestActualizarMontoAprobadoRequiereRolPrivilegiado(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	numero := "000001-202501-1"
	crearSolicitudDePrueba(t, svc, numero, "ptrabajador")

	monto := 4200000.0
	_, err := svc.ActualizarSolicitud(numero, &dtos.ActualizarSolicitudDTO{MontoAprobado: &monto}, "ptrabajador", rolesTrabajador)
	assert.ErrorIs(t, err, ErrAccesoDenegado)

	solicitud, err := svc.ActualizarSolicitud(numero, &dtos.ActualizarSolicitudDTO{MontoAprobado: &monto}, "admin", rolesAdmin)
	require.NoError(t, err)
	assert.Equal(t, monto, solicitud.MontoAprobado)
}

func TestBuscarSolicitudes(t *testing.T) {
	db := newTestDB(t)
	svc := NewSolicitudService(db, NewNumeroSolicitudService(db))
	crearSolicitudDePrueba(t, svc, "000001-202501-1", "ana")
	crearSolicitudDePrueba(t, svc, "000002-202501-2", "berta")
	require.NoError(t, svc.CambiarEstado("000002-202501-2", models.EstadoDocumentosCargados, "", "admin", false))

	porEstado, err := svc.BuscarSolicitudes(&dtos.BuscarSolicitudesDTO{Estado: string(models.EstadoDocumentosCargados)}, "admin", rolesAdmin)
	require.NoError(t, err)
	require.Len(t, porEstado, 1)
	assert.Equal(t, "000002-202501-2", porEstado[0].NumeroSolicitud)

	porTexto, err := svc.BuscarSolicitudes(&dtos.BuscarSolicitudesDTO{Texto: "000001"}, "admin", rolesAdmin)
	require.NoError(t, err)
	require.Len(t, porTexto, 1)

	// Un trabajador solo busca entre lo propio
	nada, err := svc.BuscarSolicitudes(&dtos.BuscarSolicitudesDTO{Texto: "000002"}, "ana", rolesTrabajador)
	require.NoError(t, err)
	assert.Empty(t, nada)
}
