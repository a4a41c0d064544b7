package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// entornoPdf arma el servicio de PDF contra un renderizador simulado.
func entornoPdf(t *testing.T, renderizador http.Handler) (*SolicitudPdfService, *SolicitudService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	solicitudes := NewSolicitudService(db, NewNumeroSolicitudService(db))

	server := httptest.NewServer(renderizador)
	t.Cleanup(server.Close)

	generador := NewGeneradorPdfService(server.URL, "creditos", "secreto")
	svc := NewSolicitudPdfService(db, solicitudes, generador, t.TempDir())
	return svc, solicitudes, db
}

func renderizadorOK(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/creditos/generate-pdf", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "creditos", user)
		require.Equal(t, "secreto", pass)

		var req GenerarPdfRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		json.NewEncoder(w).Encode(GenerarPdfResponse{
			Success: true,
			Data: &GenerarPdfData{
				Filename: "solicitud_" + req.SolicitudID + ".pdf",
				Path:     req.OutputDir + "/solicitud_" + req.SolicitudID + ".pdf",
				Tamano:   48213,
			},
		})
	})
}

func TestGenerarPdfRegistraMetadatosYAvanzaEstado(t *testing.T) {
	svc, solicitudes, db := entornoPdf(t, renderizadorOK(t))
	crearSolicitudDePrueba(t, solicitudes, "000040-202501-1", "usuario1")

	pdf, err := svc.GenerarPdfSolicitud(context.Background(), "000040-202501-1", "usuario1", rolesTrabajador, true, true)
	require.NoError(t, err)
	assert.Equal(t, "solicitud_000040-202501-1.pdf", pdf.Filename)
	assert.EqualValues(t, 48213, pdf.TamanoBytes)
	assert.True(t, pdf.IncluyeConvenio)

	solicitud, err := solicitudes.ObtenerSolicitud("000040-202501-1")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoEnviadoValidacion, solicitud.Estado)

	var registros int64
	require.NoError(t, db.Model(&models.PdfGenerado{}).
		Where("solicitud_id = ?", "000040-202501-1").Count(&registros).Error)
	assert.EqualValues(t, 1, registros)
}

func TestGenerarPdfFallidoNoMutaNada(t *testing.T) {
	renderizador := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(GenerarPdfResponse{Success: false, Error: "plantilla no disponible"})
	})
	svc, solicitudes, db := entornoPdf(t, renderizador)
	crearSolicitudDePrueba(t, solicitudes, "000041-202501-1", "usuario1")

	_, err := svc.GenerarPdfSolicitud(context.Background(), "000041-202501-1", "usuario1", rolesTrabajador, true, true)
	require.Error(t, err)

	solicitud, err := solicitudes.ObtenerSolicitud("000041-202501-1")
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPostulado, solicitud.Estado)

	var registros int64
	require.NoError(t, db.Model(&models.PdfGenerado{}).
		Where("solicitud_id = ?", "000041-202501-1").Count(&registros).Error)
	assert.Zero(t, registros)
}

func TestGenerarPdfRechazaSolicitudFinalizada(t *testing.T) {
	svc, solicitudes, _ := entornoPdf(t, renderizadorOK(t))
	crearSolicitudDePrueba(t, solicitudes, "000042-202501-1", "usuario1")
	require.NoError(t, solicitudes.CambiarEstado("000042-202501-1", models.EstadoRechazado, "No cumple requisitos", "admin", false))

	_, err := svc.GenerarPdfSolicitud(context.Background(), "000042-202501-1", "usuario1", rolesTrabajador, true, true)
	var validacion *ValidacionError
	assert.ErrorAs(t, err, &validacion)
}

func TestRegenerarPdfReemplazaRegistro(t *testing.T) {
	svc, solicitudes, db := entornoPdf(t, renderizadorOK(t))
	crearSolicitudDePrueba(t, solicitudes, "000043-202501-1", "usuario1")

	primero, err := svc.GenerarPdfSolicitud(context.Background(), "000043-202501-1", "usuario1", rolesTrabajador, true, true)
	require.NoError(t, err)

	segundo, err := svc.GenerarPdfSolicitud(context.Background(), "000043-202501-1", "usuario1", rolesTrabajador, false, true)
	require.NoError(t, err)
	assert.False(t, segundo.IncluyeConvenio)
	assert.NotEqual(t, primero.ID, segundo.ID)

	var registros int64
	require.NoError(t, db.Model(&models.PdfGenerado{}).
		Where("solicitud_id = ?", "000043-202501-1").Count(&registros).Error)
	assert.EqualValues(t, 1, registros)
}

func TestEstadoPdfSinGenerar(t *testing.T) {
	svc, solicitudes, _ := entornoPdf(t, renderizadorOK(t))
	crearSolicitudDePrueba(t, solicitudes, "000044-202501-1", "usuario1")

	_, err := svc.EstadoPdf("000044-202501-1", "usuario1", rolesTrabajador)
	assert.ErrorIs(t, err, ErrPdfNoGenerado)
}
