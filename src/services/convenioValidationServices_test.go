package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// servidorTrabajadores simula la API externa de afiliados con un trabajador
// por cédula.
func servidorTrabajadores(t *testing.T, trabajadores map[string]*TrabajadorInfo) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/company/informacion_trabajador", r.URL.Path)

		var body struct {
			Cedula string `json:"cedtra"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		info, ok := trabajadores[body.Cedula]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": info})
	}))
	t.Cleanup(server.Close)
	return server
}

func crearConvenioDePrueba(t *testing.T, db *gorm.DB, estado string, vencimiento *time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&models.EmpresaConvenio{
		Nit:              "900123456",
		RazonSocial:      "Empresa Demo S.A.S.",
		Estado:           estado,
		FechaVencimiento: vencimiento,
	}).Error)
}

func trabajadorDemo() *TrabajadorInfo {
	return &TrabajadorInfo{
		Cedula:          "1117500000",
		Nombre:          "Pedro",
		Apellido1:       "Pérez",
		Estado:          "A",
		FechaAfiliacion: "2023-01-10",
		Salario:         2500000,
		Cargo:           "Auxiliar",
		Empresa:         EmpresaTrabajador{Nit: "900123456", RazonSocial: "Empresa Demo S.A.S."},
	}
}

func validadorDePrueba(t *testing.T, db *gorm.DB, trabajadores map[string]*TrabajadorInfo) *ConvenioValidationService {
	t.Helper()
	server := servidorTrabajadores(t, trabajadores)
	svc := NewConvenioValidationService(db, NewTrabajadorService(server.URL, "token-prueba"))
	svc.now = func() time.Time { return time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestValidarConvenioTrabajadorElegible(t *testing.T) {
	db := newTestDB(t)
	crearConvenioDePrueba(t, db, models.ConvenioActivo, nil)
	svc := validadorDePrueba(t, db, map[string]*TrabajadorInfo{"1117500000": trabajadorDemo()})

	resultado, err := svc.ValidarConvenioTrabajador(context.Background(), "900123456", "1117500000")
	require.NoError(t, err)
	assert.True(t, resultado.Elegible)
	assert.Equal(t, "900123456", resultado.Convenio.Nit)
	assert.Equal(t, "Pedro Pérez", resultado.Trabajador["nombre_completo"])
	assert.Equal(t, 29, resultado.Trabajador["meses_servicio"])
}

func TestValidarConvenioTrabajadorNoElegible(t *testing.T) {
	vencido := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	casos := []struct {
		nombre     string
		estado     string
		vence      *time.Time
		trabajador func() *TrabajadorInfo
	}{
		{
			nombre: "nit no coincide",
			estado: models.ConvenioActivo,
			trabajador: func() *TrabajadorInfo {
				trab := trabajadorDemo()
				trab.Empresa.Nit = "800999999"
				return trab
			},
		},
		{
			nombre:     "convenio inactivo",
			estado:     models.ConvenioInactivo,
			trabajador: trabajadorDemo,
		},
		{
			nombre:     "convenio vencido",
			estado:     models.ConvenioActivo,
			vence:      &vencido,
			trabajador: trabajadorDemo,
		},
		{
			nombre: "trabajador retirado",
			estado: models.ConvenioActivo,
			trabajador: func() *TrabajadorInfo {
				trab := trabajadorDemo()
				trab.Estado = "R"
				return trab
			},
		},
		{
			nombre: "antiguedad insuficiente",
			estado: models.ConvenioActivo,
			trabajador: func() *TrabajadorInfo {
				trab := trabajadorDemo()
				trab.FechaAfiliacion = "2025-02-01"
				return trab
			},
		},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			db := newTestDB(t)
			crearConvenioDePrueba(t, db, c.estado, c.vence)
			svc := validadorDePrueba(t, db, map[string]*TrabajadorInfo{"1117500000": c.trabajador()})

			_, err := svc.ValidarConvenioTrabajador(context.Background(), "900123456", "1117500000")
			var elegibilidad *ElegibilidadError
			require.ErrorAs(t, err, &elegibilidad, "se espera error de elegibilidad")
		})
	}
}

func TestValidarConvenioSinConvenioRegistrado(t *testing.T) {
	db := newTestDB(t)
	svc := validadorDePrueba(t, db, map[string]*TrabajadorInfo{"1117500000": trabajadorDemo()})

	_, err := svc.ValidarConvenioTrabajador(context.Background(), "900123456", "1117500000")
	var elegibilidad *ElegibilidadError
	assert.ErrorAs(t, err, &elegibilidad)
}

func TestValidarConvenioTrabajadorInexistente(t *testing.T) {
	db := newTestDB(t)
	crearConvenioDePrueba(t, db, models.ConvenioActivo, nil)
	svc := validadorDePrueba(t, db, map[string]*TrabajadorInfo{})

	_, err := svc.ValidarConvenioTrabajador(context.Background(), "900123456", "1117500000")
	assert.ErrorIs(t, err, ErrTrabajadorNoEncontrado)
}

func TestMesesServicioLimite(t *testing.T) {
	db := newTestDB(t)
	crearConvenioDePrueba(t, db, models.ConvenioActivo, nil)

	// Exactamente 6 meses cumplidos el día de la consulta
	trab := trabajadorDemo()
	trab.FechaAfiliacion = "2024-12-15"
	svc := validadorDePrueba(t, db, map[string]*TrabajadorInfo{"1117500000": trab})

	resultado, err := svc.ValidarConvenioTrabajador(context.Background(), "900123456", "1117500000")
	require.NoError(t, err)
	assert.Equal(t, 6, resultado.Trabajador["meses_servicio"])
}
