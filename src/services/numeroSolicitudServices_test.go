package services

import (
	"testing"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarNumeroSolicitudConsecutivo(t *testing.T) {
	db := newTestDB(t)
	numeros := NewNumeroSolicitudService(db)
	numeros.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }

	primero, err := numeros.GenerarNumeroSolicitud("3")
	require.NoError(t, err)
	assert.Equal(t, "000001-202501-3", primero)

	segundo, err := numeros.GenerarNumeroSolicitud("3")
	require.NoError(t, err)
	assert.Equal(t, "000002-202501-3", segundo)
	assert.True(t, ValidarFormatoNumeroSolicitud(segundo))

	// Cada línea lleva su propia secuencia
	otraLinea, err := numeros.GenerarNumeroSolicitud("1")
	require.NoError(t, err)
	assert.Equal(t, "000001-202501-1", otraLinea)

	// El cambio de vigencia reinicia la secuencia
	numeros.now = func() time.Time { return time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC) }
	nuevaVigencia, err := numeros.GenerarNumeroSolicitud("3")
	require.NoError(t, err)
	assert.Equal(t, "000001-202502-3", nuevaVigencia)

	_, err = numeros.GenerarNumeroSolicitud("  ")
	assert.Error(t, err)
}

func TestCrearSolicitudGeneraNumeroAutomatico(t *testing.T) {
	db := newTestDB(t)
	numeros := NewNumeroSolicitudService(db)
	numeros.now = func() time.Time { return time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC) }
	solicitudes := NewSolicitudService(db, numeros)

	solicitud, err := solicitudes.CrearSolicitud(&dtos.CrearSolicitudDTO{
		ValorSolicitud: 2000000,
		PlazoMeses:     12,
		LineaCredito:   "2",
		Solicitante:    &dtos.SolicitanteDTO{NumeroDocumento: "1117500000"},
	}, "ptrabajador")
	require.NoError(t, err)
	assert.Equal(t, "000001-202503-2", solicitud.NumeroSolicitud)
}

func TestFormatearNumeroSolicitud(t *testing.T) {
	assert.Equal(t, "000001-202501-3", FormatearNumeroSolicitud(1, 202501, "3"))
	assert.Equal(t, "012345-202612-15", FormatearNumeroSolicitud(12345, 202612, "15"))
}

func TestParseNumeroSolicitud(t *testing.T) {
	parsed := ParseNumeroSolicitud("000042-202503-7")
	require.NotNil(t, parsed)
	assert.Equal(t, 42, parsed.Secuencia)
	assert.Equal(t, 202503, parsed.Vigencia)
	assert.Equal(t, "7", parsed.LineaCredito)

	assert.Nil(t, ParseNumeroSolicitud("42-202503-7"))
	assert.Nil(t, ParseNumeroSolicitud("000042-2025-7"))
	assert.Nil(t, ParseNumeroSolicitud("000042-202503"))
	assert.Nil(t, ParseNumeroSolicitud(""))
}

func TestValidarFormatoNumeroSolicitud(t *testing.T) {
	casos := []struct {
		numero string
		valido bool
	}{
		{"000001-202501-1", true},
		{"999999-209912-10", true},
		{"000000-202501-1", false}, // secuencia fuera de rango
		{"000001-201912-1", false}, // vigencia anterior al sistema
		{"000001-210001-1", false}, // vigencia fuera de rango
		{"000001-202513-1", false}, // mes imposible
		{"000001-202500-1", false}, // mes cero
		{"1-202501-1", false},      // secuencia sin relleno
		{"abc", false},
	}

	for _, c := range casos {
		assert.Equal(t, c.valido, ValidarFormatoNumeroSolicitud(c.numero), "numero %q", c.numero)
	}
}

func TestExisteNumeroSolicitud(t *testing.T) {
	db := newTestDB(t)
	numeros := NewNumeroSolicitudService(db)
	solicitudes := NewSolicitudService(db, numeros)

	numero := FormatearNumeroSolicitud(1, 202501, "1")
	crearSolicitudDePrueba(t, solicitudes, numero, "ptrabajador")

	existe, err := numeros.ExisteNumeroSolicitud(numero)
	require.NoError(t, err)
	assert.True(t, existe)

	existe, err = numeros.ExisteNumeroSolicitud(FormatearNumeroSolicitud(2, 202501, "1"))
	require.NoError(t, err)
	assert.False(t, existe)
}

func TestCrearSolicitudRechazaNumeroDuplicado(t *testing.T) {
	db := newTestDB(t)
	numeros := NewNumeroSolicitudService(db)
	solicitudes := NewSolicitudService(db, numeros)

	numero := FormatearNumeroSolicitud(7, 202502, "2")
	crearSolicitudDePrueba(t, solicitudes, numero, "ptrabajador")

	_, err := solicitudes.CrearSolicitud(&dtos.CrearSolicitudDTO{
		NumeroSolicitud: numero,
		ValorSolicitud:  1000000,
		PlazoMeses:      12,
		Solicitante:     &dtos.SolicitanteDTO{NumeroDocumento: "1117500001"},
	}, "otro")
	require.Error(t, err)
	var validacion *ValidacionError
	assert.ErrorAs(t, err, &validacion)
}
