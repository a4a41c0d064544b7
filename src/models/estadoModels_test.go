package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlujoPrincipalDeEstados(t *testing.T) {
	flujo := []EstadoSolicitud{
		EstadoPostulado,
		EstadoDocumentosCargados,
		EstadoPendienteFirmado,
		EstadoFirmado,
		EstadoEnviadoPendienteAprobacion,
		EstadoAprobado,
		EstadoDesembolsado,
		EstadoFinalizado,
	}

	for i := 0; i < len(flujo)-1; i++ {
		assert.True(t, TransitionAllowed(flujo[i], flujo[i+1]),
			"la transición %s -> %s debe estar permitida", flujo[i], flujo[i+1])
	}
}

func TestEstadosFinalesNoTienenSalidas(t *testing.T) {
	finales := []EstadoSolicitud{EstadoFinalizado, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion}

	for _, final := range finales {
		assert.True(t, final.IsFinal(), "%s debe ser final", final)
		for _, destino := range AllEstados() {
			assert.False(t, TransitionAllowed(final, destino.Value),
				"%s es final y no debe permitir salida a %s", final, destino.Value)
		}
	}
}

func TestEstadosDeAbortoAlcanzablesDesdeActivos(t *testing.T) {
	// Rechazo y desistimiento proceden desde cualquier estado en curso,
	// excepto DESEMBOLSADO que solo puede finalizar.
	for _, info := range AllEstados() {
		estado := info.Value
		if estado.IsFinal() || estado == EstadoDesembolsado {
			continue
		}
		assert.True(t, TransitionAllowed(estado, EstadoRechazado),
			"%s debe poder rechazarse", estado)
		assert.True(t, TransitionAllowed(estado, EstadoDesiste),
			"%s debe poder desistirse", estado)
	}

	assert.True(t, TransitionAllowed(EstadoDesembolsado, EstadoFinalizado))
	assert.False(t, TransitionAllowed(EstadoDesembolsado, EstadoRechazado))
}

func TestValidarTransicion(t *testing.T) {
	require.NoError(t, ValidarTransicion(EstadoPostulado, EstadoDocumentosCargados))

	err := ValidarTransicion(EstadoPostulado, EstadoAprobado)
	require.Error(t, err)
	var invalida *TransicionInvalidaError
	require.ErrorAs(t, err, &invalida)
	assert.Equal(t, EstadoPostulado, invalida.Desde)
	assert.Equal(t, EstadoAprobado, invalida.Hacia)

	// Estado destino desconocido no es una transición inválida sino un error
	// de estado.
	err = ValidarTransicion(EstadoPostulado, "INEXISTENTE")
	require.Error(t, err)
	assert.NotErrorAs(t, err, &invalida)
}

func TestNoSePuedeRetroceder(t *testing.T) {
	assert.False(t, TransitionAllowed(EstadoFirmado, EstadoPostulado))
	assert.False(t, TransitionAllowed(EstadoAprobado, EstadoEnviadoValidacion))
	assert.False(t, TransitionAllowed(EstadoDesembolsado, EstadoAprobado))
}

func TestCatalogoDeEstados(t *testing.T) {
	estados := AllEstados()
	require.Len(t, estados, 12)

	// Ordenados por el orden convencional del flujo
	for i, info := range estados {
		assert.Equal(t, i+1, info.Orden)
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.Color)
	}

	assert.True(t, IsValidState("POSTULADO"))
	assert.False(t, IsValidState("postulado"))
	assert.False(t, IsValidState(""))
}

func TestEstadoInfo(t *testing.T) {
	info, ok := EstadoFirmado.Info()
	require.True(t, ok)
	assert.Equal(t, "Firmado", info.Label)

	_, ok = EstadoSolicitud("OTRO").Info()
	assert.False(t, ok)
}
