package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idsDe(documentos []DocumentoRequerido) []string {
	ids := make([]string, 0, len(documentos))
	for _, d := range documentos {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestDocumentosRequeridosPorModalidad(t *testing.T) {
	base := []string{"cedula_frente", "cedula_reverso", "recibo_servicios"}

	casos := []struct {
		modalidad   string
		adicionales []string
	}{
		{"VIVIENDA", []string{"escritura_inmueble", "certificado_tradicion"}},
		{"CREDITO VIVIENDA VIS", []string{"escritura_inmueble", "certificado_tradicion"}},
		{"vivienda usada", []string{"escritura_inmueble", "certificado_tradicion"}},
		{"EDUCACION", []string{"certificado_estudios", "matricula_profesional"}},
		{"EDUCACION SUPERIOR", []string{"certificado_estudios", "matricula_profesional"}},
		{"LIBRE_INVERSION", []string{"certificado_laboral", "declaracion_renta"}},
		{"VEHICULO", []string{"certificado_laboral", "declaracion_renta"}},
		{"", []string{"certificado_laboral", "declaracion_renta"}},
	}

	for _, c := range casos {
		t.Run(c.modalidad, func(t *testing.T) {
			ids := idsDe(DocumentosRequeridosPorModalidad(c.modalidad))
			esperados := append(append([]string{}, base...), c.adicionales...)
			assert.Equal(t, esperados, ids)
		})
	}
}

func TestDocumentosBaseSiempreObligatorios(t *testing.T) {
	for _, d := range DocumentosRequeridosPorModalidad("CUALQUIERA") {
		switch d.ID {
		case "cedula_frente", "cedula_reverso", "recibo_servicios":
			assert.True(t, d.Obligatorio, "%s debe ser obligatorio", d.ID)
		}
	}

	// La matrícula profesional es el único opcional de educación
	educacion := DocumentosRequeridosPorModalidad("EDUCACION")
	var matricula *DocumentoRequerido
	for i := range educacion {
		if educacion[i].ID == "matricula_profesional" {
			matricula = &educacion[i]
		}
	}
	require.NotNil(t, matricula)
	assert.False(t, matricula.Obligatorio)
}
