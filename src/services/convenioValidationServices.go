package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"gorm.io/gorm"
)

// Tiempo mínimo de servicio para ser elegible por convenio.
const mesesServicioMinimo = 6

// ElegibilidadError explica por qué un trabajador no es elegible (HTTP 422).
type ElegibilidadError struct {
	Motivo string
}

func (e *ElegibilidadError) Error() string { return e.Motivo }

// ResultadoValidacionConvenio es la respuesta de una validación exitosa.
type ResultadoValidacionConvenio struct {
	Elegible   bool                    `json:"elegible"`
	Convenio   *models.EmpresaConvenio `json:"convenio"`
	Trabajador map[string]interface{}  `json:"trabajador"`
	Mensaje    string                  `json:"mensaje"`
}

// ConvenioValidationService valida la elegibilidad de un trabajador para
// solicitar crédito bajo convenio empresarial.
type ConvenioValidationService struct {
	db           *gorm.DB
	trabajadores *TrabajadorService
	now          func() time.Time
}

// NewConvenioValidationService creates a new instance of ConvenioValidationService
func NewConvenioValidationService(db *gorm.DB, trabajadores *TrabajadorService) *ConvenioValidationService {
	return &ConvenioValidationService{db: db, trabajadores: trabajadores, now: time.Now}
}

// ValidarConvenioTrabajador aplica todas las reglas de elegibilidad:
// el trabajador pertenece a la empresa, el convenio está activo y vigente,
// el trabajador está activo ('A') y lleva al menos 6 meses de servicio.
func (s *ConvenioValidationService) ValidarConvenioTrabajador(ctx context.Context, nitEmpresa, cedulaTrabajador string) (*ResultadoValidacionConvenio, error) {
	if nitEmpresa == "" || cedulaTrabajador == "" {
		return nil, nuevaValidacion("el NIT de la empresa y la cédula del trabajador son obligatorios")
	}

	trabajador, err := s.trabajadores.ObtenerDatosTrabajador(ctx, cedulaTrabajador)
	if err != nil {
		return nil, err
	}

	if trabajador.Empresa.Nit != nitEmpresa {
		return nil, &ElegibilidadError{Motivo: "El trabajador no pertenece a la empresa especificada NIT " + trabajador.Empresa.Nit}
	}

	var convenio models.EmpresaConvenio
	if err := s.db.First(&convenio, "nit = ?", nitEmpresa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ElegibilidadError{Motivo: "La empresa no tiene convenio activo con Comfaca"}
		}
		return nil, err
	}

	ahora := s.now()
	if convenio.Estado != models.ConvenioActivo {
		return nil, &ElegibilidadError{Motivo: "El convenio de la empresa no está activo"}
	}
	if convenio.FechaVencimiento != nil && convenio.FechaVencimiento.Before(ahora) {
		return nil, &ElegibilidadError{Motivo: "El convenio de la empresa ha vencido"}
	}

	if trabajador.Estado != "A" {
		return nil, &ElegibilidadError{Motivo: "El trabajador no está activo en la empresa"}
	}

	if trabajador.FechaAfiliacion == "" {
		return nil, &ElegibilidadError{Motivo: "No se pudo determinar la fecha de afiliación del trabajador"}
	}
	meses, err := s.mesesServicio(trabajador.FechaAfiliacion)
	if err != nil {
		return nil, &ElegibilidadError{Motivo: "No se pudo determinar la fecha de afiliación del trabajador"}
	}
	if meses < mesesServicioMinimo {
		return nil, &ElegibilidadError{Motivo: "El trabajador no cumple con el tiempo mínimo de servicio"}
	}

	log.Printf("[CONVENIOS] Validación exitosa: NIT=%s cédula=%s meses=%d", nitEmpresa, cedulaTrabajador, meses)

	return &ResultadoValidacionConvenio{
		Elegible: true,
		Convenio: &convenio,
		Trabajador: map[string]interface{}{
			"cedula":           trabajador.Cedula,
			"nombre_completo":  trabajador.NombreCompleto(),
			"estado":           trabajador.Estado,
			"meses_servicio":   meses,
			"fecha_afiliacion": trabajador.FechaAfiliacion,
			"salario":          trabajador.Salario,
			"cargo":            trabajador.Cargo,
			"email":            trabajador.Email,
		},
		Mensaje: "El trabajador es elegible para solicitar crédito bajo convenio empresarial",
	}, nil
}

// mesesServicio calcula los meses completos desde la fecha de afiliación.
func (s *ConvenioValidationService) mesesServicio(fechaAfiliacion string) (int, error) {
	fecha, err := time.Parse("2006-01-02", fechaAfiliacion)
	if err != nil {
		return 0, err
	}

	ahora := s.now()
	meses := (ahora.Year()-fecha.Year())*12 + int(ahora.Month()) - int(fecha.Month())
	if ahora.Day() < fecha.Day() {
		meses--
	}
	if meses < 0 {
		meses = 0
	}
	return meses, nil
}
