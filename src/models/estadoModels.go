package models

import "fmt"

// EstadoSolicitud es el código de estado de una solicitud de crédito.
type EstadoSolicitud string

const (
	EstadoPostulado                  EstadoSolicitud = "POSTULADO"
	EstadoDocumentosCargados         EstadoSolicitud = "DOCUMENTOS_CARGADOS"
	EstadoEnviadoValidacion          EstadoSolicitud = "ENVIADO_VALIDACION"
	EstadoPendienteFirmado           EstadoSolicitud = "PENDIENTE_FIRMADO"
	EstadoFirmado                    EstadoSolicitud = "FIRMADO"
	EstadoEnviadoPendienteAprobacion EstadoSolicitud = "ENVIADO_PENDIENTE_APROBACION"
	EstadoAprobado                   EstadoSolicitud = "APROBADO"
	EstadoDesembolsado               EstadoSolicitud = "DESEMBOLSADO"
	EstadoFinalizado                 EstadoSolicitud = "FINALIZADO"
	EstadoRechazado                  EstadoSolicitud = "RECHAZADO"
	EstadoDesiste                    EstadoSolicitud = "DESISTE"
	EstadoRequiereCorreccion         EstadoSolicitud = "REQUIRE_CORRECCION"
)

// EstadoInfo agrupa los metadatos estáticos de un estado (para el frontend).
type EstadoInfo struct {
	Value       EstadoSolicitud `json:"value"`
	Label       string          `json:"label"`
	Color       string          `json:"color"`
	Orden       int             `json:"orden"`
	Descripcion string          `json:"descripcion"`
}

var estadosInfo = map[EstadoSolicitud]EstadoInfo{
	EstadoPostulado:                  {EstadoPostulado, "Postulado", "#6B7280", 1, "Solicitud recién creada y postulada"},
	EstadoDocumentosCargados:         {EstadoDocumentosCargados, "Documentos cargados", "#3B82F6", 2, "Todos los documentos han sido cargados"},
	EstadoEnviadoValidacion:          {EstadoEnviadoValidacion, "Enviado para validación", "#F59E0B", 3, "Enviado para validación de asesores"},
	EstadoPendienteFirmado:           {EstadoPendienteFirmado, "Pendiente de firmado", "#f5e20bff", 4, "Solicitud en proceso de firmado de solicitud de crédito"},
	EstadoFirmado:                    {EstadoFirmado, "Firmado", "#0D9488", 5, "Documentos de crédito firmados"},
	EstadoEnviadoPendienteAprobacion: {EstadoEnviadoPendienteAprobacion, "Enviado (pendiente de aprobación)", "#8B5CF6", 6, "Solicitud enviada y pendiente de aprobación"},
	EstadoAprobado:                   {EstadoAprobado, "Aprobado", "#10B981", 7, "Solicitud aprobada y lista para desembolso"},
	EstadoDesembolsado:               {EstadoDesembolsado, "Desembolsado", "#059669", 8, "Crédito desembolsado al solicitante"},
	EstadoFinalizado:                 {EstadoFinalizado, "Finalizado", "#6366F1", 9, "Crédito pagado y finalizado"},
	EstadoRechazado:                  {EstadoRechazado, "Rechazado", "#EF4444", 10, "Solicitud rechazada por no cumplir requisitos"},
	EstadoDesiste:                    {EstadoDesiste, "Desiste", "#F97316", 11, "El solicitante desiste de continuar con la solicitud"},
	EstadoRequiereCorreccion:         {EstadoRequiereCorreccion, "Requiere correccion", "#16a6f9ff", 12, "El solicitante debe corregir los datos para poder continuar con la solicitud"},
}

// transiciones define las transiciones permitidas por estado de origen.
// Los estados finales no tienen transiciones de salida.
var transiciones = map[EstadoSolicitud][]EstadoSolicitud{
	EstadoPostulado:                  {EstadoDocumentosCargados, EstadoEnviadoValidacion, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion},
	EstadoDocumentosCargados:         {EstadoPendienteFirmado, EstadoEnviadoValidacion, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion},
	EstadoEnviadoValidacion:          {EstadoPendienteFirmado, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion},
	EstadoPendienteFirmado:           {EstadoFirmado, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion},
	EstadoFirmado:                    {EstadoEnviadoPendienteAprobacion, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion},
	EstadoEnviadoPendienteAprobacion: {EstadoAprobado, EstadoRechazado, EstadoDesiste, EstadoRequiereCorreccion},
	EstadoAprobado:                   {EstadoDesembolsado, EstadoFinalizado, EstadoRechazado, EstadoDesiste},
	EstadoDesembolsado:               {EstadoFinalizado},
	EstadoFinalizado:                 {},
	EstadoRechazado:                  {},
	EstadoDesiste:                    {},
	EstadoRequiereCorreccion:         {},
}

// TransicionInvalidaError indica un cambio de estado no permitido por la tabla
// de transiciones.
type TransicionInvalidaError struct {
	Desde EstadoSolicitud
	Hacia EstadoSolicitud
}

func (e *TransicionInvalidaError) Error() string {
	return fmt.Sprintf("transición de estado no permitida: %s -> %s", e.Desde, e.Hacia)
}

// IsValidState indica si el código corresponde a un estado registrado.
func IsValidState(codigo string) bool {
	_, ok := estadosInfo[EstadoSolicitud(codigo)]
	return ok
}

// TransitionAllowed indica si la transición desde -> hacia está permitida.
func TransitionAllowed(desde, hacia EstadoSolicitud) bool {
	for _, e := range transiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}

// ValidarTransicion retorna un TransicionInvalidaError si el cambio no es legal.
func ValidarTransicion(desde, hacia EstadoSolicitud) error {
	if !IsValidState(string(hacia)) {
		return fmt.Errorf("estado desconocido: %s", hacia)
	}
	if !TransitionAllowed(desde, hacia) {
		return &TransicionInvalidaError{Desde: desde, Hacia: hacia}
	}
	return nil
}

// TransicionesDesde retorna los estados alcanzables desde el estado dado.
func TransicionesDesde(desde EstadoSolicitud) []EstadoSolicitud {
	salidas := transiciones[desde]
	out := make([]EstadoSolicitud, len(salidas))
	copy(out, salidas)
	return out
}

// IsFinal indica si el estado es terminal (sin transiciones de salida).
func (e EstadoSolicitud) IsFinal() bool {
	return len(transiciones[e]) == 0
}

// IsActive indica si la solicitud sigue en curso.
func (e EstadoSolicitud) IsActive() bool {
	return IsValidState(string(e)) && !e.IsFinal()
}

// Info retorna los metadatos del estado.
func (e EstadoSolicitud) Info() (EstadoInfo, bool) {
	info, ok := estadosInfo[e]
	return info, ok
}

// AllEstados retorna el catálogo completo ordenado por orden convencional.
func AllEstados() []EstadoInfo {
	out := make([]EstadoInfo, 0, len(estadosInfo))
	for orden := 1; orden <= len(estadosInfo); orden++ {
		for _, info := range estadosInfo {
			if info.Orden == orden {
				out = append(out, info)
			}
		}
	}
	return out
}
