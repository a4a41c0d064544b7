package dtos

import "time"

// SolicitanteDTO es el snapshot del solicitante recibido al crear la solicitud.
type SolicitanteDTO struct {
	TipoPersona     string     `json:"tipo_persona"`
	TipoDocumento   string     `json:"tipo_documento"`
	NumeroDocumento string     `json:"numero_documento"`
	Nombres         string     `json:"nombres"`
	Apellidos       string     `json:"apellidos"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento"`
	Email           string     `json:"email"`
	Telefono        string     `json:"telefono"`
	Celular         string     `json:"celular"`
	Direccion       string     `json:"direccion"`
	Ciudad          string     `json:"ciudad"`
	Departamento    string     `json:"departamento"`
	Cargo           string     `json:"cargo"`
	Salario         float64    `json:"salario"`
	NitEmpresa      string     `json:"nit_empresa"`
}

// FirmanteDTO es un firmante requerido recibido al crear la solicitud.
type FirmanteDTO struct {
	Orden           int    `json:"orden"`
	Tipo            string `json:"tipo"`
	Rol             string `json:"rol"`
	NombreCompleto  string `json:"nombre_completo"`
	NumeroDocumento string `json:"numero_documento"`
	Email           string `json:"email"`
}

// CrearSolicitudDTO es el cuerpo de POST /solicitudes-credito.
type CrearSolicitudDTO struct {
	NumeroSolicitud  string          `json:"numero_solicitud"` // opcional, se genera si falta
	ValorSolicitud   float64         `json:"valor_solicitud"`
	PlazoMeses       int             `json:"plazo_meses"`
	TasaInteres      float64         `json:"tasa_interes"`
	LineaCredito     string          `json:"linea_credito"`
	DetalleModalidad string          `json:"detalle_modalidad"`
	TipoCredito      string          `json:"tipo_credito"`
	ProductoTipo     string          `json:"producto_tipo"`
	Moneda           string          `json:"moneda"`
	RolEnSolicitud   string          `json:"rol_en_solicitud"`
	HaTenidoCredito  bool            `json:"ha_tenido_credito"`
	Solicitante      *SolicitanteDTO `json:"solicitante"`
	Firmantes        []FirmanteDTO   `json:"firmantes"`
}

// ActualizarSolicitudDTO permite actualización parcial; solo los campos no
// nulos se aplican.
type ActualizarSolicitudDTO struct {
	ValorSolicitud   *float64 `json:"valor_solicitud"`
	MontoAprobado    *float64 `json:"monto_aprobado"`
	PlazoMeses       *int     `json:"plazo_meses"`
	TasaInteres      *float64 `json:"tasa_interes"`
	CuotaMensual     *float64 `json:"cuota_mensual"`
	DetalleModalidad *string  `json:"detalle_modalidad"`
	TipoCredito      *string  `json:"tipo_credito"`
	ProductoTipo     *string  `json:"producto_tipo"`
	Moneda           *string  `json:"moneda"`
	HaTenidoCredito  *bool    `json:"ha_tenido_credito"`
}

// CambiarEstadoDTO es el cuerpo de PATCH /solicitudes-credito/:id/estado.
type CambiarEstadoDTO struct {
	Estado  string `json:"estado"`
	Detalle string `json:"detalle"`
}

// BuscarSolicitudesDTO es el filtro de la búsqueda avanzada.
type BuscarSolicitudesDTO struct {
	Estado        string     `json:"estado"`
	OwnerUsername string     `json:"owner_username"`
	FechaDesde    *time.Time `json:"fecha_desde"`
	FechaHasta    *time.Time `json:"fecha_hasta"`
	ValorMinimo   *float64   `json:"valor_minimo"`
	ValorMaximo   *float64   `json:"valor_maximo"`
	Texto         string     `json:"texto"`
	Limit         int        `json:"limit"`
	Offset        int        `json:"offset"`
}

// GenerarPdfDTO es el cuerpo de POST /solicitudes/:id/generar-pdf.
type GenerarPdfDTO struct {
	IncluirConvenio  *bool `json:"incluir_convenio"`
	IncluirFirmantes *bool `json:"incluir_firmantes"`
}

// WebhookFirmaDTO es el payload entrante del proveedor de firma digital.
// El token viaja en el cuerpo porque el endpoint no está autenticado.
type WebhookFirmaDTO struct {
	Token                string `json:"token"`
	TransaccionID        string `json:"transaccion_id"`
	SolicitudID          string `json:"solicitud_id"`
	Estado               string `json:"estado"`
	FirmantesCompletados int    `json:"firmantes_completados"`
	FirmantesPendientes  int    `json:"firmantes_pendientes"`
	DocumentoFirmadoURL  string `json:"documento_firmado_url"`
}

// CrearPostulacionDTO es el cuerpo de POST /postulaciones.
type CrearPostulacionDTO struct {
	NitEmpresa       string  `json:"nit_empresa"`
	CedulaTrabajador string  `json:"cedula_trabajador"`
	LineaCredito     string  `json:"linea_credito"`
	DetalleModalidad string  `json:"detalle_modalidad"`
	ValorEstimado    float64 `json:"valor_estimado"`
	PlazoMeses       int     `json:"plazo_meses"`
}

// ActualizarEstadoPostulacionDTO es el cuerpo de PATCH /postulaciones/:id/estado.
type ActualizarEstadoPostulacionDTO struct {
	Estado        string `json:"estado"`
	Observaciones string `json:"observaciones"`
}

// ValidarConvenioDTO es el cuerpo de POST /convenios/validar.
type ValidarConvenioDTO struct {
	NitEmpresa       string `json:"nit_empresa"`
	CedulaTrabajador string `json:"cedula_trabajador"`
}
