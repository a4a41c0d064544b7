package models

import (
	"time"

	"gorm.io/gorm"
)

// SolicitudCredito es el agregado central: una solicitud de crédito con su
// snapshot de solicitante, documentos, firmantes, PDF y proceso de firmado.
// La clave primaria es el número de solicitud (clave de negocio, inmutable).
type SolicitudCredito struct {
	NumeroSolicitud  string          `json:"numero_solicitud" gorm:"primaryKey;type:varchar(30)"`
	OwnerUsername    string          `json:"owner_username" gorm:"type:varchar(100);not null;index"`
	ValorSolicitud   float64         `json:"valor_solicitud" gorm:"type:numeric(15,2);not null"`
	MontoAprobado    float64         `json:"monto_aprobado" gorm:"type:numeric(15,2);default:0"`
	PlazoMeses       int             `json:"plazo_meses" gorm:"not null"`
	TasaInteres      float64         `json:"tasa_interes" gorm:"type:numeric(5,2)"`
	CuotaMensual     float64         `json:"cuota_mensual" gorm:"type:numeric(15,2)"`
	Estado           EstadoSolicitud `json:"estado" gorm:"type:varchar(40);not null;index"`
	FechaRadicado    *time.Time      `json:"fecha_radicado" gorm:"type:date"`
	ProductoTipo     string          `json:"producto_tipo" gorm:"type:varchar(50)"`
	TipoCredito      string          `json:"tipo_credito" gorm:"type:varchar(50)"`
	DetalleModalidad string          `json:"detalle_modalidad" gorm:"type:varchar(100)"`
	LineaCredito     string          `json:"linea_credito" gorm:"type:varchar(10)"`
	Moneda           string          `json:"moneda" gorm:"type:varchar(10);default:COP"`
	HaTenidoCredito  bool            `json:"ha_tenido_credito"`
	// T=Trabajador, S=Solicitante, C=Codeudor, E=Empleador
	RolEnSolicitud string `json:"rol_en_solicitud" gorm:"type:varchar(1)"`

	Solicitante    *SolicitudSolicitante `json:"solicitante,omitempty" gorm:"foreignKey:SolicitudID;references:NumeroSolicitud"`
	Documentos     []SolicitudDocumento  `json:"documentos,omitempty" gorm:"foreignKey:SolicitudID;references:NumeroSolicitud"`
	Firmantes      []FirmanteSolicitud   `json:"firmantes,omitempty" gorm:"foreignKey:SolicitudID;references:NumeroSolicitud"`
	Timeline       []SolicitudTimeline   `json:"timeline,omitempty" gorm:"foreignKey:SolicitudID;references:NumeroSolicitud"`
	PdfGenerado    *PdfGenerado          `json:"pdf_generado,omitempty" gorm:"foreignKey:SolicitudID;references:NumeroSolicitud"`
	ProcesoFirmado *ProcesoFirmado       `json:"proceso_firmado,omitempty" gorm:"foreignKey:SolicitudID;references:NumeroSolicitud"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SolicitudCredito) TableName() string { return "solicitudes_credito" }

// SolicitudSolicitante es el snapshot desnormalizado del solicitante al
// momento de radicar; no se actualiza si el perfil del usuario cambia después.
type SolicitudSolicitante struct {
	ID              int        `json:"id" gorm:"primaryKey;autoIncrement"`
	SolicitudID     string     `json:"solicitud_id" gorm:"type:varchar(30);not null;index"`
	TipoPersona     string     `json:"tipo_persona" gorm:"type:varchar(20)"`
	TipoDocumento   string     `json:"tipo_documento" gorm:"type:varchar(10)"`
	NumeroDocumento string     `json:"numero_documento" gorm:"type:varchar(30);not null"`
	Nombres         string     `json:"nombres" gorm:"type:varchar(120)"`
	Apellidos       string     `json:"apellidos" gorm:"type:varchar(120)"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento" gorm:"type:date"`
	Email           string     `json:"email" gorm:"type:varchar(150)"`
	Telefono        string     `json:"telefono" gorm:"type:varchar(30)"`
	Celular         string     `json:"celular" gorm:"type:varchar(30)"`
	Direccion       string     `json:"direccion" gorm:"type:varchar(200)"`
	Ciudad          string     `json:"ciudad" gorm:"type:varchar(80)"`
	Departamento    string     `json:"departamento" gorm:"type:varchar(80)"`
	Cargo           string     `json:"cargo" gorm:"type:varchar(100)"`
	Salario         float64    `json:"salario" gorm:"type:numeric(15,2)"`
	NitEmpresa      string     `json:"nit_empresa" gorm:"type:varchar(20)"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (SolicitudSolicitante) TableName() string { return "solicitud_solicitante" }

// SolicitudDocumento es un archivo adjunto a la solicitud. Borrado lógico via
// gorm.DeletedAt: el registro nunca se elimina físicamente.
type SolicitudDocumento struct {
	ID                   int            `json:"id" gorm:"primaryKey;autoIncrement"`
	SolicitudID          string         `json:"solicitud_id" gorm:"type:varchar(30);not null;index"`
	DocumentoUUID        string         `json:"documento_uuid" gorm:"type:varchar(36);uniqueIndex"`
	DocumentoRequeridoID string         `json:"documento_requerido_id" gorm:"type:varchar(50)"`
	NombreOriginal       string         `json:"nombre_original" gorm:"type:varchar(255)"`
	RutaArchivo          string         `json:"ruta_archivo" gorm:"type:varchar(500)"`
	TipoMime             string         `json:"tipo_mime" gorm:"type:varchar(100)"`
	TamanoBytes          int64          `json:"tamano_bytes"`
	Activo               bool           `json:"activo" gorm:"default:true"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `json:"-" gorm:"index"`
}

func (SolicitudDocumento) TableName() string { return "solicitud_documentos" }

// FirmanteSolicitud es un firmante requerido del documento de la solicitud.
type FirmanteSolicitud struct {
	ID              int       `json:"id" gorm:"primaryKey;autoIncrement"`
	SolicitudID     string    `json:"solicitud_id" gorm:"type:varchar(30);not null;index"`
	Orden           int       `json:"orden" gorm:"not null"`
	Tipo            string    `json:"tipo" gorm:"type:varchar(30)"`
	Rol             string    `json:"rol" gorm:"type:varchar(30)"`
	NombreCompleto  string    `json:"nombre_completo" gorm:"type:varchar(200);not null"`
	NumeroDocumento string    `json:"numero_documento" gorm:"type:varchar(30);not null"`
	Email           string    `json:"email" gorm:"type:varchar(150)"`
	Firmado         bool      `json:"firmado" gorm:"default:false"`
	URLFirma        string    `json:"url_firma" gorm:"type:varchar(500)"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (FirmanteSolicitud) TableName() string { return "firmantes_solicitud" }

// SolicitudTimeline es una entrada del historial de estados. Solo se insertan
// filas; no existe ninguna operación que las modifique o elimine.
type SolicitudTimeline struct {
	ID              int       `json:"id" gorm:"primaryKey;autoIncrement"`
	SolicitudID     string    `json:"solicitud_id" gorm:"type:varchar(30);not null;index"`
	EstadoCodigo    string    `json:"estado_codigo" gorm:"type:varchar(40);not null"`
	Detalle         string    `json:"detalle" gorm:"type:text"`
	UsuarioUsername string    `json:"usuario_username" gorm:"type:varchar(100)"`
	Automatico      bool      `json:"automatico"`
	Fecha           time.Time `json:"fecha" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}

func (SolicitudTimeline) TableName() string { return "solicitud_timeline" }

// PdfGenerado guarda los metadatos del PDF de la solicitud generado por el
// servicio externo de renderizado.
type PdfGenerado struct {
	ID                int       `json:"id" gorm:"primaryKey;autoIncrement"`
	SolicitudID       string    `json:"solicitud_id" gorm:"type:varchar(30);not null;uniqueIndex"`
	Path              string    `json:"path" gorm:"type:varchar(500);not null"`
	Filename          string    `json:"filename" gorm:"type:varchar(255);not null"`
	TamanoBytes       int64     `json:"tamano_bytes"`
	IncluyeConvenio   bool      `json:"incluye_convenio"`
	IncluyeFirmantes  bool      `json:"incluye_firmantes"`
	GeneradoEn        time.Time `json:"generado_en"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (PdfGenerado) TableName() string { return "pdfs_generados" }

// Estados del proceso de firmado (máquina por proceso, independiente del
// estado de la solicitud).
const (
	ProcesoFirmaPendiente = "PENDIENTE_FIRMADO"
	ProcesoFirmaFirmado   = "FIRMADO"
	ProcesoFirmaRechazado = "RECHAZADO"
	ProcesoFirmaExpirado  = "EXPIRADO"
	ProcesoFirmaCancelado = "CANCELADO"
)

// ProcesoFirmado es el estado local del proceso de firma digital en el
// proveedor externo. Es una caché de lectura, no la fuente autoritativa.
type ProcesoFirmado struct {
	ID                   int        `json:"id" gorm:"primaryKey;autoIncrement"`
	SolicitudID          string     `json:"solicitud_id" gorm:"type:varchar(30);not null;uniqueIndex"`
	TransaccionID        string     `json:"transaccion_id" gorm:"type:varchar(100);not null;index"`
	Estado               string     `json:"estado" gorm:"type:varchar(30);not null"`
	FirmantesCompletados int        `json:"firmantes_completados"`
	FirmantesPendientes  int        `json:"firmantes_pendientes"`
	FechaEnvio           time.Time  `json:"fecha_envio"`
	FechaCompletado      *time.Time `json:"fecha_completado"`
	DocumentoFirmadoPath string     `json:"documento_firmado_path" gorm:"type:varchar(500)"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

func (ProcesoFirmado) TableName() string { return "procesos_firmado" }

// NumeroSolicitudSecuencia lleva la secuencia consecutiva por línea de
// crédito y vigencia (YYYYMM). La restricción única protege la generación
// concurrente de números.
type NumeroSolicitudSecuencia struct {
	ID               int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Radicado         string    `json:"radicado" gorm:"type:varchar(30)"`
	NumericSecuencia int       `json:"numeric_secuencia" gorm:"not null"`
	LineaCredito     string    `json:"linea_credito" gorm:"type:varchar(10);not null;uniqueIndex:idx_linea_vigencia"`
	Vigencia         int       `json:"vigencia" gorm:"not null;uniqueIndex:idx_linea_vigencia"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (NumeroSolicitudSecuencia) TableName() string { return "numero_solicitudes" }
