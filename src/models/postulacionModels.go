package models

import "time"

// EstadoPostulacion es el código de estado de una postulación (etapa
// preliminar a la solicitud de crédito).
type EstadoPostulacion string

const (
	PostulacionPostulado EstadoPostulacion = "POSTULADO"
	PostulacionEnRevision EstadoPostulacion = "EN_REVISION"
	PostulacionAprobado   EstadoPostulacion = "APROBADO"
	PostulacionRechazado  EstadoPostulacion = "RECHAZADO"
	PostulacionCancelado  EstadoPostulacion = "CANCELADO"
)

var transicionesPostulacion = map[EstadoPostulacion][]EstadoPostulacion{
	PostulacionPostulado:  {PostulacionEnRevision, PostulacionCancelado},
	PostulacionEnRevision: {PostulacionAprobado, PostulacionRechazado, PostulacionCancelado},
	PostulacionAprobado:   {},
	PostulacionRechazado:  {},
	PostulacionCancelado:  {},
}

// TransitionAllowed indica si la postulación puede pasar al estado dado.
func (e EstadoPostulacion) TransitionAllowed(hacia EstadoPostulacion) bool {
	for _, x := range transicionesPostulacion[e] {
		if x == hacia {
			return true
		}
	}
	return false
}

// IsFinal indica si la postulación ya no admite cambios de estado.
func (e EstadoPostulacion) IsFinal() bool {
	return len(transicionesPostulacion[e]) == 0
}

// Postulacion es la etapa previa a la solicitud: el trabajador manifiesta
// interés y se verifica su elegibilidad por convenio.
type Postulacion struct {
	Id               int               `json:"id" gorm:"primaryKey;autoIncrement"`
	PostulacionUUID  string            `json:"postulacion_uuid" gorm:"type:varchar(36);uniqueIndex;not null"`
	Username         string            `json:"username" gorm:"type:varchar(100);not null;index"`
	NitEmpresa       string            `json:"nit_empresa" gorm:"type:varchar(20);not null"`
	CedulaTrabajador string            `json:"cedula_trabajador" gorm:"type:varchar(30);not null"`
	LineaCredito     string            `json:"linea_credito" gorm:"type:varchar(10)"`
	DetalleModalidad string            `json:"detalle_modalidad" gorm:"type:varchar(100)"`
	ValorEstimado    float64           `json:"valor_estimado" gorm:"type:numeric(15,2)"`
	PlazoMeses       int               `json:"plazo_meses"`
	Estado           EstadoPostulacion `json:"estado" gorm:"type:varchar(20);not null"`
	Observaciones    string            `json:"observaciones" gorm:"type:text"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

func (Postulacion) TableName() string { return "postulaciones" }
