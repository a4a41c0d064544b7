package models

import "time"

// Estados de un convenio empresarial.
const (
	ConvenioActivo     = "Activo"
	ConvenioInactivo   = "Inactivo"
	ConvenioSuspendido = "Suspendido"
	ConvenioVencido    = "Vencido"
)

// EmpresaConvenio es el convenio de una empresa con Comfaca que habilita a
// sus trabajadores para solicitar crédito.
type EmpresaConvenio struct {
	Id                     int        `json:"id" gorm:"primaryKey;autoIncrement"`
	Nit                    string     `json:"nit" gorm:"type:varchar(20);uniqueIndex;not null"`
	RazonSocial            string     `json:"razon_social" gorm:"type:varchar(200);not null"`
	FechaConvenio          *time.Time `json:"fecha_convenio" gorm:"type:date"`
	FechaVencimiento       *time.Time `json:"fecha_vencimiento" gorm:"type:date"`
	Estado                 string     `json:"estado" gorm:"type:varchar(20);not null;default:Activo"`
	RepresentanteDocumento string     `json:"representante_documento" gorm:"type:varchar(30)"`
	RepresentanteNombre    string     `json:"representante_nombre" gorm:"type:varchar(200)"`
	Telefono               string     `json:"telefono" gorm:"type:varchar(30)"`
	Correo                 string     `json:"correo" gorm:"type:varchar(150)"`
	Direccion              string     `json:"direccion" gorm:"type:varchar(200)"`
	Ciudad                 string     `json:"ciudad" gorm:"type:varchar(80)"`
	Departamento           string     `json:"departamento" gorm:"type:varchar(80)"`
	SectorEconomico        string     `json:"sector_economico" gorm:"type:varchar(100)"`
	NumeroEmpleados        int        `json:"numero_empleados"`
	TipoEmpresa            string     `json:"tipo_empresa" gorm:"type:varchar(50)"`
	Descripcion            string     `json:"descripcion" gorm:"type:text"`
	NotasInternas          string     `json:"notas_internas" gorm:"type:text"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (EmpresaConvenio) TableName() string { return "empresas_convenio" }

// Vigente indica si el convenio está activo y sin vencer a la fecha dada.
func (c *EmpresaConvenio) Vigente(ahora time.Time) bool {
	if c.Estado != ConvenioActivo {
		return false
	}
	if c.FechaVencimiento != nil && c.FechaVencimiento.Before(ahora) {
		return false
	}
	return true
}
