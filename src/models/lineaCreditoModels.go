package models

import "time"

// LineaCredito es una línea del catálogo de crédito (código consecutivo que
// alimenta el número de solicitud y la modalidad que decide los documentos).
type LineaCredito struct {
	Id               int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Codigo           string    `json:"codigo" gorm:"type:varchar(10);uniqueIndex;not null"`
	Nombre           string    `json:"nombre" gorm:"type:varchar(100);not null"`
	DetalleModalidad string    `json:"detalle_modalidad" gorm:"type:varchar(100)"`
	TasaInteres      float64   `json:"tasa_interes" gorm:"type:numeric(5,2)"`
	MontoMaximo      float64   `json:"monto_maximo" gorm:"type:numeric(15,2)"`
	PlazoMaximoMeses int       `json:"plazo_maximo_meses"`
	Activa           bool      `json:"activa" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (LineaCredito) TableName() string { return "lineas_credito" }
