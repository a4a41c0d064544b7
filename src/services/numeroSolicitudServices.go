package services

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var numeroSolicitudRe = regexp.MustCompile(`^(\d{6})-(\d{6})-(\d+)$`)

// NumeroSolicitudParsed son los componentes de un número de solicitud.
type NumeroSolicitudParsed struct {
	Secuencia    int    `json:"secuencia"`
	Vigencia     int    `json:"vigencia"`
	LineaCredito string `json:"linea_credito"`
}

type NumeroSolicitudService struct {
	db *gorm.DB
	// now permite fijar el reloj en pruebas
	now func() time.Time
}

// NewNumeroSolicitudService creates a new instance of NumeroSolicitudService
func NewNumeroSolicitudService(db *gorm.DB) *NumeroSolicitudService {
	return &NumeroSolicitudService{db: db, now: time.Now}
}

// GenerarNumeroSolicitud genera el número consecutivo para una línea de
// crédito en la vigencia actual.
//
// Formato: {secuencia:06d}-{vigencia}-{linea_credito}
// Ejemplo: 000001-202501-03
func (s *NumeroSolicitudService) GenerarNumeroSolicitud(lineaCredito string) (string, error) {
	if strings.TrimSpace(lineaCredito) == "" {
		return "", errors.New("la línea de crédito es obligatoria")
	}

	ahora := s.now()
	vigencia, _ := strconv.Atoi(ahora.Format("200601"))

	secuencia, err := s.siguienteSecuencia(lineaCredito, vigencia)
	if err != nil {
		// La restricción única puede rechazar inserciones concurrentes para
		// la misma (línea, vigencia); un reintento resuelve el conflicto.
		secuencia, err = s.siguienteSecuencia(lineaCredito, vigencia)
		if err != nil {
			return "", err
		}
	}

	numero := FormatearNumeroSolicitud(secuencia, vigencia, lineaCredito)
	log.Printf("[NUMERO_SOLICITUD] Número generado: %s", numero)
	return numero, nil
}

// siguienteSecuencia incrementa atómicamente la secuencia de (línea, vigencia).
func (s *NumeroSolicitudService) siguienteSecuencia(lineaCredito string, vigencia int) (int, error) {
	var secuencia int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var registro models.NumeroSolicitudSecuencia

		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("linea_credito = ? AND vigencia = ?", lineaCredito, vigencia).
			First(&registro)

		if result.Error != nil {
			if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return result.Error
			}

			secuencia = 1
			registro = models.NumeroSolicitudSecuencia{
				Radicado:         FormatearNumeroSolicitud(secuencia, vigencia, lineaCredito),
				NumericSecuencia: secuencia,
				LineaCredito:     lineaCredito,
				Vigencia:         vigencia,
			}
			return tx.Create(&registro).Error
		}

		secuencia = registro.NumericSecuencia + 1
		return tx.Model(&registro).
			Updates(map[string]interface{}{
				"numeric_secuencia": secuencia,
				"radicado":          FormatearNumeroSolicitud(secuencia, vigencia, lineaCredito),
			}).Error
	})

	if err != nil {
		return 0, err
	}
	return secuencia, nil
}

// ExisteNumeroSolicitud verifica si el número ya está usado por una solicitud.
func (s *NumeroSolicitudService) ExisteNumeroSolicitud(numero string) (bool, error) {
	var count int64
	err := s.db.Model(&models.SolicitudCredito{}).
		Where("numero_solicitud = ?", numero).
		Count(&count).Error
	return count > 0, err
}

// FormatearNumeroSolicitud arma el número a partir de sus componentes.
func FormatearNumeroSolicitud(secuencia, vigencia int, lineaCredito string) string {
	return fmt.Sprintf("%06d-%d-%s", secuencia, vigencia, lineaCredito)
}

// ParseNumeroSolicitud descompone un número de solicitud; nil si es inválido.
func ParseNumeroSolicitud(numero string) *NumeroSolicitudParsed {
	matches := numeroSolicitudRe.FindStringSubmatch(numero)
	if matches == nil {
		return nil
	}

	secuencia, _ := strconv.Atoi(matches[1])
	vigencia, _ := strconv.Atoi(matches[2])

	return &NumeroSolicitudParsed{
		Secuencia:    secuencia,
		Vigencia:     vigencia,
		LineaCredito: matches[3],
	}
}

// ValidarFormatoNumeroSolicitud valida formato y rangos del número.
func ValidarFormatoNumeroSolicitud(numero string) bool {
	parsed := ParseNumeroSolicitud(numero)
	if parsed == nil {
		return false
	}
	if parsed.Secuencia < 1 || parsed.Secuencia > 999999 {
		return false
	}
	anio := parsed.Vigencia / 100
	mes := parsed.Vigencia % 100
	if anio < 2020 || anio > 2099 {
		return false
	}
	if mes < 1 || mes > 12 {
		return false
	}
	return parsed.LineaCredito != ""
}
