package services

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"gorm.io/gorm"
)

var ErrPdfNoGenerado = errors.New("la solicitud no tiene un PDF generado")

type SolicitudPdfService struct {
	db          *gorm.DB
	solicitudes *SolicitudService
	generador   *GeneradorPdfService
	outputDir   string
}

// NewSolicitudPdfService creates a new instance of SolicitudPdfService
func NewSolicitudPdfService(db *gorm.DB, solicitudes *SolicitudService, generador *GeneradorPdfService, outputDir string) *SolicitudPdfService {
	if outputDir == "" {
		outputDir = "storage/pdfs"
	}
	return &SolicitudPdfService{
		db:          db,
		solicitudes: solicitudes,
		generador:   generador,
		outputDir:   outputDir,
	}
}

// GenerarPdfSolicitud invoca el renderizador externo, registra los metadatos
// del documento y avanza la solicitud a ENVIADO_VALIDACION. Si el
// renderizador falla, no se muta ningún estado.
func (s *SolicitudPdfService) GenerarPdfSolicitud(ctx context.Context, numero, username string, roles models.Roles, incluirConvenio, incluirFirmantes bool) (*models.PdfGenerado, error) {
	solicitud, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles)
	if err != nil {
		return nil, err
	}

	if solicitud.Estado.IsFinal() {
		return nil, nuevaValidacion("la solicitud %s ya está en un estado final", numero)
	}

	data, err := s.generador.GenerarPdfCreditos(ctx, &GenerarPdfRequest{
		SolicitudID:      numero,
		IncluirConvenio:  incluirConvenio,
		IncluirFirmantes: incluirFirmantes,
		OutputDir:        filepath.Join(s.outputDir, numero),
	})
	if err != nil {
		log.Printf("[SOLICITUD_PDF] Error generando PDF de %s: %v", numero, err)
		return nil, err
	}

	pdf := &models.PdfGenerado{
		SolicitudID:      numero,
		Path:             data.Path,
		Filename:         data.Filename,
		TamanoBytes:      data.Tamano,
		IncluyeConvenio:  incluirConvenio,
		IncluyeFirmantes: incluirFirmantes,
		GeneradoEn:       time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Regenerar reemplaza los metadatos anteriores
		if err := tx.Where("solicitud_id = ?", numero).Delete(&models.PdfGenerado{}).Error; err != nil {
			return err
		}
		return tx.Create(pdf).Error
	})
	if err != nil {
		return nil, err
	}

	if solicitud.Estado != models.EstadoEnviadoValidacion {
		if err := s.solicitudes.CambiarEstado(numero, models.EstadoEnviadoValidacion,
			"PDF de la solicitud generado y enviado a validación", username, true); err != nil {
			// El PDF quedó registrado; la transición inválida se reporta al llamador.
			return nil, err
		}
	}

	return pdf, nil
}

// EstadoPdf retorna los metadatos del PDF si existe.
func (s *SolicitudPdfService) EstadoPdf(numero, username string, roles models.Roles) (*models.PdfGenerado, error) {
	if _, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return nil, err
	}

	var pdf models.PdfGenerado
	if err := s.db.First(&pdf, "solicitud_id = ?", numero).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPdfNoGenerado
		}
		return nil, err
	}
	return &pdf, nil
}

// RutaPdf retorna la ruta en disco del PDF generado para descarga.
func (s *SolicitudPdfService) RutaPdf(numero, username string, roles models.Roles) (string, string, error) {
	pdf, err := s.EstadoPdf(numero, username, roles)
	if err != nil {
		return "", "", err
	}
	return pdf.Path, pdf.Filename, nil
}
