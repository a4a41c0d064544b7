package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"gorm.io/gorm"
)

var (
	ErrProcesoFirmaNoIniciado = errors.New("la solicitud no tiene un proceso de firmado iniciado")
	ErrSinFirmantes           = errors.New("la solicitud no tiene firmantes registrados")
	ErrWebhookTokenInvalido   = errors.New("token de webhook inválido")
)

// FirmaDigitalService orquesta el proceso de firma digital contra el
// proveedor externo y mantiene la copia local del estado del proceso.
type FirmaDigitalService struct {
	db           *gorm.DB
	solicitudes  *SolicitudService
	firmaPlus    *FirmaPlusService
	webhookToken string
	firmadosDir  string
}

// NewFirmaDigitalService creates a new instance of FirmaDigitalService
func NewFirmaDigitalService(db *gorm.DB, solicitudes *SolicitudService, firmaPlus *FirmaPlusService, webhookToken, firmadosDir string) *FirmaDigitalService {
	if firmadosDir == "" {
		firmadosDir = "storage/firmados"
	}
	return &FirmaDigitalService{
		db:           db,
		solicitudes:  solicitudes,
		firmaPlus:    firmaPlus,
		webhookToken: webhookToken,
		firmadosDir:  firmadosDir,
	}
}

// IniciarProcesoFirmado despacha el PDF al proveedor de firma. Requiere que
// exista un PDF generado y al menos un firmante.
func (s *FirmaDigitalService) IniciarProcesoFirmado(ctx context.Context, numero, username string, roles models.Roles) (*models.ProcesoFirmado, error) {
	solicitud, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles)
	if err != nil {
		return nil, err
	}

	if solicitud.PdfGenerado == nil {
		return nil, ErrPdfNoGenerado
	}
	if len(solicitud.Firmantes) == 0 {
		return nil, ErrSinFirmantes
	}

	firmantes := make([]FirmantePlus, 0, len(solicitud.Firmantes))
	for _, f := range solicitud.Firmantes {
		firmantes = append(firmantes, FirmantePlus{
			Orden:           f.Orden,
			NombreCompleto:  f.NombreCompleto,
			NumeroDocumento: f.NumeroDocumento,
			Email:           f.Email,
			Rol:             f.Rol,
		})
	}

	resultado, err := s.firmaPlus.EnviarDocumentoParaFirma(ctx, solicitud.PdfGenerado.Path, firmantes, map[string]interface{}{
		"solicitud_id":   numero,
		"owner_username": solicitud.OwnerUsername,
	})
	if err != nil {
		return nil, err
	}

	proceso := &models.ProcesoFirmado{
		SolicitudID:         numero,
		TransaccionID:       resultado.TransaccionID,
		Estado:              models.ProcesoFirmaPendiente,
		FirmantesPendientes: len(firmantes),
		FechaEnvio:          time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Reenvíos reemplazan el proceso anterior
		if err := tx.Where("solicitud_id = ?", numero).Delete(&models.ProcesoFirmado{}).Error; err != nil {
			return err
		}
		if err := tx.Create(proceso).Error; err != nil {
			return err
		}

		for _, f := range solicitud.Firmantes {
			url, ok := resultado.URLFirmantes[f.NumeroDocumento]
			if !ok {
				continue
			}
			if err := tx.Model(&models.FirmanteSolicitud{}).
				Where("id = ?", f.ID).
				Update("url_firma", url).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.solicitudes.CambiarEstado(numero, models.EstadoPendienteFirmado,
		fmt.Sprintf("Documento enviado a firma digital (transacción %s)", resultado.TransaccionID),
		username, true); err != nil {
		return nil, err
	}

	return proceso, nil
}

// ConsultarEstadoFirmado consulta al proveedor y actualiza la copia local si
// el estado reportado difiere (caché de lectura, el proveedor es la fuente).
func (s *FirmaDigitalService) ConsultarEstadoFirmado(ctx context.Context, numero, username string, roles models.Roles) (*models.ProcesoFirmado, error) {
	if _, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return nil, err
	}

	var proceso models.ProcesoFirmado
	if err := s.db.First(&proceso, "solicitud_id = ?", numero).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcesoFirmaNoIniciado
		}
		return nil, err
	}

	estado, err := s.firmaPlus.ConsultarEstadoDocumento(ctx, proceso.TransaccionID)
	if err != nil {
		return nil, err
	}

	if estado.Estado != proceso.Estado ||
		estado.FirmantesCompletados != proceso.FirmantesCompletados ||
		estado.FirmantesPendientes != proceso.FirmantesPendientes {
		cambios := map[string]interface{}{
			"estado":                estado.Estado,
			"firmantes_completados": estado.FirmantesCompletados,
			"firmantes_pendientes":  estado.FirmantesPendientes,
		}
		if err := s.db.Model(&proceso).Updates(cambios).Error; err != nil {
			return nil, err
		}
	}

	return &proceso, nil
}

// ProcesarWebhook procesa el callback del proveedor. Si el estado es FIRMADO
// se intenta descargar el documento firmado, pero un fallo en la descarga no
// bloquea la actualización: la señal de firma completada nunca se pierde.
func (s *FirmaDigitalService) ProcesarWebhook(ctx context.Context, payload *dtos.WebhookFirmaDTO) error {
	if s.webhookToken != "" && payload.Token != s.webhookToken {
		return ErrWebhookTokenInvalido
	}
	if payload.TransaccionID == "" || payload.SolicitudID == "" || payload.Estado == "" {
		return nuevaValidacion("el webhook requiere transaccion_id, solicitud_id y estado")
	}

	var proceso models.ProcesoFirmado
	if err := s.db.First(&proceso, "solicitud_id = ? AND transaccion_id = ?",
		payload.SolicitudID, payload.TransaccionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProcesoFirmaNoIniciado
		}
		return err
	}

	log.Printf("[FIRMA_DIGITAL] Webhook recibido: solicitud=%s transacción=%s estado=%s",
		payload.SolicitudID, payload.TransaccionID, payload.Estado)

	pdfDescargado := false
	rutaFirmado := ""
	if payload.Estado == models.ProcesoFirmaFirmado {
		rutaFirmado = filepath.Join(s.firmadosDir, payload.SolicitudID+"_firmado.pdf")
		if err := s.firmaPlus.DescargarDocumentoFirmado(ctx, payload.TransaccionID, rutaFirmado); err != nil {
			// La descarga se reconcilia después; el estado se actualiza igual.
			log.Printf("[FIRMA_DIGITAL] Error descargando documento firmado de %s: %v",
				payload.SolicitudID, err)
			rutaFirmado = ""
		} else {
			pdfDescargado = true
		}
	}

	cambios := map[string]interface{}{
		"estado":                payload.Estado,
		"firmantes_completados": payload.FirmantesCompletados,
		"firmantes_pendientes":  payload.FirmantesPendientes,
	}
	if payload.Estado == models.ProcesoFirmaFirmado {
		ahora := time.Now()
		cambios["fecha_completado"] = &ahora
		if rutaFirmado != "" {
			cambios["documento_firmado_path"] = rutaFirmado
		}
	}
	if err := s.db.Model(&proceso).Updates(cambios).Error; err != nil {
		return err
	}

	switch payload.Estado {
	case models.ProcesoFirmaFirmado:
		detalle := "Documento firmado por todos los firmantes"
		if !pdfDescargado {
			detalle += " (documento firmado pendiente de descarga)"
		}
		return s.solicitudes.CambiarEstado(payload.SolicitudID, models.EstadoFirmado, detalle, "", true)
	case models.ProcesoFirmaRechazado:
		return s.solicitudes.CambiarEstado(payload.SolicitudID, models.EstadoRechazado,
			"El proceso de firma fue rechazado por un firmante", "", true)
	case models.ProcesoFirmaExpirado, models.ProcesoFirmaCancelado:
		// El proceso terminó sin firma; la solicitud conserva su estado y el
		// evento queda en el historial.
		return s.solicitudes.AgregarTimeline(payload.SolicitudID, models.EstadoPendienteFirmado,
			fmt.Sprintf("Proceso de firma terminado sin completar: %s", payload.Estado), "", true)
	default:
		return s.solicitudes.AgregarTimeline(payload.SolicitudID, models.EstadoPendienteFirmado,
			fmt.Sprintf("Estado de firma actualizado a: %s", payload.Estado), "", true)
	}
}
