package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDocumentoNoEncontrado = errors.New("documento no encontrado")

// DocumentoRequerido describe un tipo de documento exigido para una solicitud.
type DocumentoRequerido struct {
	ID          string `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Tipo        string `json:"tipo"`
	Obligatorio bool   `json:"obligatorio"`
}

// documentosBase se exigen para todos los créditos.
var documentosBase = []DocumentoRequerido{
	{ID: "cedula_frente", Nombre: "Cédula de Ciudadanía - Frente", Descripcion: "Copia legible de la cédula por el frente", Tipo: "identificacion", Obligatorio: true},
	{ID: "cedula_reverso", Nombre: "Cédula de Ciudadanía - Reverso", Descripcion: "Copia legible de la cédula por el reverso", Tipo: "identificacion", Obligatorio: true},
	{ID: "recibo_servicios", Nombre: "Recibo de Servicios Públicos", Descripcion: "Recibo de servicios públicos no mayor a 3 meses", Tipo: "domicilio", Obligatorio: true},
}

var documentosVivienda = []DocumentoRequerido{
	{ID: "escritura_inmueble", Nombre: "Escritura del Inmueble", Descripcion: "Escritura pública del inmueble", Tipo: "inmueble", Obligatorio: true},
	{ID: "certificado_tradicion", Nombre: "Certificado de Tradición y Libertad", Descripcion: "Certificado de tradición y libertad actualizado", Tipo: "inmueble", Obligatorio: true},
}

var documentosEducacion = []DocumentoRequerido{
	{ID: "certificado_estudios", Nombre: "Certificado de Estudios", Descripcion: "Certificado de estudios actual", Tipo: "academico", Obligatorio: true},
	{ID: "matricula_profesional", Nombre: "Matrícula Profesional", Descripcion: "Matrícula profesional si aplica", Tipo: "profesional", Obligatorio: false},
}

var documentosLaborales = []DocumentoRequerido{
	{ID: "certificado_laboral", Nombre: "Certificado Laboral", Descripcion: "Certificado laboral actual", Tipo: "laboral", Obligatorio: true},
	{ID: "declaracion_renta", Nombre: "Declaración de Renta", Descripcion: "Declaración de renta del último año", Tipo: "financiero", Obligatorio: false},
}

// DocumentosRequeridosPorModalidad resuelve los documentos exigidos según el
// detalle de modalidad de la línea de crédito. La modalidad se decide por
// coincidencia de subcadena: vivienda y educación tienen conjuntos propios;
// cualquier otra modalidad usa el conjunto laboral genérico.
func DocumentosRequeridosPorModalidad(detalleModalidad string) []DocumentoRequerido {
	modalidad := strings.ToUpper(detalleModalidad)

	var especificos []DocumentoRequerido
	switch {
	case strings.Contains(modalidad, "VIVIENDA"):
		especificos = documentosVivienda
	case strings.Contains(modalidad, "EDUCACION"):
		especificos = documentosEducacion
	default:
		especificos = documentosLaborales
	}

	out := make([]DocumentoRequerido, 0, len(documentosBase)+len(especificos))
	out = append(out, documentosBase...)
	out = append(out, especificos...)
	return out
}

type DocumentoService struct {
	db          *gorm.DB
	solicitudes *SolicitudService
	storageDir  string
}

// NewDocumentoService creates a new instance of DocumentoService
func NewDocumentoService(db *gorm.DB, solicitudes *SolicitudService, storageDir string) *DocumentoService {
	if storageDir == "" {
		storageDir = "storage"
	}
	return &DocumentoService{db: db, solicitudes: solicitudes, storageDir: storageDir}
}

// ListarDocumentosRequeridos retorna los documentos exigidos para la solicitud.
func (s *DocumentoService) ListarDocumentosRequeridos(numero, username string, roles models.Roles) ([]DocumentoRequerido, error) {
	solicitud, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles)
	if err != nil {
		return nil, err
	}
	return DocumentosRequeridosPorModalidad(solicitud.DetalleModalidad), nil
}

// ListarDocumentos retorna los documentos cargados (activos) de la solicitud.
func (s *DocumentoService) ListarDocumentos(numero, username string, roles models.Roles) ([]models.SolicitudDocumento, error) {
	if _, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return nil, err
	}

	var documentos []models.SolicitudDocumento
	result := s.db.
		Where("solicitud_id = ? AND activo = ?", numero, true).
		Order("created_at").
		Find(&documentos)
	return documentos, result.Error
}

// AgregarDocumento guarda el archivo en disco bajo el directorio de la
// solicitud y registra el documento. Si ya se cargaron todos los documentos
// obligatorios, avanza la solicitud a DOCUMENTOS_CARGADOS.
func (s *DocumentoService) AgregarDocumento(numero, username string, roles models.Roles, documentoRequeridoID string, file *multipart.FileHeader) (*models.SolicitudDocumento, error) {
	solicitud, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nuevaValidacion("el archivo es obligatorio")
	}
	if documentoRequeridoID == "" {
		return nil, nuevaValidacion("el tipo de documento requerido es obligatorio")
	}

	dir := filepath.Join(s.storageDir, "solicitudes", numero)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	documentoUUID := uuid.NewString()
	destino := filepath.Join(dir, documentoUUID+filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(destino)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	documento := &models.SolicitudDocumento{
		SolicitudID:          numero,
		DocumentoUUID:        documentoUUID,
		DocumentoRequeridoID: documentoRequeridoID,
		NombreOriginal:       file.Filename,
		RutaArchivo:          destino,
		TipoMime:             file.Header.Get("Content-Type"),
		TamanoBytes:          file.Size,
		Activo:               true,
	}

	if err := s.db.Create(documento).Error; err != nil {
		return nil, err
	}

	log.Printf("[DOCUMENTOS] Documento %s (%s) cargado en solicitud %s", documentoUUID, documentoRequeridoID, numero)

	if err := s.solicitudes.AgregarTimeline(numero, solicitud.Estado,
		fmt.Sprintf("Documento cargado: %s", file.Filename), username, true); err != nil {
		return nil, err
	}

	// Con todos los obligatorios cargados la solicitud avanza sola.
	if solicitud.Estado == models.EstadoPostulado {
		completos, err := s.documentosObligatoriosCompletos(numero, solicitud.DetalleModalidad)
		if err != nil {
			log.Printf("[DOCUMENTOS] Error verificando documentos obligatorios de %s: %v", numero, err)
		} else if completos {
			if err := s.solicitudes.CambiarEstado(numero, models.EstadoDocumentosCargados,
				"Todos los documentos obligatorios fueron cargados", username, true); err != nil {
				log.Printf("[DOCUMENTOS] Error avanzando estado de %s: %v", numero, err)
			}
		}
	}

	return documento, nil
}

func (s *DocumentoService) documentosObligatoriosCompletos(numero, detalleModalidad string) (bool, error) {
	var cargados []models.SolicitudDocumento
	if err := s.db.Where("solicitud_id = ? AND activo = ?", numero, true).Find(&cargados).Error; err != nil {
		return false, err
	}

	porTipo := make(map[string]bool, len(cargados))
	for _, d := range cargados {
		porTipo[d.DocumentoRequeridoID] = true
	}

	for _, requerido := range DocumentosRequeridosPorModalidad(detalleModalidad) {
		if requerido.Obligatorio && !porTipo[requerido.ID] {
			return false, nil
		}
	}
	return true, nil
}

// EliminarDocumento desactiva el documento (borrado lógico).
func (s *DocumentoService) EliminarDocumento(numero, documentoUUID, username string, roles models.Roles) error {
	if _, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return err
	}

	var documento models.SolicitudDocumento
	if err := s.db.First(&documento, "solicitud_id = ? AND documento_uuid = ?", numero, documentoUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentoNoEncontrado
		}
		return err
	}

	if err := s.db.Model(&documento).Update("activo", false).Error; err != nil {
		return err
	}
	return s.db.Delete(&documento).Error
}

// AbrirDocumento retorna un lector del contenido del documento, ya sea desde
// disco o desde Google Drive cuando la ruta es una URL de Drive.
func (s *DocumentoService) AbrirDocumento(numero, documentoUUID, username string, roles models.Roles) (io.ReadCloser, *models.SolicitudDocumento, error) {
	if _, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return nil, nil, err
	}

	var documento models.SolicitudDocumento
	if err := s.db.First(&documento, "solicitud_id = ? AND documento_uuid = ? AND activo = ?", numero, documentoUUID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrDocumentoNoEncontrado
		}
		return nil, nil, err
	}

	if utils.IsGoogleDriveURL(documento.RutaArchivo) {
		fileID, err := utils.ExtractFileIDFromURL(documento.RutaArchivo)
		if err != nil {
			return nil, nil, err
		}
		reader, _, err := utils.DownloadFileFromGoogleDrive(fileID)
		if err != nil {
			return nil, nil, err
		}
		return reader, &documento, nil
	}

	f, err := os.Open(documento.RutaArchivo)
	if err != nil {
		return nil, nil, err
	}
	return f, &documento, nil
}

// EstadisticasDocumentos retorna el resumen de carga frente a lo requerido.
func (s *DocumentoService) EstadisticasDocumentos(numero, username string, roles models.Roles) (map[string]interface{}, error) {
	solicitud, err := s.solicitudes.ObtenerSolicitudPara(numero, username, roles)
	if err != nil {
		return nil, err
	}

	requeridos := DocumentosRequeridosPorModalidad(solicitud.DetalleModalidad)

	var cargados int64
	if err := s.db.Model(&models.SolicitudDocumento{}).
		Where("solicitud_id = ? AND activo = ?", numero, true).
		Count(&cargados).Error; err != nil {
		return nil, err
	}

	obligatorios := 0
	for _, r := range requeridos {
		if r.Obligatorio {
			obligatorios++
		}
	}

	completos, err := s.documentosObligatoriosCompletos(numero, solicitud.DetalleModalidad)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"requeridos":             len(requeridos),
		"obligatorios":           obligatorios,
		"cargados":               cargados,
		"obligatorios_completos": completos,
	}, nil
}
