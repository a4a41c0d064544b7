package services

import (
	"context"
	"errors"
	"log"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrPostulacionNoEncontrada = errors.New("postulación no encontrada")

// PostulacionService maneja la etapa preliminar: la postulación valida la
// elegibilidad por convenio antes de permitir la solicitud formal.
type PostulacionService struct {
	db         *gorm.DB
	validacion *ConvenioValidationService
}

// NewPostulacionService creates a new instance of PostulacionService
func NewPostulacionService(db *gorm.DB, validacion *ConvenioValidationService) *PostulacionService {
	return &PostulacionService{db: db, validacion: validacion}
}

// CrearPostulacion valida la elegibilidad del trabajador y crea la
// postulación en estado POSTULADO.
func (s *PostulacionService) CrearPostulacion(ctx context.Context, dto *dtos.CrearPostulacionDTO, username string) (*models.Postulacion, error) {
	if dto.NitEmpresa == "" || dto.CedulaTrabajador == "" {
		return nil, nuevaValidacion("el NIT de la empresa y la cédula del trabajador son obligatorios")
	}

	resultado, err := s.validacion.ValidarConvenioTrabajador(ctx, dto.NitEmpresa, dto.CedulaTrabajador)
	if err != nil {
		return nil, err
	}

	postulacion := &models.Postulacion{
		PostulacionUUID:  uuid.NewString(),
		Username:         username,
		NitEmpresa:       dto.NitEmpresa,
		CedulaTrabajador: dto.CedulaTrabajador,
		LineaCredito:     dto.LineaCredito,
		DetalleModalidad: dto.DetalleModalidad,
		ValorEstimado:    dto.ValorEstimado,
		PlazoMeses:       dto.PlazoMeses,
		Estado:           models.PostulacionPostulado,
		Observaciones:    resultado.Mensaje,
	}

	if err := s.db.Create(postulacion).Error; err != nil {
		return nil, err
	}

	log.Printf("[POSTULACIONES] Postulación %s creada por %s (NIT %s)",
		postulacion.PostulacionUUID, username, dto.NitEmpresa)
	return postulacion, nil
}

// ObtenerPostulacion retorna una postulación aplicando la política de acceso.
func (s *PostulacionService) ObtenerPostulacion(postulacionUUID, username string, roles models.Roles) (*models.Postulacion, error) {
	var postulacion models.Postulacion
	if err := s.db.First(&postulacion, "postulacion_uuid = ?", postulacionUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostulacionNoEncontrada
		}
		return nil, err
	}
	if !middleware.CanAccessSolicitud(username, roles, postulacion.Username) {
		return nil, ErrAccesoDenegado
	}
	return &postulacion, nil
}

// ListarPostulaciones lista las postulaciones visibles para el usuario.
func (s *PostulacionService) ListarPostulaciones(username string, roles models.Roles, estado string) ([]models.Postulacion, error) {
	var postulaciones []models.Postulacion

	query := s.db.Order("created_at DESC")
	if !roles.IsAdmin() && !roles.IsAdviser() {
		query = query.Where("username = ?", username)
	}
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	result := query.Find(&postulaciones)
	return postulaciones, result.Error
}

// ActualizarEstado mueve la postulación validando su tabla de transiciones.
func (s *PostulacionService) ActualizarEstado(postulacionUUID string, nuevoEstado models.EstadoPostulacion, observaciones, username string, roles models.Roles) (*models.Postulacion, error) {
	postulacion, err := s.ObtenerPostulacion(postulacionUUID, username, roles)
	if err != nil {
		return nil, err
	}

	if postulacion.Estado == nuevoEstado {
		return postulacion, nil
	}
	if !postulacion.Estado.TransitionAllowed(nuevoEstado) {
		return nil, nuevaValidacion("transición de postulación no permitida: %s -> %s",
			postulacion.Estado, nuevoEstado)
	}

	cambios := map[string]interface{}{"estado": nuevoEstado}
	if observaciones != "" {
		cambios["observaciones"] = observaciones
	}
	if err := s.db.Model(postulacion).Updates(cambios).Error; err != nil {
		return nil, err
	}

	log.Printf("[POSTULACIONES] Postulación %s ahora en estado %s", postulacionUUID, nuevoEstado)
	return postulacion, nil
}

// EliminarPostulacion cancela una postulación no terminal.
func (s *PostulacionService) EliminarPostulacion(postulacionUUID, username string, roles models.Roles) error {
	postulacion, err := s.ObtenerPostulacion(postulacionUUID, username, roles)
	if err != nil {
		return err
	}
	if postulacion.Estado.IsFinal() {
		return nuevaValidacion("la postulación ya está en estado final: %s", postulacion.Estado)
	}

	_, err = s.ActualizarEstado(postulacionUUID, models.PostulacionCancelado,
		"Postulación cancelada por el usuario", username, roles)
	return err
}

// BuscarPostulaciones filtra por empresa, cédula o línea de crédito.
func (s *PostulacionService) BuscarPostulaciones(nitEmpresa, cedula, linea, username string, roles models.Roles) ([]models.Postulacion, error) {
	var postulaciones []models.Postulacion

	query := s.db.Order("created_at DESC")
	if !roles.IsAdmin() && !roles.IsAdviser() {
		query = query.Where("username = ?", username)
	}
	if nitEmpresa != "" {
		query = query.Where("nit_empresa = ?", nitEmpresa)
	}
	if cedula != "" {
		query = query.Where("cedula_trabajador = ?", cedula)
	}
	if linea != "" {
		query = query.Where("linea_credito = ?", linea)
	}

	result := query.Find(&postulaciones)
	return postulaciones, result.Error
}

// Estadisticas retorna el conteo de postulaciones por estado.
func (s *PostulacionService) Estadisticas() (map[string]int64, error) {
	type fila struct {
		Estado string
		Total  int64
	}
	var filas []fila

	err := s.db.Model(&models.Postulacion{}).
		Select("estado, COUNT(*) as total").
		Group("estado").
		Scan(&filas).Error
	if err != nil {
		return nil, err
	}

	conteo := make(map[string]int64, len(filas))
	for _, f := range filas {
		conteo[f.Estado] = f.Total
	}
	return conteo, nil
}

// ConvertirASolicitud construye el DTO inicial de solicitud a partir de una
// postulación aprobada.
func (s *PostulacionService) ConvertirASolicitud(postulacionUUID, username string, roles models.Roles) (*dtos.CrearSolicitudDTO, error) {
	postulacion, err := s.ObtenerPostulacion(postulacionUUID, username, roles)
	if err != nil {
		return nil, err
	}
	if postulacion.Estado != models.PostulacionAprobado {
		return nil, nuevaValidacion("solo las postulaciones aprobadas pueden convertirse en solicitud (estado actual: %s)", postulacion.Estado)
	}

	return &dtos.CrearSolicitudDTO{
		ValorSolicitud:   postulacion.ValorEstimado,
		PlazoMeses:       postulacion.PlazoMeses,
		LineaCredito:     postulacion.LineaCredito,
		DetalleModalidad: postulacion.DetalleModalidad,
		Solicitante: &dtos.SolicitanteDTO{
			NumeroDocumento: postulacion.CedulaTrabajador,
			NitEmpresa:      postulacion.NitEmpresa,
		},
	}, nil
}
