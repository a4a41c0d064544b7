package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"gorm.io/gorm"
)

// Errores de negocio que los controladores traducen a códigos HTTP.
var (
	ErrSolicitudNoEncontrada = errors.New("solicitud no encontrada")
	ErrAccesoDenegado        = errors.New("no tiene permisos sobre esta solicitud")
)

// ValidacionError es un error de validación de campos (HTTP 400).
type ValidacionError struct {
	Mensaje string
}

func (e *ValidacionError) Error() string { return e.Mensaje }

func nuevaValidacion(formato string, args ...interface{}) error {
	return &ValidacionError{Mensaje: fmt.Sprintf(formato, args...)}
}

type SolicitudService struct {
	db      *gorm.DB
	numeros *NumeroSolicitudService
}

// NewSolicitudService creates a new instance of SolicitudService
func NewSolicitudService(db *gorm.DB, numeros *NumeroSolicitudService) *SolicitudService {
	return &SolicitudService{db: db, numeros: numeros}
}

// CrearSolicitud radica una nueva solicitud de crédito en estado POSTULADO y
// registra la primera entrada del timeline.
func (s *SolicitudService) CrearSolicitud(dto *dtos.CrearSolicitudDTO, ownerUsername string) (*models.SolicitudCredito, error) {
	if ownerUsername == "" {
		return nil, nuevaValidacion("el usuario propietario es obligatorio")
	}
	if dto.ValorSolicitud < 0 {
		return nil, nuevaValidacion("el valor de la solicitud no puede ser negativo")
	}
	if dto.PlazoMeses < 1 || dto.PlazoMeses > 360 {
		return nil, nuevaValidacion("el plazo debe estar entre 1 y 360 meses")
	}
	if dto.Solicitante == nil || strings.TrimSpace(dto.Solicitante.NumeroDocumento) == "" {
		return nil, nuevaValidacion("los datos del solicitante son obligatorios")
	}

	numero := strings.TrimSpace(dto.NumeroSolicitud)
	if numero == "" {
		if strings.TrimSpace(dto.LineaCredito) == "" {
			return nil, nuevaValidacion("la línea de crédito es obligatoria para generar el número de solicitud")
		}
		generado, err := s.numeros.GenerarNumeroSolicitud(dto.LineaCredito)
		if err != nil {
			return nil, err
		}
		numero = generado
	} else {
		if !ValidarFormatoNumeroSolicitud(numero) {
			return nil, nuevaValidacion("el número de solicitud no tiene un formato válido")
		}
		existe, err := s.numeros.ExisteNumeroSolicitud(numero)
		if err != nil {
			return nil, err
		}
		if existe {
			return nil, nuevaValidacion("el número de solicitud %s ya existe", numero)
		}
	}

	ahora := time.Now()
	moneda := dto.Moneda
	if moneda == "" {
		moneda = "COP"
	}

	solicitud := &models.SolicitudCredito{
		NumeroSolicitud:  numero,
		OwnerUsername:    ownerUsername,
		ValorSolicitud:   dto.ValorSolicitud,
		PlazoMeses:       dto.PlazoMeses,
		TasaInteres:      dto.TasaInteres,
		Estado:           models.EstadoPostulado,
		FechaRadicado:    &ahora,
		ProductoTipo:     dto.ProductoTipo,
		TipoCredito:      dto.TipoCredito,
		DetalleModalidad: dto.DetalleModalidad,
		LineaCredito:     dto.LineaCredito,
		Moneda:           moneda,
		HaTenidoCredito:  dto.HaTenidoCredito,
		RolEnSolicitud:   dto.RolEnSolicitud,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(solicitud).Error; err != nil {
			return err
		}

		solicitante := &models.SolicitudSolicitante{
			SolicitudID:     numero,
			TipoPersona:     dto.Solicitante.TipoPersona,
			TipoDocumento:   dto.Solicitante.TipoDocumento,
			NumeroDocumento: dto.Solicitante.NumeroDocumento,
			Nombres:         dto.Solicitante.Nombres,
			Apellidos:       dto.Solicitante.Apellidos,
			FechaNacimiento: dto.Solicitante.FechaNacimiento,
			Email:           dto.Solicitante.Email,
			Telefono:        dto.Solicitante.Telefono,
			Celular:         dto.Solicitante.Celular,
			Direccion:       dto.Solicitante.Direccion,
			Ciudad:          dto.Solicitante.Ciudad,
			Departamento:    dto.Solicitante.Departamento,
			Cargo:           dto.Solicitante.Cargo,
			Salario:         dto.Solicitante.Salario,
			NitEmpresa:      dto.Solicitante.NitEmpresa,
		}
		if err := tx.Create(solicitante).Error; err != nil {
			return err
		}

		for _, f := range dto.Firmantes {
			firmante := &models.FirmanteSolicitud{
				SolicitudID:     numero,
				Orden:           f.Orden,
				Tipo:            f.Tipo,
				Rol:             f.Rol,
				NombreCompleto:  f.NombreCompleto,
				NumeroDocumento: f.NumeroDocumento,
				Email:           f.Email,
			}
			if err := tx.Create(firmante).Error; err != nil {
				return err
			}
		}

		return s.agregarTimeline(tx, numero, models.EstadoPostulado,
			"Solicitud de crédito radicada", ownerUsername, true)
	})

	if err != nil {
		return nil, err
	}

	log.Printf("[SOLICITUDES] Solicitud %s creada por %s", numero, ownerUsername)
	return s.ObtenerSolicitud(numero)
}

// ObtenerSolicitud retorna la solicitud completa con sus relaciones.
func (s *SolicitudService) ObtenerSolicitud(numero string) (*models.SolicitudCredito, error) {
	var solicitud models.SolicitudCredito

	result := s.db.
		Preload("Solicitante").
		Preload("Documentos", "activo = ?", true).
		Preload("Firmantes", func(db *gorm.DB) *gorm.DB { return db.Order("orden") }).
		Preload("Timeline", func(db *gorm.DB) *gorm.DB { return db.Order("fecha") }).
		Preload("PdfGenerado").
		Preload("ProcesoFirmado").
		First(&solicitud, "numero_solicitud = ?", numero)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSolicitudNoEncontrada
		}
		return nil, result.Error
	}
	return &solicitud, nil
}

// ObtenerSolicitudPara aplica la política de acceso antes de retornar.
func (s *SolicitudService) ObtenerSolicitudPara(numero, username string, roles models.Roles) (*models.SolicitudCredito, error) {
	solicitud, err := s.ObtenerSolicitud(numero)
	if err != nil {
		return nil, err
	}
	if !middleware.CanAccessSolicitud(username, roles, solicitud.OwnerUsername) {
		return nil, ErrAccesoDenegado
	}
	return solicitud, nil
}

// ListarSolicitudes lista solicitudes visibles para el usuario: admins y
// asesores ven todo, los demás solo las propias.
func (s *SolicitudService) ListarSolicitudes(username string, roles models.Roles, estado string) ([]models.SolicitudCredito, error) {
	var solicitudes []models.SolicitudCredito

	query := s.db.Preload("Solicitante").Preload("PdfGenerado").Order("created_at DESC")
	if !roles.IsAdmin() && !roles.IsAdviser() {
		query = query.Where("owner_username = ?", username)
	}
	if estado != "" && estado != "@" {
		query = query.Where("estado = ?", estado)
	}

	result := query.Find(&solicitudes)
	return solicitudes, result.Error
}

// ListarSolicitudesPaginado lista con límite y desplazamiento; estado "@"
// significa todos los estados.
func (s *SolicitudService) ListarSolicitudesPaginado(username string, roles models.Roles, limit, offset int, estado string) ([]models.SolicitudCredito, int64, error) {
	var solicitudes []models.SolicitudCredito
	var total int64

	query := s.db.Model(&models.SolicitudCredito{})
	if !roles.IsAdmin() && !roles.IsAdviser() {
		query = query.Where("owner_username = ?", username)
	}
	if estado != "" && estado != "@" {
		query = query.Where("estado = ?", estado)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.
		Preload("Solicitante").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&solicitudes)

	return solicitudes, total, result.Error
}

// ActualizarSolicitud aplica una actualización parcial de campos permitidos.
func (s *SolicitudService) ActualizarSolicitud(numero string, dto *dtos.ActualizarSolicitudDTO, username string, roles models.Roles) (*models.SolicitudCredito, error) {
	solicitud, err := s.ObtenerSolicitudPara(numero, username, roles)
	if err != nil {
		return nil, err
	}

	cambios := map[string]interface{}{}
	if dto.ValorSolicitud != nil {
		if *dto.ValorSolicitud < 0 {
			return nil, nuevaValidacion("el valor de la solicitud no puede ser negativo")
		}
		cambios["valor_solicitud"] = *dto.ValorSolicitud
	}
	if dto.MontoAprobado != nil {
		// Solo asesores y administradores aprueban montos
		if !roles.IsAdmin() && !roles.IsAdviser() {
			return nil, ErrAccesoDenegado
		}
		cambios["monto_aprobado"] = *dto.MontoAprobado
	}
	if dto.PlazoMeses != nil {
		if *dto.PlazoMeses < 1 || *dto.PlazoMeses > 360 {
			return nil, nuevaValidacion("el plazo debe estar entre 1 y 360 meses")
		}
		cambios["plazo_meses"] = *dto.PlazoMeses
	}
	if dto.TasaInteres != nil {
		cambios["tasa_interes"] = *dto.TasaInteres
	}
	if dto.CuotaMensual != nil {
		cambios["cuota_mensual"] = *dto.CuotaMensual
	}
	if dto.DetalleModalidad != nil {
		cambios["detalle_modalidad"] = *dto.DetalleModalidad
	}
	if dto.TipoCredito != nil {
		cambios["tipo_credito"] = *dto.TipoCredito
	}
	if dto.ProductoTipo != nil {
		cambios["producto_tipo"] = *dto.ProductoTipo
	}
	if dto.Moneda != nil {
		cambios["moneda"] = *dto.Moneda
	}
	if dto.HaTenidoCredito != nil {
		cambios["ha_tenido_credito"] = *dto.HaTenidoCredito
	}

	if len(cambios) == 0 {
		return solicitud, nil
	}

	if err := s.db.Model(solicitud).Updates(cambios).Error; err != nil {
		return nil, err
	}
	return s.ObtenerSolicitud(numero)
}

// EliminarSolicitud no borra la fila: marca la solicitud como DESISTE.
func (s *SolicitudService) EliminarSolicitud(numero, username string, roles models.Roles) error {
	if _, err := s.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return err
	}
	return s.CambiarEstado(numero, models.EstadoDesiste,
		"El solicitante desiste de la solicitud", username, false)
}

// CambiarEstado mueve la solicitud a un nuevo estado validando la tabla de
// transiciones y agrega la entrada correspondiente al timeline.
func (s *SolicitudService) CambiarEstado(numero string, nuevoEstado models.EstadoSolicitud, detalle, usuario string, automatico bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var solicitud models.SolicitudCredito
		if err := tx.First(&solicitud, "numero_solicitud = ?", numero).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSolicitudNoEncontrada
			}
			return err
		}

		if solicitud.Estado == nuevoEstado {
			return nil
		}

		anterior := solicitud.Estado
		if err := models.ValidarTransicion(anterior, nuevoEstado); err != nil {
			return err
		}

		if err := tx.Model(&solicitud).Update("estado", nuevoEstado).Error; err != nil {
			return err
		}

		if detalle == "" {
			if info, ok := nuevoEstado.Info(); ok {
				detalle = info.Descripcion
			}
		}

		log.Printf("[SOLICITUDES] Solicitud %s: %s -> %s", numero, anterior, nuevoEstado)
		return s.agregarTimeline(tx, numero, nuevoEstado, detalle, usuario, automatico)
	})
}

// FinalizarProceso envía la solicitud firmada a aprobación.
func (s *SolicitudService) FinalizarProceso(numero, username string, roles models.Roles) error {
	if _, err := s.ObtenerSolicitudPara(numero, username, roles); err != nil {
		return err
	}
	return s.CambiarEstado(numero, models.EstadoEnviadoPendienteAprobacion,
		"Solicitud enviada para aprobación", username, false)
}

// BuscarSolicitudes es la búsqueda avanzada con filtros combinables.
func (s *SolicitudService) BuscarSolicitudes(filtro *dtos.BuscarSolicitudesDTO, username string, roles models.Roles) ([]models.SolicitudCredito, error) {
	var solicitudes []models.SolicitudCredito

	query := s.db.Preload("Solicitante").Order("created_at DESC")

	if !roles.IsAdmin() && !roles.IsAdviser() {
		query = query.Where("owner_username = ?", username)
	} else if filtro.OwnerUsername != "" {
		query = query.Where("owner_username = ?", filtro.OwnerUsername)
	}

	if filtro.Estado != "" {
		query = query.Where("estado = ?", filtro.Estado)
	}
	if filtro.FechaDesde != nil {
		query = query.Where("fecha_radicado >= ?", filtro.FechaDesde)
	}
	if filtro.FechaHasta != nil {
		query = query.Where("fecha_radicado <= ?", filtro.FechaHasta)
	}
	if filtro.ValorMinimo != nil {
		query = query.Where("valor_solicitud >= ?", *filtro.ValorMinimo)
	}
	if filtro.ValorMaximo != nil {
		query = query.Where("valor_solicitud <= ?", *filtro.ValorMaximo)
	}
	if filtro.Texto != "" {
		texto := "%" + strings.ToLower(filtro.Texto) + "%"
		query = query.Where(
			"LOWER(numero_solicitud) LIKE ? OR LOWER(detalle_modalidad) LIKE ? OR LOWER(owner_username) LIKE ?",
			texto, texto, texto)
	}
	if filtro.Limit > 0 {
		query = query.Limit(filtro.Limit).Offset(filtro.Offset)
	}

	result := query.Find(&solicitudes)
	return solicitudes, result.Error
}

// ContarPorEstado retorna el conteo de solicitudes agrupado por estado.
func (s *SolicitudService) ContarPorEstado() (map[string]int64, error) {
	type fila struct {
		Estado string
		Total  int64
	}
	var filas []fila

	err := s.db.Model(&models.SolicitudCredito{}).
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

// Estadisticas retorna totales generales para el tablero administrativo.
func (s *SolicitudService) Estadisticas() (map[string]interface{}, error) {
	porEstado, err := s.ContarPorEstado()
	if err != nil {
		return nil, err
	}

	var total int64
	if err := s.db.Model(&models.SolicitudCredito{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var valorTotal float64
	if err := s.db.Model(&models.SolicitudCredito{}).
		Select("COALESCE(SUM(valor_solicitud), 0)").
		Scan(&valorTotal).Error; err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"total":          total,
		"por_estado":     porEstado,
		"valor_total":    valorTotal,
		"fecha_consulta": time.Now(),
	}, nil
}

// agregarTimeline inserta una entrada en el historial; nunca se modifica ni
// elimina una entrada existente.
func (s *SolicitudService) agregarTimeline(tx *gorm.DB, solicitudID string, estado models.EstadoSolicitud, detalle, usuario string, automatico bool) error {
	entrada := &models.SolicitudTimeline{
		SolicitudID:     solicitudID,
		EstadoCodigo:    string(estado),
		Detalle:         detalle,
		UsuarioUsername: usuario,
		Automatico:      automatico,
		Fecha:           time.Now(),
	}
	return tx.Create(entrada).Error
}

// AgregarTimeline registra un evento en el historial fuera de un cambio de
// estado (por ejemplo carga de documentos).
func (s *SolicitudService) AgregarTimeline(solicitudID string, estado models.EstadoSolicitud, detalle, usuario string, automatico bool) error {
	return s.agregarTimeline(s.db, solicitudID, estado, detalle, usuario, automatico)
}
