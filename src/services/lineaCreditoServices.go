package services

import (
	"errors"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"gorm.io/gorm"
)

var ErrLineaNoEncontrada = errors.New("línea de crédito no encontrada")

type LineaCreditoService struct {
	db *gorm.DB
}

// NewLineaCreditoService creates a new instance of LineaCreditoService
func NewLineaCreditoService(db *gorm.DB) *LineaCreditoService {
	return &LineaCreditoService{db: db}
}

// GetAllLineas retorna el catálogo, opcionalmente solo las líneas activas.
func (s *LineaCreditoService) GetAllLineas(soloActivas bool) ([]models.LineaCredito, error) {
	var lineas []models.LineaCredito
	query := s.db.Order("codigo ASC")
	if soloActivas {
		query = query.Where("activa = ?", true)
	}
	result := query.Find(&lineas)
	return lineas, result.Error
}

func (s *LineaCreditoService) GetLineaByCodigo(codigo string) (*models.LineaCredito, error) {
	var linea models.LineaCredito
	if err := s.db.First(&linea, "codigo = ?", codigo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLineaNoEncontrada
		}
		return nil, err
	}
	return &linea, nil
}

func (s *LineaCreditoService) CreateLinea(linea *models.LineaCredito) (*models.LineaCredito, error) {
	if linea.Codigo == "" || linea.Nombre == "" {
		return nil, nuevaValidacion("el código y el nombre de la línea son obligatorios")
	}
	if err := s.db.Create(linea).Error; err != nil {
		return nil, err
	}
	return linea, nil
}

func (s *LineaCreditoService) UpdateLinea(codigo string, cambios *models.LineaCredito) (*models.LineaCredito, error) {
	linea, err := s.GetLineaByCodigo(codigo)
	if err != nil {
		return nil, err
	}

	cambios.Id = linea.Id
	cambios.Codigo = linea.Codigo
	if err := s.db.Model(linea).Updates(cambios).Error; err != nil {
		return nil, err
	}
	return linea, nil
}

func (s *LineaCreditoService) DeleteLinea(codigo string) error {
	linea, err := s.GetLineaByCodigo(codigo)
	if err != nil {
		return err
	}
	return s.db.Delete(linea).Error
}
