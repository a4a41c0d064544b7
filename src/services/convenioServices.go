package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/models"
	excelize "github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var ErrConvenioNoEncontrado = errors.New("convenio no encontrado")

var estadosConvenio = map[string]bool{
	models.ConvenioActivo:     true,
	models.ConvenioInactivo:   true,
	models.ConvenioSuspendido: true,
	models.ConvenioVencido:    true,
}

type ConvenioService struct {
	db *gorm.DB
}

// NewConvenioService creates a new instance of ConvenioService
func NewConvenioService(db *gorm.DB) *ConvenioService {
	return &ConvenioService{db: db}
}

// GetAllConvenios retrieves all EmpresaConvenio records from the database
func (s *ConvenioService) GetAllConvenios(estado string) ([]models.EmpresaConvenio, error) {
	var convenios []models.EmpresaConvenio

	query := s.db.Order("razon_social")
	if estado != "" {
		query = query.Where("estado = ?", estado)
	}

	result := query.Find(&convenios)
	return convenios, result.Error
}

// GetConvenioByID retrieves an EmpresaConvenio record by its ID
func (s *ConvenioService) GetConvenioByID(id int) (*models.EmpresaConvenio, error) {
	var convenio models.EmpresaConvenio
	if err := s.db.First(&convenio, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConvenioNoEncontrado
		}
		return nil, err
	}
	return &convenio, nil
}

// GetConvenioByNit retrieves an EmpresaConvenio record by company NIT
func (s *ConvenioService) GetConvenioByNit(nit string) (*models.EmpresaConvenio, error) {
	var convenio models.EmpresaConvenio
	if err := s.db.First(&convenio, "nit = ?", nit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConvenioNoEncontrado
		}
		return nil, err
	}
	return &convenio, nil
}

// CreateConvenio creates a new EmpresaConvenio record in the database
func (s *ConvenioService) CreateConvenio(convenio *models.EmpresaConvenio) (*models.EmpresaConvenio, error) {
	if strings.TrimSpace(convenio.Nit) == "" {
		return nil, nuevaValidacion("el NIT es obligatorio")
	}
	if strings.TrimSpace(convenio.RazonSocial) == "" {
		return nil, nuevaValidacion("la razón social es obligatoria")
	}
	if convenio.Estado == "" {
		convenio.Estado = models.ConvenioActivo
	}
	if !estadosConvenio[convenio.Estado] {
		return nil, nuevaValidacion("estado de convenio desconocido: %s", convenio.Estado)
	}

	var existente models.EmpresaConvenio
	if err := s.db.First(&existente, "nit = ?", convenio.Nit).Error; err == nil {
		return nil, nuevaValidacion("ya existe un convenio para el NIT %s", convenio.Nit)
	}

	if err := s.db.Create(convenio).Error; err != nil {
		return nil, err
	}
	return convenio, nil
}

// UpdateConvenio updates an existing EmpresaConvenio record
func (s *ConvenioService) UpdateConvenio(id int, cambios *models.EmpresaConvenio) (*models.EmpresaConvenio, error) {
	convenio, err := s.GetConvenioByID(id)
	if err != nil {
		return nil, err
	}

	if cambios.Estado != "" && !estadosConvenio[cambios.Estado] {
		return nil, nuevaValidacion("estado de convenio desconocido: %s", cambios.Estado)
	}

	// El NIT es clave de negocio y no se actualiza
	cambios.Id = convenio.Id
	cambios.Nit = convenio.Nit

	if err := s.db.Model(convenio).Updates(cambios).Error; err != nil {
		return nil, err
	}
	return s.GetConvenioByID(id)
}

// ToggleEstado cambia el estado del convenio.
func (s *ConvenioService) ToggleEstado(id int, estado string) (*models.EmpresaConvenio, error) {
	if !estadosConvenio[estado] {
		return nil, nuevaValidacion("estado de convenio desconocido: %s", estado)
	}

	convenio, err := s.GetConvenioByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(convenio).Update("estado", estado).Error; err != nil {
		return nil, err
	}
	log.Printf("[CONVENIOS] Convenio %s (%s) ahora en estado %s", convenio.Nit, convenio.RazonSocial, estado)
	return convenio, nil
}

// DeleteConvenio deletes an EmpresaConvenio record by its ID
func (s *ConvenioService) DeleteConvenio(id int) error {
	if _, err := s.GetConvenioByID(id); err != nil {
		return err
	}
	return s.db.Delete(&models.EmpresaConvenio{}, id).Error
}

var columnasExportConvenios = []string{
	"NIT", "Razón Social", "Estado", "Fecha Convenio", "Fecha Vencimiento",
	"Representante", "Documento Representante", "Teléfono", "Correo",
	"Ciudad", "Departamento", "Sector Económico", "Número Empleados",
}

// ExportarExcel genera el libro de Excel con todos los convenios.
func (s *ConvenioService) ExportarExcel() (*excelize.File, error) {
	convenios, err := s.GetAllConvenios("")
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const hoja = "Convenios"
	f.SetSheetName("Sheet1", hoja)

	for i, titulo := range columnasExportConvenios {
		celda, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(hoja, celda, titulo); err != nil {
			return nil, err
		}
	}

	formatoFecha := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}

	for fila, c := range convenios {
		valores := []interface{}{
			c.Nit, c.RazonSocial, c.Estado,
			formatoFecha(c.FechaConvenio), formatoFecha(c.FechaVencimiento),
			c.RepresentanteNombre, c.RepresentanteDocumento, c.Telefono, c.Correo,
			c.Ciudad, c.Departamento, c.SectorEconomico, c.NumeroEmpleados,
		}
		for col, valor := range valores {
			celda, _ := excelize.CoordinatesToCellName(col+1, fila+2)
			if err := f.SetCellValue(hoja, celda, valor); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ImportResultConvenios es el resumen de una importación desde Excel.
type ImportResultConvenios struct {
	Importados int      `json:"importados"`
	Errores    []string `json:"errores"`
}

// ImportarExcel carga convenios desde un libro de Excel con el mismo formato
// de la exportación. Las filas con NIT ya registrado se reportan como error y
// no detienen la importación.
func (s *ConvenioService) ImportarExcel(reader io.Reader) (*ImportResultConvenios, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nuevaValidacion("el archivo no es un libro de Excel válido")
	}
	defer f.Close()

	hoja := f.GetSheetName(0)
	filas, err := f.GetRows(hoja)
	if err != nil {
		return nil, err
	}
	if len(filas) < 2 {
		return nil, nuevaValidacion("el archivo no contiene filas de datos")
	}

	resultado := &ImportResultConvenios{}

	parseFecha := func(valor string) *time.Time {
		if valor == "" {
			return nil
		}
		t, err := time.Parse("2006-01-02", valor)
		if err != nil {
			return nil
		}
		return &t
	}

	celda := func(fila []string, i int) string {
		if i < len(fila) {
			return strings.TrimSpace(fila[i])
		}
		return ""
	}

	for i, fila := range filas[1:] {
		numFila := i + 2

		convenio := &models.EmpresaConvenio{
			Nit:                    celda(fila, 0),
			RazonSocial:            celda(fila, 1),
			Estado:                 celda(fila, 2),
			FechaConvenio:          parseFecha(celda(fila, 3)),
			FechaVencimiento:       parseFecha(celda(fila, 4)),
			RepresentanteNombre:    celda(fila, 5),
			RepresentanteDocumento: celda(fila, 6),
			Telefono:               celda(fila, 7),
			Correo:                 celda(fila, 8),
			Ciudad:                 celda(fila, 9),
			Departamento:           celda(fila, 10),
			SectorEconomico:        celda(fila, 11),
		}
		if empleados := celda(fila, 12); empleados != "" {
			if n, err := strconv.Atoi(empleados); err == nil {
				convenio.NumeroEmpleados = n
			}
		}

		if _, err := s.CreateConvenio(convenio); err != nil {
			resultado.Errores = append(resultado.Errores, fmt.Sprintf("fila %d: %v", numFila, err))
			continue
		}
		resultado.Importados++
	}

	log.Printf("[CONVENIOS] Importación: %d convenios, %d errores", resultado.Importados, len(resultado.Errores))
	return resultado, nil
}
