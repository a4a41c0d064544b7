package controllers

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type PdfController struct {
	service   *services.SolicitudPdfService
	generador *services.GeneradorPdfService
}

func NewPdfController(service *services.SolicitudPdfService, generador *services.GeneradorPdfService) *PdfController {
	return &PdfController{service: service, generador: generador}
}

func (pc *PdfController) GenerarPdf(c *gin.Context) {
	var dto dtos.GenerarPdfDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&dto); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	// Ambas opciones van activas salvo que el cliente diga lo contrario.
	incluirConvenio := dto.IncluirConvenio == nil || *dto.IncluirConvenio
	incluirFirmantes := dto.IncluirFirmantes == nil || *dto.IncluirFirmantes

	pdf, err := pc.service.GenerarPdfSolicitud(c.Request.Context(),
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c),
		incluirConvenio, incluirFirmantes)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, pdf, "PDF generado exitosamente")
}

func (pc *PdfController) EstadoPdf(c *gin.Context) {
	pdf, err := pc.service.EstadoPdf(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, pdf, "")
}

func (pc *PdfController) DescargarPdf(c *gin.Context) {
	ruta, filename, err := pc.service.RutaPdf(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/pdf")
	c.File(ruta)
}

// SaludGenerador consulta la disponibilidad del servicio renderizador.
func (pc *PdfController) SaludGenerador(c *gin.Context) {
	disponible := pc.generador.VerificarSalud(c.Request.Context())
	status := http.StatusOK
	if !disponible {
		status = http.StatusServiceUnavailable
	}
	utils.Success(c, status, gin.H{"disponible": disponible}, "")
}
