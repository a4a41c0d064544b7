package controllers

import (
	"io"
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type DocumentoController struct {
	service *services.DocumentoService
}

func NewDocumentoController(service *services.DocumentoService) *DocumentoController {
	return &DocumentoController{service: service}
}

func (dc *DocumentoController) ListarDocumentosRequeridos(c *gin.Context) {
	requeridos, err := dc.service.ListarDocumentosRequeridos(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, requeridos, "")
}

func (dc *DocumentoController) ListarDocumentos(c *gin.Context) {
	documentos, err := dc.service.ListarDocumentos(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, documentos, "")
}

func (dc *DocumentoController) CargarDocumento(c *gin.Context) {
	file, err := c.FormFile("archivo")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "El archivo es obligatorio")
		return
	}
	documentoRequeridoID := c.PostForm("documento_requerido_id")

	documento, err := dc.service.AgregarDocumento(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c),
		documentoRequeridoID, file)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, documento, "Documento cargado exitosamente")
}

func (dc *DocumentoController) EliminarDocumento(c *gin.Context) {
	err := dc.service.EliminarDocumento(
		c.Param("id"), c.Param("documentoId"),
		middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "Documento eliminado exitosamente")
}

// DescargarDocumento sirve el contenido, sea local o alojado en Google Drive.
func (dc *DocumentoController) DescargarDocumento(c *gin.Context) {
	reader, documento, err := dc.service.AbrirDocumento(
		c.Param("id"), c.Param("documentoId"),
		middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	defer reader.Close()

	contentType := documento.TipoMime
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+documento.NombreOriginal+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}

func (dc *DocumentoController) EstadisticasDocumentos(c *gin.Context) {
	stats, err := dc.service.EstadisticasDocumentos(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, stats, "")
}
