package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type ConvenioController struct {
	service    *services.ConvenioService
	validacion *services.ConvenioValidationService
}

func NewConvenioController(service *services.ConvenioService, validacion *services.ConvenioValidationService) *ConvenioController {
	return &ConvenioController{service: service, validacion: validacion}
}

func (cc *ConvenioController) GetAllConvenios(c *gin.Context) {
	convenios, err := cc.service.GetAllConvenios(c.Query("estado"))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, convenios, "")
}

func (cc *ConvenioController) GetConvenioByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Formato de ID inválido")
		return
	}

	convenio, err := cc.service.GetConvenioByID(id)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, convenio, "")
}

func (cc *ConvenioController) GetConvenioByNit(c *gin.Context) {
	convenio, err := cc.service.GetConvenioByNit(c.Param("nit"))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, convenio, "")
}

func (cc *ConvenioController) CreateConvenio(c *gin.Context) {
	var convenio models.EmpresaConvenio
	if err := c.ShouldBindJSON(&convenio); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	creado, err := cc.service.CreateConvenio(&convenio)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, creado, "Convenio creado exitosamente")
}

func (cc *ConvenioController) UpdateConvenio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Formato de ID inválido")
		return
	}

	var cambios models.EmpresaConvenio
	if err := c.ShouldBindJSON(&cambios); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	convenio, err := cc.service.UpdateConvenio(id, &cambios)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, convenio, "Convenio actualizado exitosamente")
}

func (cc *ConvenioController) ToggleEstado(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Formato de ID inválido")
		return
	}

	var body struct {
		Estado string `json:"estado"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	convenio, err := cc.service.ToggleEstado(id, body.Estado)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, convenio, "Estado del convenio actualizado")
}

func (cc *ConvenioController) DeleteConvenio(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "Formato de ID inválido")
		return
	}

	if err := cc.service.DeleteConvenio(id); err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "Convenio eliminado exitosamente")
}

// ExportarExcel descarga el listado completo de convenios como .xlsx.
func (cc *ConvenioController) ExportarExcel(c *gin.Context) {
	f, err := cc.service.ExportarExcel()
	if err != nil {
		responderError(c, err)
		return
	}

	filename := fmt.Sprintf("convenios_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		utils.Error(c, http.StatusInternalServerError, "No fue posible escribir el archivo Excel")
	}
}

func (cc *ConvenioController) ImportarExcel(c *gin.Context) {
	file, err := c.FormFile("archivo")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "El archivo es obligatorio")
		return
	}

	src, err := file.Open()
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "No fue posible abrir el archivo")
		return
	}
	defer src.Close()

	resultado, err := cc.service.ImportarExcel(src)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, resultado, "Importación procesada")
}

// ValidarConvenio evalúa la elegibilidad de un trabajador frente al convenio
// de su empresa.
func (cc *ConvenioController) ValidarConvenio(c *gin.Context) {
	var dto dtos.ValidarConvenioDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if dto.NitEmpresa == "" || dto.CedulaTrabajador == "" {
		utils.Error(c, http.StatusBadRequest, "El NIT de la empresa y la cédula del trabajador son obligatorios")
		return
	}

	resultado, err := cc.validacion.ValidarConvenioTrabajador(c.Request.Context(), dto.NitEmpresa, dto.CedulaTrabajador)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, resultado, "El trabajador es elegible")
}

// ValidarConvenioPorRuta es la variante GET con NIT y cédula en la ruta.
func (cc *ConvenioController) ValidarConvenioPorRuta(c *gin.Context) {
	nit := c.Param("nit")
	cedula := c.Param("cedula")

	resultado, err := cc.validacion.ValidarConvenioTrabajador(c.Request.Context(), nit, cedula)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, resultado, "El trabajador es elegible")
}
