package controllers

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

// TrabajadorController consulta los datos de afiliación contra el servicio
// externo de trabajadores.
type TrabajadorController struct {
	service *services.TrabajadorService
}

func NewTrabajadorController(service *services.TrabajadorService) *TrabajadorController {
	return &TrabajadorController{service: service}
}

func (tc *TrabajadorController) ObtenerTrabajador(c *gin.Context) {
	cedula := c.Param("cedula")
	if cedula == "" {
		utils.Error(c, http.StatusBadRequest, "La cédula es obligatoria")
		return
	}

	trabajador, err := tc.service.ObtenerDatosTrabajador(c.Request.Context(), cedula)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, trabajador, "")
}
