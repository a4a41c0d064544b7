package controllers

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

// EstadoController expone el catálogo de estados y su tabla de transiciones.
// No toca la base de datos.
type EstadoController struct{}

func NewEstadoController() *EstadoController {
	return &EstadoController{}
}

func (ec *EstadoController) ListarEstados(c *gin.Context) {
	utils.Success(c, http.StatusOK, models.AllEstados(), "")
}

func (ec *EstadoController) ObtenerEstado(c *gin.Context) {
	codigo := c.Param("codigo")
	info, ok := models.EstadoSolicitud(codigo).Info()
	if !ok {
		utils.Error(c, http.StatusNotFound, "Estado no encontrado: "+codigo)
		return
	}

	utils.Success(c, http.StatusOK, gin.H{
		"estado":       info,
		"transiciones": models.TransicionesDesde(info.Value),
		"es_final":     info.Value.IsFinal(),
	}, "")
}

func (ec *EstadoController) ValidarTransicion(c *gin.Context) {
	desde := models.EstadoSolicitud(c.Query("desde"))
	hacia := models.EstadoSolicitud(c.Query("hacia"))
	if !models.IsValidState(string(desde)) || !models.IsValidState(string(hacia)) {
		utils.Error(c, http.StatusBadRequest, "Estado desconocido en la consulta")
		return
	}

	if err := models.ValidarTransicion(desde, hacia); err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, gin.H{"desde": desde, "hacia": hacia, "permitida": true}, "")
}
