package controllers

import (
	"errors"
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

// responderError traduce los errores tipados de los servicios al código HTTP
// del sobre uniforme. Cualquier error no reconocido termina en 500.
func responderError(c *gin.Context, err error) {
	var validacion *services.ValidacionError
	var transicion *models.TransicionInvalidaError
	var elegibilidad *services.ElegibilidadError

	switch {
	case errors.As(err, &validacion):
		utils.Error(c, http.StatusBadRequest, validacion.Mensaje)
	case errors.As(err, &transicion):
		utils.Error(c, http.StatusConflict, transicion.Error())
	case errors.As(err, &elegibilidad):
		utils.Error(c, http.StatusUnprocessableEntity, elegibilidad.Error())
	case errors.Is(err, services.ErrAccesoDenegado):
		utils.Error(c, http.StatusForbidden, "No tiene permisos para acceder a esta solicitud")
	case errors.Is(err, services.ErrWebhookTokenInvalido):
		utils.Error(c, http.StatusUnauthorized, "Token de webhook inválido")
	case errors.Is(err, services.ErrSolicitudNoEncontrada),
		errors.Is(err, services.ErrDocumentoNoEncontrado),
		errors.Is(err, services.ErrPdfNoGenerado),
		errors.Is(err, services.ErrConvenioNoEncontrado),
		errors.Is(err, services.ErrTrabajadorNoEncontrado),
		errors.Is(err, services.ErrPostulacionNoEncontrada),
		errors.Is(err, services.ErrUsuarioNoEncontrado),
		errors.Is(err, services.ErrLineaNoEncontrada):
		utils.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrProcesoFirmaNoIniciado),
		errors.Is(err, services.ErrSinFirmantes):
		utils.Error(c, http.StatusConflict, err.Error())
	default:
		utils.Error(c, http.StatusInternalServerError, err.Error())
	}
}
