package controllers

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type FirmaController struct {
	service   *services.FirmaDigitalService
	firmaPlus *services.FirmaPlusService
}

func NewFirmaController(service *services.FirmaDigitalService, firmaPlus *services.FirmaPlusService) *FirmaController {
	return &FirmaController{service: service, firmaPlus: firmaPlus}
}

func (fc *FirmaController) IniciarProcesoFirmado(c *gin.Context) {
	proceso, err := fc.service.IniciarProcesoFirmado(c.Request.Context(),
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, proceso, "Proceso de firmado iniciado exitosamente")
}

func (fc *FirmaController) ConsultarEstadoFirmado(c *gin.Context) {
	proceso, err := fc.service.ConsultarEstadoFirmado(c.Request.Context(),
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, proceso, "")
}

// Webhook recibe las notificaciones del proveedor de firma. La ruta no pasa
// por el middleware de autenticación; el token viaja en el cuerpo.
func (fc *FirmaController) Webhook(c *gin.Context) {
	var payload dtos.WebhookFirmaDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := fc.service.ProcesarWebhook(c.Request.Context(), &payload); err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "Webhook procesado")
}

// Disponibilidad consulta la salud del proveedor de firma digital.
func (fc *FirmaController) Disponibilidad(c *gin.Context) {
	disponible := fc.firmaPlus.VerificarDisponibilidad(c.Request.Context())
	status := http.StatusOK
	if !disponible {
		status = http.StatusServiceUnavailable
	}
	utils.Success(c, status, gin.H{"disponible": disponible}, "")
}
