package controllers

import (
	"net/http"
	"strconv"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type SolicitudController struct {
	service *services.SolicitudService
}

func NewSolicitudController(service *services.SolicitudService) *SolicitudController {
	return &SolicitudController{service: service}
}

func (sc *SolicitudController) CrearSolicitud(c *gin.Context) {
	var dto dtos.CrearSolicitudDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	solicitud, err := sc.service.CrearSolicitud(&dto, middleware.CurrentUsername(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, solicitud, "Solicitud de crédito creada exitosamente")
}

func (sc *SolicitudController) ObtenerSolicitud(c *gin.Context) {
	solicitud, err := sc.service.ObtenerSolicitudPara(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitud, "")
}

func (sc *SolicitudController) ListarSolicitudes(c *gin.Context) {
	username := middleware.CurrentUsername(c)
	roles := middleware.CurrentRoles(c)
	estado := c.DefaultQuery("estado", "@")

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	if limit > 0 {
		solicitudes, total, err := sc.service.ListarSolicitudesPaginado(username, roles, limit, offset, estado)
		if err != nil {
			responderError(c, err)
			return
		}
		utils.Success(c, http.StatusOK, gin.H{
			"solicitudes": solicitudes,
			"total":       total,
			"limit":       limit,
			"offset":      offset,
		}, "")
		return
	}

	solicitudes, err := sc.service.ListarSolicitudes(username, roles, estado)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitudes, "")
}

func (sc *SolicitudController) ActualizarSolicitud(c *gin.Context) {
	var dto dtos.ActualizarSolicitudDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	solicitud, err := sc.service.ActualizarSolicitud(
		c.Param("id"), &dto, middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitud, "Solicitud actualizada exitosamente")
}

// EliminarSolicitud no borra registros; marca la solicitud como DESISTE.
func (sc *SolicitudController) EliminarSolicitud(c *gin.Context) {
	err := sc.service.EliminarSolicitud(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "La solicitud fue marcada como desistida")
}

func (sc *SolicitudController) CambiarEstado(c *gin.Context) {
	var dto dtos.CambiarEstadoDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Estado == "" {
		utils.Error(c, http.StatusBadRequest, "El estado destino es obligatorio")
		return
	}

	numero := c.Param("id")
	username := middleware.CurrentUsername(c)
	roles := middleware.CurrentRoles(c)

	// La política de acceso se evalúa antes de intentar la transición.
	if _, err := sc.service.ObtenerSolicitudPara(numero, username, roles); err != nil {
		responderError(c, err)
		return
	}

	if err := sc.service.CambiarEstado(numero, models.EstadoSolicitud(dto.Estado), dto.Detalle, username, false); err != nil {
		responderError(c, err)
		return
	}

	solicitud, err := sc.service.ObtenerSolicitud(numero)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitud, "Estado actualizado exitosamente")
}

func (sc *SolicitudController) FinalizarProceso(c *gin.Context) {
	numero := c.Param("id")
	err := sc.service.FinalizarProceso(numero, middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}

	solicitud, err := sc.service.ObtenerSolicitud(numero)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitud, "Solicitud enviada para aprobación")
}

func (sc *SolicitudController) BuscarSolicitudes(c *gin.Context) {
	var filtro dtos.BuscarSolicitudesDTO
	if err := c.ShouldBindJSON(&filtro); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	solicitudes, err := sc.service.BuscarSolicitudes(
		&filtro, middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitudes, "")
}

func (sc *SolicitudController) ObtenerTimeline(c *gin.Context) {
	solicitud, err := sc.service.ObtenerSolicitudPara(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, solicitud.Timeline, "")
}

func (sc *SolicitudController) Estadisticas(c *gin.Context) {
	stats, err := sc.service.Estadisticas()
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, stats, "")
}

func (sc *SolicitudController) ContarPorEstado(c *gin.Context) {
	conteo, err := sc.service.ContarPorEstado()
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, conteo, "")
}
