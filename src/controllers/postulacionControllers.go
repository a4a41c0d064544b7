package controllers

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/dtos"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type PostulacionController struct {
	service     *services.PostulacionService
	solicitudes *services.SolicitudService
}

func NewPostulacionController(service *services.PostulacionService, solicitudes *services.SolicitudService) *PostulacionController {
	return &PostulacionController{service: service, solicitudes: solicitudes}
}

func (pc *PostulacionController) CrearPostulacion(c *gin.Context) {
	var dto dtos.CrearPostulacionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	postulacion, err := pc.service.CrearPostulacion(c.Request.Context(), &dto, middleware.CurrentUsername(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, postulacion, "Postulación creada exitosamente")
}

func (pc *PostulacionController) ObtenerPostulacion(c *gin.Context) {
	postulacion, err := pc.service.ObtenerPostulacion(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, postulacion, "")
}

func (pc *PostulacionController) ListarPostulaciones(c *gin.Context) {
	postulaciones, err := pc.service.ListarPostulaciones(
		middleware.CurrentUsername(c), middleware.CurrentRoles(c), c.Query("estado"))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, postulaciones, "")
}

func (pc *PostulacionController) ActualizarEstado(c *gin.Context) {
	var dto dtos.ActualizarEstadoPostulacionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Estado == "" {
		utils.Error(c, http.StatusBadRequest, "El estado destino es obligatorio")
		return
	}

	postulacion, err := pc.service.ActualizarEstado(
		c.Param("id"), models.EstadoPostulacion(dto.Estado), dto.Observaciones,
		middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, postulacion, "Estado de la postulación actualizado")
}

func (pc *PostulacionController) EliminarPostulacion(c *gin.Context) {
	err := pc.service.EliminarPostulacion(
		c.Param("id"), middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "Postulación cancelada")
}

func (pc *PostulacionController) BuscarPostulaciones(c *gin.Context) {
	postulaciones, err := pc.service.BuscarPostulaciones(
		c.Query("nit_empresa"), c.Query("cedula"), c.Query("linea"),
		middleware.CurrentUsername(c), middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, postulaciones, "")
}

func (pc *PostulacionController) Estadisticas(c *gin.Context) {
	stats, err := pc.service.Estadisticas()
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, stats, "")
}

// ConvertirASolicitud crea la solicitud formal a partir de una postulación
// aprobada.
func (pc *PostulacionController) ConvertirASolicitud(c *gin.Context) {
	username := middleware.CurrentUsername(c)

	dto, err := pc.service.ConvertirASolicitud(
		c.Param("id"), username, middleware.CurrentRoles(c))
	if err != nil {
		responderError(c, err)
		return
	}

	solicitud, err := pc.solicitudes.CrearSolicitud(dto, username)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, solicitud, "Solicitud creada a partir de la postulación")
}
