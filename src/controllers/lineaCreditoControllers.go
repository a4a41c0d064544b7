package controllers

import (
	"net/http"

	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/COMFACA/Creditos-Backend/src/utils"
	"github.com/gin-gonic/gin"
)

type LineaCreditoController struct {
	service *services.LineaCreditoService
}

func NewLineaCreditoController(service *services.LineaCreditoService) *LineaCreditoController {
	return &LineaCreditoController{service: service}
}

func (lc *LineaCreditoController) GetAllLineas(c *gin.Context) {
	soloActivas := c.Query("activas") == "true"
	lineas, err := lc.service.GetAllLineas(soloActivas)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, lineas, "")
}

func (lc *LineaCreditoController) GetLineaByCodigo(c *gin.Context) {
	linea, err := lc.service.GetLineaByCodigo(c.Param("codigo"))
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, linea, "")
}

func (lc *LineaCreditoController) CreateLinea(c *gin.Context) {
	var linea models.LineaCredito
	if err := c.ShouldBindJSON(&linea); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	creada, err := lc.service.CreateLinea(&linea)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusCreated, creada, "Línea de crédito creada exitosamente")
}

func (lc *LineaCreditoController) UpdateLinea(c *gin.Context) {
	var cambios models.LineaCredito
	if err := c.ShouldBindJSON(&cambios); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	linea, err := lc.service.UpdateLinea(c.Param("codigo"), &cambios)
	if err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, linea, "Línea de crédito actualizada exitosamente")
}

func (lc *LineaCreditoController) DeleteLinea(c *gin.Context) {
	if err := lc.service.DeleteLinea(c.Param("codigo")); err != nil {
		responderError(c, err)
		return
	}
	utils.Success(c, http.StatusOK, nil, "Línea de crédito eliminada exitosamente")
}
