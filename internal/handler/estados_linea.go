package handler

import (
	"net/http"

	"github.com/mattygrunge/planproduccion/internal/apierror"
	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/service"

	"github.com/gin-gonic/gin"
)

type EstadosLineaHandler struct{ svc service.EstadoLineaService }

func NewEstadosLineaHandler(svc service.EstadoLineaService) *EstadosLineaHandler {
	return &EstadosLineaHandler{svc: svc}
}

func (h *EstadosLineaHandler) Crear(c *gin.Context) {
	var req dto.CrearEstadoLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), clientInfo(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EstadosLineaHandler) Listar(c *gin.Context) {
	var filter dto.EstadoLineaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadosLineaHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadosLineaHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ActualizarEstadoLineaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, clientInfo(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadosLineaHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id, clientInfo(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Tipos lista los tipos de estado que acepta el sistema.
func (h *EstadosLineaHandler) Tipos(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tipos": h.svc.TiposDisponibles()})
}
