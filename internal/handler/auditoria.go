package handler

import (
	"net/http"
	"time"

	"github.com/mattygrunge/planproduccion/internal/apierror"
	"github.com/mattygrunge/planproduccion/internal/dto"
	"github.com/mattygrunge/planproduccion/internal/model"
	"github.com/mattygrunge/planproduccion/internal/repository"

	"github.com/gin-gonic/gin"
)

// AuditoriaHandler lista el historial de auditoría. Solo lectura, va directo
// al repositorio.
type AuditoriaHandler struct{ repo repository.AuditLogRepository }

func NewAuditoriaHandler(repo repository.AuditLogRepository) *AuditoriaHandler {
	return &AuditoriaHandler{repo: repo}
}

func (h *AuditoriaHandler) Listar(c *gin.Context) {
	var filter dto.AuditoriaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = 20
	}

	logs, total, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, mapAuditLog(&logs[i]))
	}
	c.JSON(http.StatusOK, dto.AuditoriaListResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Size:  filter.Size,
		Pages: int((total + int64(filter.Size) - 1) / int64(filter.Size)),
	})
}

func mapAuditLog(l *model.AuditLog) dto.AuditLogResponse {
	return dto.AuditLogResponse{
		ID:                 l.ID,
		UsuarioID:          l.UsuarioID,
		UsuarioUsername:    l.UsuarioUsername,
		Accion:             l.Accion,
		Entidad:            l.Entidad,
		EntidadID:          l.EntidadID,
		EntidadDescripcion: l.EntidadDescripcion,
		DatosAnteriores:    l.DatosAnteriores,
		DatosNuevos:        l.DatosNuevos,
		FechaHora:          l.FechaHora.UTC().Format(time.RFC3339),
		IPAddress:          l.IPAddress,
		UserAgent:          l.UserAgent,
	}
}
