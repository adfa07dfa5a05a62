package service

import (
	"context"
	"time"

	"github.com/mattygrunge/planproduccion/internal/worker"

	"github.com/rs/zerolog/log"
)

// ClientInfo identifica al actor del request para la auditoría.
type ClientInfo struct {
	UsuarioID *uint
	Username  string
	IP        string
	UserAgent string
}

// auditar encola un evento de auditoría. Best-effort: un fallo del encolado
// se loguea y no corta la operación del request.
func auditar(ctx context.Context, d *worker.Dispatcher, info ClientInfo, accion, entidad string, entidadID uint, descripcion string, anteriores, nuevos *string) {
	if d == nil {
		return
	}
	username := info.Username
	if username == "" {
		username = "sistema"
	}
	evento := worker.EventoAuditoria{
		UsuarioID:       info.UsuarioID,
		UsuarioUsername: username,
		Accion:          accion,
		Entidad:         entidad,
		EntidadID:       entidadID,
		DatosAnteriores: anteriores,
		DatosNuevos:     nuevos,
		FechaHora:       time.Now().UTC(),
	}
	if descripcion != "" {
		evento.EntidadDescripcion = &descripcion
	}
	if info.IP != "" {
		evento.IPAddress = &info.IP
	}
	if info.UserAgent != "" {
		evento.UserAgent = &info.UserAgent
	}
	if err := d.EnqueueAuditoria(ctx, evento); err != nil {
		log.Error().Err(err).Str("entidad", entidad).Str("accion", accion).Msg("no se pudo encolar auditoría")
	}
}
