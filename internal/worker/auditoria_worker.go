package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mattygrunge/planproduccion/internal/model"
	"github.com/mattygrunge/planproduccion/internal/repository"
)

// EventoAuditoria es el payload de un job de auditoría. Se arma en el
// request (con el usuario y los snapshots antes/después) y se persiste
// fuera de la transacción principal.
type EventoAuditoria struct {
	UsuarioID          *uint      `json:"usuario_id"`
	UsuarioUsername    string     `json:"usuario_username"`
	Accion             string     `json:"accion"`
	Entidad            string     `json:"entidad"`
	EntidadID          uint       `json:"entidad_id"`
	EntidadDescripcion *string    `json:"entidad_descripcion"`
	DatosAnteriores    *string    `json:"datos_anteriores"`
	DatosNuevos        *string    `json:"datos_nuevos"`
	FechaHora          time.Time  `json:"fecha_hora"`
	IPAddress          *string    `json:"ip_address"`
	UserAgent          *string    `json:"user_agent"`
}

// SnapshotJSON serializa un registro para datos_anteriores/datos_nuevos.
// Devuelve nil si el valor no serializa (nunca corta el flujo de auditoría).
func SnapshotJSON(v interface{}) *string {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

// AuditoriaWorker persiste los eventos de auditoría encolados.
type AuditoriaWorker struct {
	repo repository.AuditLogRepository
}

func NewAuditoriaWorker(repo repository.AuditLogRepository) *AuditoriaWorker {
	return &AuditoriaWorker{repo: repo}
}

func (w *AuditoriaWorker) Procesar(ctx context.Context, payload json.RawMessage) error {
	var evento EventoAuditoria
	if err := json.Unmarshal(payload, &evento); err != nil {
		return err
	}
	if evento.FechaHora.IsZero() {
		evento.FechaHora = time.Now().UTC()
	}
	return w.repo.Create(ctx, &model.AuditLog{
		UsuarioID:          evento.UsuarioID,
		UsuarioUsername:    evento.UsuarioUsername,
		Accion:             evento.Accion,
		Entidad:            evento.Entidad,
		EntidadID:          evento.EntidadID,
		EntidadDescripcion: evento.EntidadDescripcion,
		DatosAnteriores:    evento.DatosAnteriores,
		DatosNuevos:        evento.DatosNuevos,
		FechaHora:          evento.FechaHora,
		IPAddress:          evento.IPAddress,
		UserAgent:          evento.UserAgent,
	})
}
