package model

import "time"

// Acciones auditables.
const (
	AccionCrear    = "crear"
	AccionEditar   = "editar"
	AccionEliminar = "eliminar"
)

// AuditLog registra quién hizo qué sobre qué registro. Se escribe de forma
// asíncrona (worker de auditoría), nunca dentro de la transacción del request.
type AuditLog struct {
	ID uint `gorm:"primaryKey"`

	UsuarioID *uint `gorm:"index"`
	// Snapshot del username por si el usuario se elimina después
	UsuarioUsername string `gorm:"size:100"`

	Accion string `gorm:"size:20;not null"`

	Entidad            string  `gorm:"size:50;index;not null"`
	EntidadID          uint    `gorm:"not null"`
	EntidadDescripcion *string `gorm:"size:255"`

	// JSON con los valores anteriores/nuevos según la acción
	DatosAnteriores *string `gorm:"type:text"`
	DatosNuevos     *string `gorm:"type:text"`

	FechaHora time.Time `gorm:"not null;index"`
	IPAddress *string   `gorm:"size:45"`
	UserAgent *string   `gorm:"size:255"`
}
