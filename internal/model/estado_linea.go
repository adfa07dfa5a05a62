package model

import "time"

// Tipos de estado disponibles para una línea. Solo los estados de tipo
// "produccion" pueden asociarse a lotes.
const (
	EstadoProduccion         = "produccion"
	EstadoParadaProgramada   = "parada_programada"
	EstadoParadaNoProgramada = "parada_no_programada"
	EstadoMantenimiento      = "mantenimiento"
	EstadoLimpieza           = "limpieza"
	EstadoCambioFormato      = "cambio_formato"
	EstadoSinDemanda         = "sin_demanda"
	EstadoOtro               = "otro"
)

// TiposEstado lista los valores aceptados para EstadoLinea.TipoEstado.
var TiposEstado = []string{
	EstadoProduccion,
	EstadoParadaProgramada,
	EstadoParadaNoProgramada,
	EstadoMantenimiento,
	EstadoLimpieza,
	EstadoCambioFormato,
	EstadoSinDemanda,
	EstadoOtro,
}

// EstadoLinea registra un tramo de actividad (o inactividad) de una línea.
type EstadoLinea struct {
	ID              uint      `gorm:"primaryKey"`
	Codigo          string    `gorm:"size:50;uniqueIndex;not null"`
	SectorID        uint      `gorm:"not null;index"`
	LineaID         uint      `gorm:"not null;index"`
	TipoEstado      string    `gorm:"size:50;index;not null"`
	FechaHoraInicio time.Time `gorm:"not null"`
	FechaHoraFin    *time.Time
	// Duración en minutos, calculada a partir de inicio/fin o cargada manual
	DuracionMinutos *int
	Observaciones   *string `gorm:"type:text"`
	UsuarioID       *uint   `gorm:"index"`
	Activo          bool    `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Sector  *Sector  `gorm:"foreignKey:SectorID"`
	Linea   *Linea   `gorm:"foreignKey:LineaID"`
	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

// TableName overrides GORM's default pluralization (estado_lineas → estados_linea).
func (EstadoLinea) TableName() string { return "estados_linea" }

// EsProduccion reports whether the state can host lotes.
func (e *EstadoLinea) EsProduccion() bool { return e.TipoEstado == EstadoProduccion }
