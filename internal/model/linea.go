package model

import "time"

// Linea es una línea de producción dentro de un sector.
type Linea struct {
	ID          uint    `gorm:"primaryKey"`
	Codigo      string  `gorm:"size:50;uniqueIndex;not null"`
	Nombre      string  `gorm:"size:100;index;not null"`
	Descripcion *string `gorm:"size:255"`
	SectorID    uint    `gorm:"not null;index"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Sector *Sector `gorm:"foreignKey:SectorID"`
}
