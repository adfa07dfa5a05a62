package model

import "time"

// Sector agrupa las líneas de producción de la planta.
type Sector struct {
	ID          uint    `gorm:"primaryKey"`
	Codigo      string  `gorm:"size:50;uniqueIndex;not null"`
	Nombre      string  `gorm:"size:100;uniqueIndex;not null"`
	Descripcion *string `gorm:"size:255"`
	Activo      bool    `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lineas []Linea `gorm:"foreignKey:SectorID"`
}

// TableName overrides GORM's default pluralization (sectors → sectores).
func (Sector) TableName() string { return "sectores" }
