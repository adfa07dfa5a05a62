package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto es un producto elaborado en planta. AnosVencimiento y
// LitrosPorUnidad alimentan los campos derivados de los lotes.
type Producto struct {
	ID             uint            `gorm:"primaryKey"`
	Codigo         string          `gorm:"size:50;uniqueIndex;not null"`
	Nombre         string          `gorm:"size:200;index;not null"`
	Descripcion    *string         `gorm:"size:500"`
	UnidadMedida   string          `gorm:"size:20;not null;default:'unidad'"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Años de vencimiento para calcular fecha_vencimiento de los lotes
	AnosVencimiento int `gorm:"not null;default:2"`
	// Litros por unidad para calcular litros_totales de los lotes
	LitrosPorUnidad decimal.Decimal `gorm:"type:decimal(10,3);not null;default:1"`
	Activo          bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
