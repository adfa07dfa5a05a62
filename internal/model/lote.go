package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote es un lote de producción registrado contra un producto y,
// opcionalmente, contra un estado de línea de tipo "produccion".
//
// Codigo es el identificador generado por el sistema (LT + año + secuencia)
// y es único. NumeroLote es la etiqueta cargada por el operario y puede
// repetirse entre productos; sobre ella corren las validaciones de
// duplicado y salto de secuencia.
type Lote struct {
	ID         uint   `gorm:"primaryKey"`
	Codigo     string `gorm:"size:20;uniqueIndex;not null"`
	NumeroLote string `gorm:"size:50;index;not null"`

	ProductoID    uint  `gorm:"not null;index"`
	EstadoLineaID *uint `gorm:"index"`

	Pallets           int `gorm:"not null;default:0"`
	Parciales         int `gorm:"not null;default:0"` // unidades sueltas
	UnidadesPorPallet int `gorm:"not null;default:1"`

	// Litros totales: (pallets*unidades_por_pallet + parciales) * litros_por_unidad,
	// salvo que el caller los cargue manualmente.
	LitrosTotales decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`

	FechaProduccion time.Time `gorm:"type:date;not null"`
	// Vencimiento: fecha_produccion + anos_vencimiento*365 días, salvo carga manual.
	FechaVencimiento *time.Time `gorm:"type:date"`

	LinkSenasa    *string `gorm:"size:500"`
	Observaciones *string `gorm:"type:text"`

	UsuarioID *uint `gorm:"index"`
	Activo    bool  `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Producto    *Producto    `gorm:"foreignKey:ProductoID"`
	EstadoLinea *EstadoLinea `gorm:"foreignKey:EstadoLineaID"`
	Usuario     *Usuario     `gorm:"foreignKey:UsuarioID"`
}

// CalcularLitrosTotales derives the total volume for the given per-unit liters.
func (l *Lote) CalcularLitrosTotales(litrosPorUnidad decimal.Decimal) decimal.Decimal {
	unidades := int64(l.Pallets)*int64(l.UnidadesPorPallet) + int64(l.Parciales)
	return litrosPorUnidad.Mul(decimal.NewFromInt(unidades))
}

// CalcularFechaVencimiento adds anos*365 days to the production date.
func CalcularFechaVencimiento(fechaProduccion time.Time, anosVencimiento int) time.Time {
	if anosVencimiento <= 0 {
		anosVencimiento = 2
	}
	return fechaProduccion.AddDate(0, 0, 365*anosVencimiento)
}
