package dto

import "github.com/shopspring/decimal"

// HistorialFilter filtra el historial de producción. Las fechas son
// "YYYY-MM-DD" inclusive en ambos extremos.
type HistorialFilter struct {
	FechaDesde     string `form:"fecha_desde"`
	FechaHasta     string `form:"fecha_hasta"`
	ProductoID     uint   `form:"producto_id"`
	NumeroLote     string `form:"numero_lote"`
	OrdenCampo     string `form:"orden_campo,default=fecha_produccion"`
	OrdenDireccion string `form:"orden_direccion,default=desc"`
	Page           int    `form:"page,default=1"  validate:"min=1"`
	Size           int    `form:"size,default=20" validate:"min=1,max=100"`
}

// HistorialEstadisticas agrega los lotes que matchean el filtro completo,
// no solo la página devuelta.
type HistorialEstadisticas struct {
	TotalLotes      int64           `json:"total_lotes"`
	TotalLitros     decimal.Decimal `json:"total_litros"`
	TotalPallets    int64           `json:"total_pallets"`
	TotalParciales  int64           `json:"total_parciales"`
	ProductosUnicos int64           `json:"productos_unicos"`
	FechaPrimerLote *string         `json:"fecha_primer_lote"`
	FechaUltimoLote *string         `json:"fecha_ultimo_lote"`
}

type HistorialResponse struct {
	Items        []LoteResponse        `json:"items"`
	Estadisticas HistorialEstadisticas `json:"estadisticas"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Size         int                   `json:"size"`
	Pages        int                   `json:"pages"`
}
