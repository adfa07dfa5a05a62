package dto

import "github.com/shopspring/decimal"

// ─── Advertencias de validación ──────────────────────────────────────────────

type WarningTipo string

const (
	WarningLoteDuplicado   WarningTipo = "lote_duplicado"
	WarningSaltoLote       WarningTipo = "salto_lote"
	WarningFechaMuyAntigua WarningTipo = "fecha_muy_antigua"
	WarningFechaFutura     WarningTipo = "fecha_futura"
)

// LoteWarning es una señal blanda: el caller decide si crea/actualiza igual
// (ignorar_advertencias). Nunca se persiste por sí sola.
type LoteWarning struct {
	Tipo    WarningTipo `json:"tipo"`
	Mensaje string      `json:"mensaje"`
	Detalle string      `json:"detalle,omitempty"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

// Las fechas viajan como "YYYY-MM-DD"; el servicio las parsea.
type CrearLoteRequest struct {
	NumeroLote        string           `json:"numero_lote"         validate:"required,min=1,max=50"`
	ProductoID        uint             `json:"producto_id"         validate:"required,gt=0"`
	EstadoLineaID     *uint            `json:"estado_linea_id"`
	Pallets           *int             `json:"pallets"             validate:"omitempty,min=0"`
	Parciales         *int             `json:"parciales"           validate:"omitempty,min=0"`
	UnidadesPorPallet *int             `json:"unidades_por_pallet" validate:"omitempty,min=1"`
	LitrosTotales     *decimal.Decimal `json:"litros_totales"`
	FechaProduccion   string           `json:"fecha_produccion"    validate:"required,datetime=2006-01-02"`
	FechaVencimiento  *string          `json:"fecha_vencimiento"   validate:"omitempty,datetime=2006-01-02"`
	LinkSenasa        *string          `json:"link_senasa"         validate:"omitempty,max=500"`
	Observaciones     *string          `json:"observaciones"`
	Activo            *bool            `json:"activo"`
	// Si es true, el lote se crea aunque haya advertencias
	IgnorarAdvertencias bool `json:"ignorar_advertencias"`
}

type ActualizarLoteRequest struct {
	NumeroLote          *string          `json:"numero_lote"         validate:"omitempty,min=1,max=50"`
	ProductoID          *uint            `json:"producto_id"         validate:"omitempty,gt=0"`
	EstadoLineaID       *uint            `json:"estado_linea_id"`
	Pallets             *int             `json:"pallets"             validate:"omitempty,min=0"`
	Parciales           *int             `json:"parciales"           validate:"omitempty,min=0"`
	UnidadesPorPallet   *int             `json:"unidades_por_pallet" validate:"omitempty,min=1"`
	LitrosTotales       *decimal.Decimal `json:"litros_totales"`
	FechaProduccion     *string          `json:"fecha_produccion"    validate:"omitempty,datetime=2006-01-02"`
	FechaVencimiento    *string          `json:"fecha_vencimiento"   validate:"omitempty,datetime=2006-01-02"`
	LinkSenasa          *string          `json:"link_senasa"         validate:"omitempty,max=500"`
	Observaciones       *string          `json:"observaciones"`
	Activo              *bool            `json:"activo"`
	IgnorarAdvertencias bool             `json:"ignorar_advertencias"`
}

// ValidarLoteRequest is the dry-run validation payload (nothing is written).
type ValidarLoteRequest struct {
	NumeroLote      string `json:"numero_lote"      validate:"required,min=1,max=50"`
	ProductoID      uint   `json:"producto_id"      validate:"required,gt=0"`
	FechaProduccion string `json:"fecha_produccion" validate:"required,datetime=2006-01-02"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type LoteFilter struct {
	ProductoID    uint   `form:"producto_id"`
	EstadoLineaID uint   `form:"estado_linea_id"`
	Activo        *bool  `form:"activo"`
	Search        string `form:"search"`
	Page          int    `form:"page,default=1"  validate:"min=1"`
	Size          int    `form:"size,default=10" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoSimple struct {
	ID              uint            `json:"id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	AnosVencimiento int             `json:"anos_vencimiento"`
	LitrosPorUnidad decimal.Decimal `json:"litros_por_unidad"`
}

type EstadoLineaSimple struct {
	ID              uint   `json:"id"`
	TipoEstado      string `json:"tipo_estado"`
	FechaHoraInicio string `json:"fecha_hora_inicio"`
}

type LoteResponse struct {
	ID                uint               `json:"id"`
	Codigo            string             `json:"codigo"`
	NumeroLote        string             `json:"numero_lote"`
	ProductoID        uint               `json:"producto_id"`
	EstadoLineaID     *uint              `json:"estado_linea_id"`
	Pallets           int                `json:"pallets"`
	Parciales         int                `json:"parciales"`
	UnidadesPorPallet int                `json:"unidades_por_pallet"`
	LitrosTotales     decimal.Decimal    `json:"litros_totales"`
	FechaProduccion   string             `json:"fecha_produccion"`
	FechaVencimiento  *string            `json:"fecha_vencimiento"`
	LinkSenasa        *string            `json:"link_senasa"`
	Observaciones     *string            `json:"observaciones"`
	UsuarioID         *uint              `json:"usuario_id"`
	Activo            bool               `json:"activo"`
	CreatedAt         string             `json:"created_at"`
	Producto          *ProductoSimple    `json:"producto,omitempty"`
	EstadoLinea       *EstadoLineaSimple `json:"estado_linea,omitempty"`
}

// LoteConAdvertenciasResponse is the intake verdict: the record (when written)
// plus every warning that fired, overridden or not.
type LoteConAdvertenciasResponse struct {
	Lote         *LoteResponse `json:"lote"`
	Advertencias []LoteWarning `json:"advertencias"`
	Creado       bool          `json:"creado"`
	Mensaje      string        `json:"mensaje"`
}

type ValidacionLoteResponse struct {
	Valido       bool          `json:"valido"`
	Advertencias []LoteWarning `json:"advertencias"`
	LoteAnterior *string       `json:"lote_anterior"`
	LoteEsperado *string       `json:"lote_esperado"`
}

type SugerenciaNumeroResponse struct {
	Sugerencia string  `json:"sugerencia"`
	UltimoLote *string `json:"ultimo_lote"`
	Mensaje    string  `json:"mensaje"`
}

type LoteListResponse struct {
	Items []LoteResponse `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Size  int            `json:"size"`
	Pages int            `json:"pages"`
}
