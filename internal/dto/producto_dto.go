package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre          string           `json:"nombre"            validate:"required,min=2,max=200"`
	Descripcion     *string          `json:"descripcion"       validate:"omitempty,max=500"`
	UnidadMedida    string           `json:"unidad_medida"`
	PrecioUnitario  *decimal.Decimal `json:"precio_unitario"`
	AnosVencimiento *int             `json:"anos_vencimiento"  validate:"omitempty,min=0"`
	LitrosPorUnidad *decimal.Decimal `json:"litros_por_unidad"`
}

type ActualizarProductoRequest struct {
	Nombre          *string          `json:"nombre"            validate:"omitempty,min=2,max=200"`
	Descripcion     *string          `json:"descripcion"       validate:"omitempty,max=500"`
	UnidadMedida    *string          `json:"unidad_medida"`
	PrecioUnitario  *decimal.Decimal `json:"precio_unitario"`
	AnosVencimiento *int             `json:"anos_vencimiento"  validate:"omitempty,min=0"`
	LitrosPorUnidad *decimal.Decimal `json:"litros_por_unidad"`
}

type ProductoFilter struct {
	Search string `form:"search"`
	Activo *bool  `form:"activo"`
	Page   int    `form:"page,default=1"  validate:"min=1"`
	Size   int    `form:"size,default=10" validate:"min=1,max=100"`
}

type ProductoResponse struct {
	ID              uint            `json:"id"`
	Codigo          string          `json:"codigo"`
	Nombre          string          `json:"nombre"`
	Descripcion     *string         `json:"descripcion"`
	UnidadMedida    string          `json:"unidad_medida"`
	PrecioUnitario  decimal.Decimal `json:"precio_unitario"`
	AnosVencimiento int             `json:"anos_vencimiento"`
	LitrosPorUnidad decimal.Decimal `json:"litros_por_unidad"`
	Activo          bool            `json:"activo"`
	CreatedAt       string          `json:"created_at"`
}

type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
	Pages int                `json:"pages"`
}
