package dto

// ListFilter is the shared pagination/search filter for simple catalogs
// (sectores, clientes).
type ListFilter struct {
	Search string `form:"search"`
	Activo *bool  `form:"activo"`
	Page   int    `form:"page,default=1"  validate:"min=1"`
	Size   int    `form:"size,default=10" validate:"min=1,max=100"`
}

type CrearSectorRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

type ActualizarSectorRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
}

type SectorResponse struct {
	ID          uint            `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Descripcion *string         `json:"descripcion"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"created_at"`
	Lineas      []LineaResponse `json:"lineas,omitempty"`
}

type SectorListResponse struct {
	Items []SectorResponse `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Pages int              `json:"pages"`
}
