package dto

type CrearLineaRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
	SectorID    uint    `json:"sector_id"   validate:"required,gt=0"`
}

type ActualizarLineaRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion" validate:"omitempty,max=255"`
	SectorID    *uint   `json:"sector_id"   validate:"omitempty,gt=0"`
}

type LineaFilter struct {
	SectorID uint   `form:"sector_id"`
	Search   string `form:"search"`
	Activo   *bool  `form:"activo"`
	Page     int    `form:"page,default=1"  validate:"min=1"`
	Size     int    `form:"size,default=10" validate:"min=1,max=100"`
}

type LineaResponse struct {
	ID           uint    `json:"id"`
	Codigo       string  `json:"codigo"`
	Nombre       string  `json:"nombre"`
	Descripcion  *string `json:"descripcion"`
	SectorID     uint    `json:"sector_id"`
	SectorNombre string  `json:"sector_nombre,omitempty"`
	Activo       bool    `json:"activo"`
	CreatedAt    string  `json:"created_at"`
}

type LineaListResponse struct {
	Items []LineaResponse `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Size  int             `json:"size"`
	Pages int             `json:"pages"`
}
