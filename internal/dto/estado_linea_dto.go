package dto

// Las fechas-hora viajan en RFC 3339.
type CrearEstadoLineaRequest struct {
	SectorID        uint    `json:"sector_id"         validate:"required,gt=0"`
	LineaID         uint    `json:"linea_id"          validate:"required,gt=0"`
	TipoEstado      string  `json:"tipo_estado"       validate:"required"`
	FechaHoraInicio string  `json:"fecha_hora_inicio" validate:"required"`
	FechaHoraFin    *string `json:"fecha_hora_fin"`
	DuracionMinutos *int    `json:"duracion_minutos"  validate:"omitempty,min=0"`
	Observaciones   *string `json:"observaciones"`
}

type ActualizarEstadoLineaRequest struct {
	TipoEstado      *string `json:"tipo_estado"`
	FechaHoraInicio *string `json:"fecha_hora_inicio"`
	FechaHoraFin    *string `json:"fecha_hora_fin"`
	DuracionMinutos *int    `json:"duracion_minutos"  validate:"omitempty,min=0"`
	Observaciones   *string `json:"observaciones"`
}

type EstadoLineaFilter struct {
	SectorID   uint   `form:"sector_id"`
	LineaID    uint   `form:"linea_id"`
	TipoEstado string `form:"tipo_estado"`
	Activo     *bool  `form:"activo"`
	Page       int    `form:"page,default=1"  validate:"min=1"`
	Size       int    `form:"size,default=10" validate:"min=1,max=100"`
}

type EstadoLineaResponse struct {
	ID              uint    `json:"id"`
	Codigo          string  `json:"codigo"`
	SectorID        uint    `json:"sector_id"`
	SectorNombre    string  `json:"sector_nombre,omitempty"`
	LineaID         uint    `json:"linea_id"`
	LineaNombre     string  `json:"linea_nombre,omitempty"`
	TipoEstado      string  `json:"tipo_estado"`
	FechaHoraInicio string  `json:"fecha_hora_inicio"`
	FechaHoraFin    *string `json:"fecha_hora_fin"`
	DuracionMinutos *int    `json:"duracion_minutos"`
	Observaciones   *string `json:"observaciones"`
	UsuarioID       *uint   `json:"usuario_id"`
	Activo          bool    `json:"activo"`
	CreatedAt       string  `json:"created_at"`
}

type EstadoLineaListResponse struct {
	Items []EstadoLineaResponse `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Size  int                   `json:"size"`
	Pages int                   `json:"pages"`
}
