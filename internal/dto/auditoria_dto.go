package dto

type AuditoriaFilter struct {
	Entidad   string `form:"entidad"`
	Accion    string `form:"accion"`
	UsuarioID uint   `form:"usuario_id"`
	Page      int    `form:"page,default=1"  validate:"min=1"`
	Size      int    `form:"size,default=20" validate:"min=1,max=100"`
}

type AuditLogResponse struct {
	ID                 uint    `json:"id"`
	UsuarioID          *uint   `json:"usuario_id"`
	UsuarioUsername    string  `json:"usuario_username"`
	Accion             string  `json:"accion"`
	Entidad            string  `json:"entidad"`
	EntidadID          uint    `json:"entidad_id"`
	EntidadDescripcion *string `json:"entidad_descripcion"`
	DatosAnteriores    *string `json:"datos_anteriores"`
	DatosNuevos        *string `json:"datos_nuevos"`
	FechaHora          string  `json:"fecha_hora"`
	IPAddress          *string `json:"ip_address"`
	UserAgent          *string `json:"user_agent"`
}

type AuditoriaListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
	Pages int                `json:"pages"`
}
