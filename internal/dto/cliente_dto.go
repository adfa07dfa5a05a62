package dto

type CrearClienteRequest struct {
	Nombre      string  `json:"nombre"       validate:"required,min=2,max=200"`
	RazonSocial *string `json:"razon_social" validate:"omitempty,max=200"`
	CUIT        *string `json:"cuit"         validate:"omitempty,max=20"`
	Direccion   *string `json:"direccion"    validate:"omitempty,max=300"`
	Telefono    *string `json:"telefono"     validate:"omitempty,max=50"`
	Email       *string `json:"email"        validate:"omitempty,email,max=100"`
	Contacto    *string `json:"contacto"     validate:"omitempty,max=100"`
}

type ActualizarClienteRequest struct {
	Nombre      *string `json:"nombre"       validate:"omitempty,min=2,max=200"`
	RazonSocial *string `json:"razon_social" validate:"omitempty,max=200"`
	CUIT        *string `json:"cuit"         validate:"omitempty,max=20"`
	Direccion   *string `json:"direccion"    validate:"omitempty,max=300"`
	Telefono    *string `json:"telefono"     validate:"omitempty,max=50"`
	Email       *string `json:"email"        validate:"omitempty,email,max=100"`
	Contacto    *string `json:"contacto"     validate:"omitempty,max=100"`
}

type ClienteResponse struct {
	ID          uint    `json:"id"`
	Codigo      string  `json:"codigo"`
	Nombre      string  `json:"nombre"`
	RazonSocial *string `json:"razon_social"`
	CUIT        *string `json:"cuit"`
	Direccion   *string `json:"direccion"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Contacto    *string `json:"contacto"`
	Activo      bool    `json:"activo"`
	CreatedAt   string  `json:"created_at"`
}

type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Pages int               `json:"pages"`
}
