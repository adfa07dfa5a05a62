// Package apierror define los sobres de error que devuelve la API.
// Todo 4xx/5xx pasa por acá: los clientes nunca ven errores de SQL ni
// detalles internos, solo un detail legible (y fields en validaciones).
package apierror

// APIError es el sobre estándar para cualquier respuesta de error.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrega los errores de campo de un payload rechazado,
// indexados por nombre de campo con el tag de validación que falló.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
